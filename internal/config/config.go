package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTP     HTTPConfig
	Env      string
	Currency currency.Unit
	SeedMenu bool
}

type HTTPConfig struct {
	Addr            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cur, err := currency.ParseISO(getEnv("POS_CURRENCY", "INR"))
	if err != nil {
		return nil, fmt.Errorf("POS_CURRENCY: %w", err)
	}

	seed, err := strconv.ParseBool(getEnv("POS_SEED_MENU", "true"))
	if err != nil {
		return nil, fmt.Errorf("POS_SEED_MENU: %w", err)
	}

	shutdown, err := time.ParseDuration(getEnv("POS_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("POS_SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		HTTP: HTTPConfig{
			Addr:            getEnv("POS_ADDR", ":8080"),
			CORSOrigins:     splitList(getEnv("POS_CORS_ORIGINS", "http://localhost:8081,http://localhost:19006")),
			ShutdownTimeout: shutdown,
		},
		Env:      getEnv("POS_ENV", "production"),
		Currency: cur,
		SeedMenu: seed,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
