package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		want      func(t *testing.T, cfg *Config)
		wantError string
	}{
		{
			name: "defaults: ok",
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":8080", cfg.HTTP.Addr)
				assert.Equal(t, currency.INR.String(), cfg.Currency.String())
				assert.True(t, cfg.SeedMenu)
				assert.False(t, cfg.Development())
				assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
				assert.Equal(t, []string{"http://localhost:8081", "http://localhost:19006"}, cfg.HTTP.CORSOrigins)
			},
		},
		{
			name: "overrides: ok",
			env: map[string]string{
				"POS_ADDR":             "127.0.0.1:9000",
				"POS_ENV":              "development",
				"POS_CURRENCY":         "EUR",
				"POS_SEED_MENU":        "false",
				"POS_CORS_ORIGINS":     " http://a.test , ,http://b.test",
				"POS_SHUTDOWN_TIMEOUT": "2s",
			},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
				assert.Equal(t, currency.EUR.String(), cfg.Currency.String())
				assert.False(t, cfg.SeedMenu)
				assert.True(t, cfg.Development())
				assert.Equal(t, 2*time.Second, cfg.HTTP.ShutdownTimeout)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
			},
		},
		{
			name:      "unknown currency: error",
			env:       map[string]string{"POS_CURRENCY": "ZZZZ"},
			wantError: "POS_CURRENCY",
		},
		{
			name:      "bad seed flag: error",
			env:       map[string]string{"POS_SEED_MENU": "maybe"},
			wantError: "POS_SEED_MENU",
		},
		{
			name:      "bad shutdown timeout: error",
			env:       map[string]string{"POS_SHUTDOWN_TIMEOUT": "soon"},
			wantError: "POS_SHUTDOWN_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"POS_ADDR", "POS_ENV", "POS_CURRENCY", "POS_SEED_MENU", "POS_CORS_ORIGINS", "POS_SHUTDOWN_TIMEOUT"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := Load()
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}
