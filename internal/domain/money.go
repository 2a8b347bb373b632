package domain

import (
	"fmt"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"strings"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// NewMoney builds Money from a whole amount, mostly useful for fixtures.
func NewMoney(amount int64, cur currency.Unit) Money {
	return Money{Amount: decimal.NewFromInt(amount), Currency: cur}
}

func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(qty))), Currency: m.Currency}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// Round2 rounds half away from zero to two decimal places.
func (m Money) Round2() Money {
	return Money{Amount: m.Amount.Round(2), Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency.String(), m.Amount.StringFixed(2))
}

const maxPriceLen = 32

// MaxPrice is the largest amount a menu item may cost.
var MaxPrice = decimal.NewFromInt(1_000_000)

// ParsePrice parses free-text price input. Empty input yields ErrFieldRequired,
// anything that is not a positive decimal with at most two places and no
// greater than MaxPrice yields ErrInvalidPrice.
func ParsePrice(s string, cur currency.Unit) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmtRequired("price")
	}

	if len(s) > maxPriceLen {
		return Money{}, fmt.Errorf("price longer than %d chars: %w", maxPriceLen, ErrInvalidPrice)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("price[%s]: %w", s, ErrInvalidPrice)
	}

	// exponent bound keeps Round and Cmp below from expanding huge coefficients
	if exp := amount.Exponent(); exp > 9 || exp < -9 {
		return Money{}, fmt.Errorf("price[%s] out of range: %w", s, ErrInvalidPrice)
	}

	if !amount.IsPositive() {
		return Money{}, fmt.Errorf("price[%s] must be positive: %w", s, ErrInvalidPrice)
	}

	if !amount.Equal(amount.Round(2)) {
		return Money{}, fmt.Errorf("price[%s] has more than 2 decimal places: %w", s, ErrInvalidPrice)
	}

	if amount.GreaterThan(MaxPrice) {
		return Money{}, fmt.Errorf("price[%s] exceeds %s: %w", s, MaxPrice, ErrInvalidPrice)
	}

	return Money{Amount: amount, Currency: cur}, nil
}
