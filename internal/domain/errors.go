package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFieldRequired = errors.New("required field is empty")
	ErrInvalidPrice  = errors.New("price is not a valid amount")
	ErrOwnerIDEmpty  = errors.New("ownerID is empty")
)

func fmtRequired(field string) error {
	return fmt.Errorf("%s: %w", field, ErrFieldRequired)
}
