package services

import (
	"fmt"

	"donation-api/internal/models"

	"github.com/shopspring/decimal"
)

// checkAmount accepts positive amounts with at most two fraction digits that
// fit the money columns.
func checkAmount(field string, amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return fmt.Errorf("%w: %s must be positive", ErrBadRequest, field)
	case !amount.Equal(amount.Truncate(models.MoneyScale)):
		return fmt.Errorf("%w: %s must have at most %d decimal places", ErrBadRequest, field, models.MoneyScale)
	case amount.GreaterThanOrEqual(models.MaxMoney):
		return fmt.Errorf("%w: %s must be less than %s", ErrBadRequest, field, models.MaxMoney)
	}
	return nil
}
