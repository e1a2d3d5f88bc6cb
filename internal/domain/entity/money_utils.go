package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string amount and returns it as a decimal.
// The amount must be strictly positive with at most two decimal places.
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return decimal.Zero, errs.ErrNegativeAmount
	}

	// decimal accepts exponents and signs that are not valid money notation
	for _, r := range amount {
		if (r < '0' || r > '9') && r != '.' {
			return decimal.Zero, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
		}
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if parts := strings.Split(amount, "."); len(parts) == 2 && len(parts[1]) > MaxDecimalPlaces {
		return decimal.Zero, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	if !value.IsPositive() {
		return decimal.Zero, errs.ErrNegativeAmount
	}

	return value, nil
}

// FormatAmount renders an amount with exactly two decimal places
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}
