package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrFeeRuleNotFound indicates that the fee rule is not found.
	ErrFeeRuleNotFound = errors.New("fee rule not found")
	// ErrFeeRuleExists indicates a fee rule with the same description exists.
	ErrFeeRuleExists = errors.New("fee rule description already exists")
)

// FeeRule adds a percentage of the base amount plus a flat amount to the
// total cost of a payment. Rules apply additively and order-independently.
type FeeRule struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	FlatAmount  decimal.Decimal `json:"flat_amount"`
}
