package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrExpiredBill indicates the bill reference is past due and cannot be paid.
var ErrExpiredBill = errors.New("bill is expired")

// PaymentStatus records the outcome of a bill payment attempt.
type PaymentStatus string

// Payment outcomes. One row is written per attempt, failures included.
const (
	PaymentSuccess               PaymentStatus = "SUCCESS"
	PaymentFailInsufficientFunds PaymentStatus = "FAIL_INSUFFICIENT_FUNDS"
	PaymentFailExpiredBill       PaymentStatus = "FAIL_EXPIRED_BILL"
	PaymentFailOperational       PaymentStatus = "FAIL_OPERATIONAL"
)

// Payment is the immutable record of one bill payment attempt, carrying the
// fee rules that were applied to compute the total charge.
type Payment struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"-"`
	BillReference string          `json:"bill_reference"`
	Amount        decimal.Decimal `json:"amount"`
	TotalCharged  decimal.Decimal `json:"total_charged"`
	Status        PaymentStatus   `json:"status"`
	Fees          []FeeRule       `json:"fees,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
