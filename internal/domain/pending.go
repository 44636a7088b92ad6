package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrPendencyNotFound indicates a confirmed code with no linked operation.
	ErrPendencyNotFound = errors.New("pending operation not found")
	// ErrCodeAlreadyLinked indicates a code already backing another pendency.
	ErrCodeAlreadyLinked = errors.New("confirmation code already linked to a pending operation")
)

// OperationKind names the sensitive operations that require confirmation.
type OperationKind string

// Confirmable operation kinds.
const (
	OperationWithdraw    OperationKind = "WITHDRAW"
	OperationTransfer    OperationKind = "TRANSFER"
	OperationBillPayment OperationKind = "BILL_PAYMENT"
)

// PendingOperation records an accepted operation awaiting device
// confirmation. It is linked 1:1 to the confirmation code that unlocks it
// and is deleted on settlement or by the expiry sweeper.
type PendingOperation struct {
	ID                 string          `json:"id"`
	Kind               OperationKind   `json:"kind"`
	SourceNumber       int64           `json:"source_number"`
	DestinationNumber  int64           `json:"destination_number,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	BillReference      string          `json:"bill_reference,omitempty"`
	ConfirmationCodeID string          `json:"-"`
	CreatedAt          time.Time       `json:"created_at"`
}

// CreatePendingParams is the input data to enqueue a pending operation.
type CreatePendingParams struct {
	Kind               OperationKind
	SourceNumber       int64
	DestinationNumber  int64
	Amount             decimal.Decimal
	BillReference      string
	ConfirmationCodeID string
}
