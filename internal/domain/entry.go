package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind tags a ledger entry with the operation that produced it.
type EntryKind string

// Ledger entry kinds.
const (
	EntryOpen             EntryKind = "OPEN"
	EntryDeposit          EntryKind = "DEPOSIT"
	EntryWithdraw         EntryKind = "WITHDRAW"
	EntryTransferOut      EntryKind = "TRANSFER_OUT"
	EntryTransferIn       EntryKind = "TRANSFER_IN"
	EntryTransferReversal EntryKind = "TRANSFER_REVERSAL"
	EntryBillPayment      EntryKind = "BILL_PAYMENT"
	EntryYield            EntryKind = "YIELD"
)

// Entry holds one immutable balance change for an account. Amount is signed:
// debits are negative. CounterpartyNumber carries the other account of a
// transfer, zero otherwise.
type Entry struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"-"`
	Kind               EntryKind       `json:"kind"`
	Amount             decimal.Decimal `json:"amount"`
	CounterpartyNumber int64           `json:"counterparty_number,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}
