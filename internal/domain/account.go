// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNumberTaken indicates that the account number is already in use.
	ErrAccountNumberTaken = errors.New("account number already taken")
	// ErrAccountInactive indicates an operation on a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrInvalidAmount indicates a non-positive or below-minimum amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates the balance plus limit cannot cover the debit.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConcurrencyConflict indicates a stale account version on write.
	ErrConcurrencyConflict = errors.New("account was modified concurrently")
	// ErrInvalidOperation indicates an operation the account does not support.
	ErrInvalidOperation = errors.New("invalid operation")
)

// AccountType discriminates the closed set of account variants.
type AccountType string

// Supported account types.
const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
)

// Account holds a holder's balance plus the variant-specific debit terms.
// Checking accounts carry an overdraft limit and a percentage fee on debits;
// savings accounts carry a yield rate and may never go negative.
type Account struct {
	ID             string          `json:"id"`
	Number         int64           `json:"number"`
	Type           AccountType     `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	Active         bool            `json:"active"`
	Version        int32           `json:"-"`
	HolderID       string          `json:"holder_id"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit,omitempty"`
	FeeRate        decimal.Decimal `json:"fee_rate,omitempty"`
	YieldRate      decimal.Decimal `json:"yield_rate,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// debitFloor is the lowest balance a debit may leave behind.
func (a *Account) debitFloor() decimal.Decimal {
	if a.Type == Checking {
		return a.OverdraftLimit.Neg()
	}

	return decimal.Zero
}

// EffectiveDebit returns the amount actually charged for debiting the given
// principal: checking accounts pay a percentage fee on top, savings pay none.
func (a *Account) EffectiveDebit(amount decimal.Decimal) decimal.Decimal {
	if a.Type == Checking {
		return amount.Add(amount.Mul(a.FeeRate))
	}

	return amount
}

// Withdraw debits the effective amount and returns it.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	return a.debit(a.EffectiveDebit(amount), amount)
}

// DebitForTransfer debits the source side of a transfer. The fee is absorbed
// by the sender; the destination is credited with the raw amount.
func (a *Account) DebitForTransfer(amount decimal.Decimal) (decimal.Decimal, error) {
	return a.debit(a.EffectiveDebit(amount), amount)
}

// DebitExact debits a fully computed total, such as a bill payment cost that
// already includes its fees. Only the balance floor is checked.
func (a *Account) DebitExact(total decimal.Decimal) error {
	_, err := a.debit(total, total)
	return err
}

func (a *Account) debit(effective, principal decimal.Decimal) (decimal.Decimal, error) {
	if !a.Active {
		return decimal.Decimal{}, ErrAccountInactive
	}

	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	if a.Balance.Sub(effective).LessThan(a.debitFloor()) {
		return decimal.Decimal{}, ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(effective)

	return effective, nil
}

// Credit adds the raw amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) error {
	if !a.Active {
		return ErrAccountInactive
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)

	return nil
}
