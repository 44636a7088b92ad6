// Package settlement consumes device validation messages and executes the
// pending operations they unlock.
package settlement

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/messaging"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ConfirmationValidator validates a submitted code and consumes it.
//
//go:generate mockgen -source=executor.go -destination=executor_mock.go -package=settlement
type ConfirmationValidator interface {
	Validate(ctx context.Context, holderID, submitted string) (domain.ConfirmationCode, error)
}

// PendencyStore loads and removes parked operations.
type PendencyStore interface {
	FindByCode(ctx context.Context, codeID string) (domain.PendingOperation, error)
	Remove(ctx context.Context, id string) error
}

// Ledger applies withdrawals and transfers.
type Ledger interface {
	Withdraw(ctx context.Context, number int64, amount decimal.Decimal) (domain.Account, error)
	Transfer(ctx context.Context, sourceNumber, destNumber int64, amount decimal.Decimal) error
}

// BillPayer charges bills.
type BillPayer interface {
	Pay(ctx context.Context, number int64, billReference string, amount decimal.Decimal, feeIDs []string) (domain.Payment, error)
}

// Notifier pushes the settlement outcome to the holder.
type Notifier interface {
	Notify(ctx context.Context, holderID string, kind domain.NotificationKind, message string)
}

// Executor settles pending operations when their confirmation code is
// validated. A pendency is consumed exactly once: it is deleted after the
// dispatched call returns, success or business failure alike, and is never
// retried.
type Executor struct {
	confirmations ConfirmationValidator
	pendencies    PendencyStore
	ledger        Ledger
	payments      BillPayer
	notifier      Notifier
}

// NewExecutor returns a settlement Executor.
func NewExecutor(cv ConfirmationValidator, ps PendencyStore, l Ledger, bp BillPayer, n Notifier) *Executor {
	return &Executor{confirmations: cv, pendencies: ps, ledger: l, payments: bp, notifier: n}
}

// Subscribe registers the executor on the device validation topics. Each
// message is handled in isolation; a failed or panicking handler loses only
// its own message.
func (e *Executor) Subscribe(ctx context.Context, sub messaging.Subscriber) error {
	return sub.Subscribe(ctx, messaging.PatternAuthValidation, e.Handle)
}

// Handle processes one device validation message.
func (e *Executor) Handle(ctx context.Context, payload []byte) {
	l := zerolog.Ctx(ctx)

	var v domain.DeviceValidation
	if err := json.Unmarshal(payload, &v); err != nil {
		l.Error().Err(err).Msg("malformed device validation payload")
		return
	}

	if !v.BiometryOK {
		l.Info().Str("holder_id", v.HolderID).Msg("biometry rejected, validation discarded")
		e.notifier.Notify(ctx, v.HolderID, domain.NotifyFailure, "device validation rejected")

		return
	}

	code, err := e.confirmations.Validate(ctx, v.HolderID, v.CodeSubmitted)
	if err != nil {
		l.Info().Err(err).Str("holder_id", v.HolderID).Msg("confirmation rejected")
		e.notifier.Notify(ctx, v.HolderID, domain.NotifyFailure, err.Error())

		return
	}

	p, err := e.pendencies.FindByCode(ctx, code.ID)
	if err != nil {
		// A confirmed code with no pendency: swept away or already settled.
		l.Warn().Err(err).Str("confirmation_id", code.ID).Msg("no pendency for confirmed code")
		e.notifier.Notify(ctx, v.HolderID, domain.NotifyInfo, "no operation awaiting this confirmation")

		return
	}

	opErr := e.dispatch(ctx, p)

	// Consumed exactly once: the pendency goes away whether the operation
	// succeeded or failed.
	if err := e.pendencies.Remove(ctx, p.ID); err != nil {
		l.Error().Err(err).Str("pendency_id", p.ID).Msg("pendency not removed after settlement")
	}

	if opErr != nil {
		l.Info().Err(opErr).Str("pendency_id", p.ID).Str("kind", string(p.Kind)).Msg("settlement failed")
		e.notifier.Notify(ctx, v.HolderID, domain.NotifyFailure,
			fmt.Sprintf("%s of %s failed: %s", p.Kind, p.Amount, opErr))

		return
	}

	l.Info().Str("pendency_id", p.ID).Str("kind", string(p.Kind)).Msg("settlement applied")
	e.notifier.Notify(ctx, v.HolderID, domain.NotifySuccess,
		fmt.Sprintf("%s of %s settled", p.Kind, p.Amount))
}

func (e *Executor) dispatch(ctx context.Context, p domain.PendingOperation) error {
	switch p.Kind {
	case domain.OperationWithdraw:
		_, err := e.ledger.Withdraw(ctx, p.SourceNumber, p.Amount)
		return err
	case domain.OperationTransfer:
		return e.ledger.Transfer(ctx, p.SourceNumber, p.DestinationNumber, p.Amount)
	case domain.OperationBillPayment:
		_, err := e.payments.Pay(ctx, p.SourceNumber, p.BillReference, p.Amount, nil)
		return err
	default:
		return domain.ErrInvalidOperation
	}
}
