// Package operationservice accepts sensitive operations and parks them until
// the holder's device confirms.
package operationservice

import (
	"context"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AccountResolver resolves account numbers to accounts.
//
//go:generate mockgen -source=service.go -destination=service_mock.go -package=operationservice
type AccountResolver interface {
	Get(ctx context.Context, number int64) (domain.Account, error)
}

// ConfirmationIssuer issues confirmation codes for a holder.
type ConfirmationIssuer interface {
	Request(ctx context.Context, holderID string) (domain.ConfirmationCode, error)
}

// PendencyStore parks accepted operations awaiting confirmation.
type PendencyStore interface {
	Enqueue(ctx context.Context, arg domain.CreatePendingParams) (domain.PendingOperation, error)
}

// FeeResolver checks fee rule ids at request time.
type FeeResolver interface {
	GetMany(ctx context.Context, ids []string) ([]domain.FeeRule, error)
}

// Service facilitates operation request business logic. Every request
// returns the issued confirmation id immediately; nothing touches a balance
// until the settlement executor runs.
type Service struct {
	accounts      AccountResolver
	confirmations ConfirmationIssuer
	pendencies    PendencyStore
	fees          FeeResolver
}

// New returns operation request Service.
func New(ar AccountResolver, ci ConfirmationIssuer, ps PendencyStore, fr FeeResolver) *Service {
	return &Service{accounts: ar, confirmations: ci, pendencies: ps, fees: fr}
}

// RequestWithdrawal accepts a withdrawal and returns the confirmation id the
// holder's device must validate.
func (s *Service) RequestWithdrawal(ctx context.Context, number int64, amount decimal.Decimal) (string, error) {
	return s.accept(ctx, domain.CreatePendingParams{
		Kind:         domain.OperationWithdraw,
		SourceNumber: number,
		Amount:       amount,
	})
}

// RequestTransfer accepts a transfer between two accounts and returns the
// confirmation id.
func (s *Service) RequestTransfer(ctx context.Context, source, destination int64, amount decimal.Decimal) (string, error) {
	if source == destination {
		return "", domain.ErrInvalidOperation
	}

	if _, err := s.accounts.Get(ctx, destination); err != nil {
		return "", err
	}

	return s.accept(ctx, domain.CreatePendingParams{
		Kind:              domain.OperationTransfer,
		SourceNumber:      source,
		DestinationNumber: destination,
		Amount:            amount,
	})
}

// RequestPayment accepts a bill payment and returns the confirmation id. Fee
// rule ids are resolved up front so a bad id fails the request, not the
// settlement.
func (s *Service) RequestPayment(ctx context.Context, number int64, billReference string, amount decimal.Decimal, feeIDs []string) (string, error) {
	if billReference == "" {
		return "", domain.ErrInvalidOperation
	}

	if len(feeIDs) > 0 {
		if _, err := s.fees.GetMany(ctx, feeIDs); err != nil {
			return "", err
		}
	}

	return s.accept(ctx, domain.CreatePendingParams{
		Kind:          domain.OperationBillPayment,
		SourceNumber:  number,
		Amount:        amount,
		BillReference: billReference,
	})
}

func (s *Service) accept(ctx context.Context, arg domain.CreatePendingParams) (string, error) {
	l := zerolog.Ctx(ctx)

	if !arg.Amount.IsPositive() {
		return "", domain.ErrInvalidAmount
	}

	acc, err := s.accounts.Get(ctx, arg.SourceNumber)
	if err != nil {
		return "", err
	}

	if !acc.Active {
		return "", domain.ErrAccountInactive
	}

	code, err := s.confirmations.Request(ctx, acc.HolderID)
	if err != nil {
		return "", err
	}

	arg.ConfirmationCodeID = code.ID

	if _, err := s.pendencies.Enqueue(ctx, arg); err != nil {
		return "", err
	}

	l.Info().
		Str("kind", string(arg.Kind)).
		Int64("source", arg.SourceNumber).
		Str("confirmation_id", code.ID).
		Msg("operation accepted, pending confirmation")

	return code.ID, nil
}
