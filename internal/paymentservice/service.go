// Package paymentservice manages business logic of bill payments.
package paymentservice

import (
	"context"
	"strings"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/internal/feeservice"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Bill references carrying this prefix are rejected as past due. Stands in
// for a real bill registry lookup.
const expiredBillPrefix = "EXPIRED"

// AccountRepo provides account access needed by the payment service layer.
//
//go:generate mockgen -source=service.go -destination=service_mock.go -package=paymentservice
type AccountRepo interface {
	Get(ctx context.Context, number int64) (domain.Account, error)
	SaveWithEntry(ctx context.Context, account domain.Account, entry domain.Entry) (domain.Account, domain.Entry, error)
}

// Repo provides data access layer to payment attempt records.
type Repo interface {
	Create(ctx context.Context, p domain.Payment) (domain.Payment, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Payment, error)
}

// FeeResolver resolves fee rule ids to rules.
type FeeResolver interface {
	GetMany(ctx context.Context, ids []string) ([]domain.FeeRule, error)
}

// Service facilitates bill payment business logic.
type Service struct {
	accounts AccountRepo
	repo     Repo
	fees     FeeResolver
}

// New returns payment Service.
func New(ar AccountRepo, pr Repo, fr FeeResolver) *Service {
	return &Service{accounts: ar, repo: pr, fees: fr}
}

// Pay charges a bill to the account. The total debited is the bill amount
// plus every resolved fee rule. One Payment row is written per attempt,
// failed attempts included, and the business error is returned alongside.
func (s *Service) Pay(ctx context.Context, number int64, billReference string, amount decimal.Decimal, feeIDs []string) (domain.Payment, error) {
	l := zerolog.Ctx(ctx)

	if billReference == "" {
		return domain.Payment{}, domain.ErrInvalidOperation
	}

	if !amount.IsPositive() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	acc, err := s.accounts.Get(ctx, number)
	if err != nil {
		return domain.Payment{}, err
	}

	var rules []domain.FeeRule

	if len(feeIDs) > 0 {
		if rules, err = s.fees.GetMany(ctx, feeIDs); err != nil {
			return domain.Payment{}, err
		}
	}

	total := feeservice.TotalCost(amount, rules)

	payment := domain.Payment{
		ID:            uuid.NewString(),
		AccountID:     acc.ID,
		BillReference: billReference,
		Amount:        amount,
		TotalCharged:  total,
		Status:        domain.PaymentSuccess,
		Fees:          rules,
		CreatedAt:     time.Now().UTC(),
	}

	payErr := s.charge(ctx, acc, billReference, total)
	if payErr != nil {
		payment.Status = failureStatus(payErr)
	}

	if _, err := s.repo.Create(ctx, payment); err != nil {
		l.Error().Err(err).Str("bill_reference", billReference).Msg("payment attempt not recorded")

		if payErr == nil {
			payErr = err
		}
	}

	return payment, payErr
}

// ListByAccount returns every payment attempt recorded against the account.
func (s *Service) ListByAccount(ctx context.Context, number int64) ([]domain.Payment, error) {
	acc, err := s.accounts.Get(ctx, number)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByAccount(ctx, acc.ID)
}

func (s *Service) charge(ctx context.Context, acc domain.Account, billReference string, total decimal.Decimal) error {
	if strings.HasPrefix(billReference, expiredBillPrefix) {
		return domain.ErrExpiredBill
	}

	if err := acc.DebitExact(total); err != nil {
		return err
	}

	entry := domain.Entry{
		ID:        uuid.NewString(),
		AccountID: acc.ID,
		Kind:      domain.EntryBillPayment,
		Amount:    total.Neg(),
	}

	if _, _, err := s.accounts.SaveWithEntry(ctx, acc, entry); err != nil {
		return err
	}

	return nil
}

func failureStatus(err error) domain.PaymentStatus {
	switch err {
	case domain.ErrInsufficientFunds:
		return domain.PaymentFailInsufficientFunds
	case domain.ErrExpiredBill:
		return domain.PaymentFailExpiredBill
	default:
		return domain.PaymentFailOperational
	}
}
