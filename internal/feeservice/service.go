// Package feeservice manages business logic layer of fee rules.
package feeservice

import (
	"context"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by fee service layer.
type Repo interface {
	Create(ctx context.Context, rule domain.FeeRule) (domain.FeeRule, error)
	Get(ctx context.Context, id string) (domain.FeeRule, error)
	GetMany(ctx context.Context, ids []string) ([]domain.FeeRule, error)
	List(ctx context.Context) ([]domain.FeeRule, error)
	Update(ctx context.Context, rule domain.FeeRule) (domain.FeeRule, error)
	Delete(ctx context.Context, id string) error
}

// Service facilitates fee service layer logic.
type Service struct {
	repo Repo
}

// New returns fee service struct to manage fee rule bussines logic.
func New(fr Repo) *Service {
	return &Service{repo: fr}
}

// TotalCost returns base plus every rule's percentage of base plus its flat
// amount. The sum is commutative: rule order never changes the result.
func TotalCost(base decimal.Decimal, rules []domain.FeeRule) decimal.Decimal {
	total := base

	for _, r := range rules {
		total = total.Add(base.Mul(r.Rate)).Add(r.FlatAmount)
	}

	return total
}

// Create creates and returns a fee rule.
func (s *Service) Create(ctx context.Context, description string, rate, flatAmount decimal.Decimal) (domain.FeeRule, error) {
	rule := domain.FeeRule{
		ID:          uuid.NewString(),
		Description: description,
		Rate:        rate,
		FlatAmount:  flatAmount,
	}

	return s.repo.Create(ctx, rule)
}

// Get returns the fee rule with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.FeeRule, error) {
	return s.repo.Get(ctx, id)
}

// GetMany returns the rules for the given ids, failing if any is missing.
func (s *Service) GetMany(ctx context.Context, ids []string) ([]domain.FeeRule, error) {
	return s.repo.GetMany(ctx, ids)
}

// List returns every fee rule.
func (s *Service) List(ctx context.Context) ([]domain.FeeRule, error) {
	return s.repo.List(ctx)
}

// Update rewrites the fee rule with the given id.
func (s *Service) Update(ctx context.Context, id, description string, rate, flatAmount decimal.Decimal) (domain.FeeRule, error) {
	rule := domain.FeeRule{
		ID:          id,
		Description: description,
		Rate:        rate,
		FlatAmount:  flatAmount,
	}

	return s.repo.Update(ctx, rule)
}

// Delete removes the fee rule with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
