// Package pendingservice manages business logic of pending operations.
package pendingservice

import (
	"context"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"

	"github.com/rs/zerolog"
)

// Repo provides data access layer to pending operations.
//
//go:generate mockgen -source=service.go -destination=service_mock.go -package=pendingservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreatePendingParams) (domain.PendingOperation, error)
	FindByCode(ctx context.Context, codeID string) (domain.PendingOperation, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service facilitates pending operation business logic.
type Service struct {
	repo Repo
}

// New returns pending operation Service.
func New(pr Repo) *Service {
	return &Service{repo: pr}
}

// Enqueue records an operation awaiting confirmation. A confirmation code
// backs at most one pendency; a second link attempt returns
// domain.ErrCodeAlreadyLinked.
func (s *Service) Enqueue(ctx context.Context, arg domain.CreatePendingParams) (domain.PendingOperation, error) {
	return s.repo.Create(ctx, arg)
}

// FindByCode returns the pendency linked to the given confirmation code id.
func (s *Service) FindByCode(ctx context.Context, codeID string) (domain.PendingOperation, error) {
	return s.repo.FindByCode(ctx, codeID)
}

// Remove deletes the pendency. Removing twice is harmless.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Prune removes pendencies older than maxAge and logs the count.
func (s *Service) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	l := zerolog.Ctx(ctx)

	removed, err := s.repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		l.Info().Int64("removed", removed).Msg("pruned stale pending operations")
	}

	return removed, nil
}
