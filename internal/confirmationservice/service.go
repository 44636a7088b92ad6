// Package confirmationservice manages issuing and validating the time-boxed
// confirmation codes that gate sensitive operations.
package confirmationservice

import (
	"context"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
	"github.com/VictorMordachini/conta-bancaria/pkg/messaging"
	"github.com/VictorMordachini/conta-bancaria/pkg/randompkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by confirmation service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package confirmationservice
type Repo interface {
	Create(ctx context.Context, code domain.ConfirmationCode) (domain.ConfirmationCode, error)
	Get(ctx context.Context, id string) (domain.ConfirmationCode, error)
	FindCurrent(ctx context.Context, holderID string) (domain.ConfirmationCode, error)
	MarkConfirmed(ctx context.Context, id string) (domain.ConfirmationCode, error)
}

// Service facilitates confirmation code logic.
type Service struct {
	repo      Repo
	publisher messaging.Publisher
	lifetime  time.Duration
}

// New returns a confirmation service issuing codes with the given lifetime.
func New(cr Repo, pub messaging.Publisher, lifetime time.Duration) *Service {
	return &Service{repo: cr, publisher: pub, lifetime: lifetime}
}

// Request issues a 6-digit code for the holder, persists it with its expiry
// and asks the holder's device for approval. Returns the stored code; the
// caller keeps only its id.
func (s *Service) Request(ctx context.Context, holderID string) (domain.ConfirmationCode, error) {
	l := zerolog.Ctx(ctx)

	now := time.Now().UTC()

	code := domain.ConfirmationCode{
		ID:        uuid.NewString(),
		HolderID:  holderID,
		Code:      randompkg.ConfirmationCode(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.lifetime),
	}

	created, err := s.repo.Create(ctx, code)
	if err != nil {
		return domain.ConfirmationCode{}, err
	}

	req := domain.ConfirmationRequest{HolderID: holderID, Code: created.Code}

	if err := s.publisher.Publish(ctx, messaging.TopicAuthRequest, req); err != nil {
		l.Error().Err(err).Str("holder_id", holderID).Msg("publishing confirmation request")
		return domain.ConfirmationCode{}, err
	}

	l.Info().Str("holder_id", holderID).Str("code_id", created.ID).Msg("confirmation requested")

	return created, nil
}

// Validate checks a submitted code against the holder's most recent
// unconfirmed one. An expired code is rejected but not deleted; the sweeper
// owns cleanup. A mismatched code stays unconfirmed and may be retried until
// it expires.
func (s *Service) Validate(ctx context.Context, holderID, submitted string) (domain.ConfirmationCode, error) {
	code, err := s.repo.FindCurrent(ctx, holderID)
	if err != nil {
		return domain.ConfirmationCode{}, err
	}

	if code.Expired(time.Now().UTC()) {
		return domain.ConfirmationCode{}, domain.ErrConfirmationExpired
	}

	if code.Code != submitted {
		return domain.ConfirmationCode{}, domain.ErrConfirmationMismatch
	}

	return s.repo.MarkConfirmed(ctx, code.ID)
}

// Get returns the code with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.ConfirmationCode, error) {
	return s.repo.Get(ctx, id)
}
