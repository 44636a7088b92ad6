// Package sweeper bounds how long an unconfirmed pending operation can
// occupy storage.
package sweeper

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Pruner removes pendencies older than the max age.
//
//go:generate mockgen -source=sweeper.go -destination=sweeper_mock.go -package=sweeper
type Pruner interface {
	Prune(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Sweeper periodically deletes stale pendencies, irrespective of their
// confirmation code's state. It never notifies anyone: a holder only learns
// of a timeout by re-querying or re-initiating.
type Sweeper struct {
	pruner   Pruner
	interval time.Duration
	maxAge   time.Duration
}

// New returns a Sweeper with the given run interval and pendency max age.
func New(p Pruner, interval, maxAge time.Duration) *Sweeper {
	return &Sweeper{pruner: p, interval: interval, maxAge: maxAge}
}

// Run sweeps on a fixed ticker until the context is cancelled. A failed run
// is logged and the loop keeps going.
func (s *Sweeper) Run(ctx context.Context) {
	l := zerolog.Ctx(ctx)

	l.Info().
		Dur("interval", s.interval).
		Dur("max_age", s.maxAge).
		Msg("sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.pruner.Prune(ctx, s.maxAge); err != nil {
				l.Error().Err(err).Msg("sweep failed")
			}
		}
	}
}
