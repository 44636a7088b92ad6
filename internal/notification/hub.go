// Package notification pushes fire-and-forget messages to holders over
// long-lived per-holder streams.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"

	"github.com/rs/zerolog"
)

// Channel capacity per holder. A slow consumer loses messages beyond this
// rather than blocking settlement.
const streamBuffer = 16

// Hub fans notifications out to at most one active stream per holder. A
// notification for a holder with no stream is dropped; there is no queue or
// replay.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]chan domain.Notification
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{streams: make(map[string]chan domain.Notification)}
}

// Subscribe opens a stream for the holder, replacing and closing any
// previous one.
func (h *Hub) Subscribe(holderID string) <-chan domain.Notification {
	ch := make(chan domain.Notification, streamBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.streams[holderID]; ok {
		close(prev)
	}

	h.streams[holderID] = ch

	return ch
}

// Unsubscribe closes the holder's stream if the given channel is still the
// active one. A stream already replaced by a newer Subscribe is left alone.
func (h *Hub) Unsubscribe(holderID string, ch <-chan domain.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.streams[holderID]
	if !ok || current != ch {
		return
	}

	close(current)
	delete(h.streams, holderID)
}

// Notify delivers the notification to the holder's active stream. Without a
// stream, or with a full one, the message is dropped and logged.
func (h *Hub) Notify(ctx context.Context, holderID string, kind domain.NotificationKind, message string) {
	l := zerolog.Ctx(ctx)

	n := domain.Notification{
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Message:   message,
	}

	// The read lock is held across the send. Streams are only closed under
	// the write lock, so the channel cannot be closed mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.streams[holderID]
	if !ok {
		l.Debug().Str("holder_id", holderID).Msg("no active stream, notification dropped")
		return
	}

	select {
	case ch <- n:
	default:
		l.Warn().Str("holder_id", holderID).Msg("stream full, notification dropped")
	}
}
