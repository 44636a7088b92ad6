package messaging

import (
	"context"
	"encoding/json"
	"path"
	"sync"
)

// MemoryBus is an in-process Publisher/Subscriber for tests and broker-less
// local runs. Delivery is synchronous.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewMemoryBus returns an empty in-process bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[string][]Handler)}
}

// Publish JSON-encodes the payload and invokes every handler whose pattern
// matches the topic.
func (b *MemoryBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for pattern, handlers := range b.handlers {
		ok, err := path.Match(pattern, topic)
		if err != nil || !ok {
			continue
		}

		for _, h := range handlers {
			b.dispatch(ctx, h, data)
		}
	}

	return nil
}

func (b *MemoryBus) dispatch(ctx context.Context, handler Handler, data []byte) {
	defer func() {
		_ = recover() // a panicking handler only loses its own message
	}()

	handler(ctx, data)
}

// Subscribe registers the handler for the given topic pattern.
func (b *MemoryBus) Subscribe(_ context.Context, topicPattern string, handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topicPattern] = append(b.handlers[topicPattern], handler)

	return nil
}
