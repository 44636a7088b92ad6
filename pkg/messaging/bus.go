// Package messaging provides the publish/subscribe primitives used to talk
// to the out-of-band confirmation device.
package messaging

import "context"

// Topics of the confirmation round-trip. The request side publishes to a
// single topic; validation answers arrive on a per-device subtopic.
const (
	TopicAuthRequest      = "auth/request"
	PatternAuthValidation = "auth/validation/*"
)

// Handler consumes a single raw message payload.
type Handler func(ctx context.Context, payload []byte)

// Publisher publishes a JSON-encoded payload to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Subscriber registers a handler for every message whose topic matches the
// given pattern. The handler runs until ctx is cancelled.
type Subscriber interface {
	Subscribe(ctx context.Context, topicPattern string, handler Handler) error
}
