package messaging

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisBus implements Publisher and Subscriber on top of Redis pub/sub.
// Topic patterns use Redis glob syntax, which covers the "auth/validation/*"
// pattern the core needs.
type RedisBus struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisBus connects to the given address and returns a ready bus.
func NewRedisBus(ctx context.Context, addr string, logger zerolog.Logger) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisBus{client: client, logger: logger}, nil
}

// Publish JSON-encodes the payload and publishes it to the topic.
func (b *RedisBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return b.client.Publish(ctx, topic, data).Err()
}

// Subscribe starts a goroutine delivering matching messages to the handler.
// A panicking handler only loses its own message.
func (b *RedisBus) Subscribe(ctx context.Context, topicPattern string, handler Handler) error {
	sub := b.client.PSubscribe(ctx, topicPattern)

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	go func() {
		defer func() {
			if err := sub.Close(); err != nil {
				b.logger.Error().Err(err).Msg("closing subscription")
			}
		}()

		ch := sub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				b.dispatch(ctx, handler, msg)
			}
		}
	}()

	return nil
}

func (b *RedisBus) dispatch(ctx context.Context, handler Handler, msg *redis.Message) {
	defer func() {
		if panicVal := recover(); panicVal != nil {
			b.logger.Error().
				Str("topic", msg.Channel).
				Msgf("message handler panic: %v", panicVal)
		}
	}()

	handler(ctx, []byte(msg.Payload))
}

// Close releases the underlying Redis connection.
func (b *RedisBus) Close() error {
	return b.client.Close()
}
