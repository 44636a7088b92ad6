package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryBusPatternMatching(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	var got []string

	err := bus.Subscribe(ctx, PatternAuthValidation, func(_ context.Context, payload []byte) {
		got = append(got, string(payload))
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, "auth/validation/device42", "first"))
	require.NoError(t, bus.Publish(ctx, TopicAuthRequest, "ignored"))
	require.NoError(t, bus.Publish(ctx, "auth/validation/device7", "second"))

	require.Equal(t, []string{`"first"`, `"second"`}, got)
}

func TestMemoryBusHandlerPanicIsolation(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	delivered := 0

	require.NoError(t, bus.Subscribe(ctx, "auth/validation/*", func(context.Context, []byte) {
		panic("boom")
	}))
	require.NoError(t, bus.Subscribe(ctx, "auth/validation/*", func(context.Context, []byte) {
		delivered++
	}))

	require.NoError(t, bus.Publish(ctx, "auth/validation/device1", struct{}{}))
	require.Equal(t, 1, delivered)
}
