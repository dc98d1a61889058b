package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishInvokesSubscribedHandlers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var seen []string
	dispatcher.Subscribe(EventSlaWarningRaised, func(ctx context.Context, event Event) error {
		seen = append(seen, event.ItemID)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventSlaWarningRaised, ItemID: "w1"})
	require.NoError(t, err)
	require.Equal(t, []string{"w1"}, seen)
}

func TestPublishIsolatesHandlerFailures(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var secondCalled bool
	dispatcher.Subscribe(EventSlaBreachRaised, func(ctx context.Context, event Event) error {
		return errors.New("handler exploded")
	})
	dispatcher.Subscribe(EventSlaBreachRaised, func(ctx context.Context, event Event) error {
		secondCalled = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventSlaBreachRaised, ItemID: "w1"})
	require.NoError(t, err, "handler failures must not surface to the publisher")
	require.True(t, secondCalled)
}

func TestPublishIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	err := dispatcher.Publish(context.Background(), Event{Type: EventItemAssigned})
	require.NoError(t, err)
}
