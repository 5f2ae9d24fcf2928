package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/farm-helpdesk/internal/events"
)

func TestDispatcherRoutesByType(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var created, changed int
	dispatcher.Subscribe(events.EventIssueCreated, func(_ context.Context, _ events.Event) error {
		created++
		return nil
	})
	dispatcher.Subscribe(events.EventIssueStatusChanged, func(_ context.Context, _ events.Event) error {
		changed++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventIssueCreated}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventIssueCreated}))

	assert.Equal(t, 2, created)
	assert.Zero(t, changed, "handlers only see their subscribed type")
}

func TestDispatcherFanOut(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var calls []string
	for _, name := range []string{"first", "second"} {
		name := name
		dispatcher.Subscribe(events.EventIssueResponded, func(_ context.Context, _ events.Event) error {
			calls = append(calls, name)
			return nil
		})
	}

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventIssueResponded}))
	assert.Equal(t, []string{"first", "second"}, calls, "handlers run in subscription order")
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(events.EventIssueCreated, func(_ context.Context, _ events.Event) error {
		return errors.New("notification backend down")
	})
	dispatcher.Subscribe(events.EventIssueCreated, func(_ context.Context, _ events.Event) error {
		reached = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventIssueCreated})
	require.NoError(t, err, "handler failures never surface to publishers")
	assert.True(t, reached, "later handlers still run after a failure")
}

func TestDispatcherNoSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventIssueStatusChanged}))
}
