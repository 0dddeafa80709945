package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	a := bus.Subscribe()
	b := bus.Subscribe()
	require.Equal(t, 2, bus.SubscriberCount())

	bus.PublishLog("info", "fetched page 1")

	for _, ch := range []<-chan Event{a, b} {
		select {
		case event := <-ch:
			assert.Equal(t, EventLog, event.Type)
			data, ok := event.Data.(LogData)
			require.True(t, ok)
			assert.Equal(t, "fetched page 1", data.Message)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe()
	bus.Unsubscribe(ch)
	assert.Equal(t, 0, bus.SubscriberCount())

	// Publish after unsubscribe must not panic or block.
	bus.PublishType(EventFetchStart)
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	bus.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			bus.PublishLog("info", "flood")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestPublishErrorCarriesContext(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe()
	bus.PublishError(assert.AnError, "refreshing report 7")

	select {
	case event := <-ch:
		require.Equal(t, EventError, event.Type)
		data, ok := event.Data.(ErrorData)
		require.True(t, ok)
		assert.Equal(t, "refreshing report 7", data.Context)
		assert.ErrorIs(t, data.Error, assert.AnError)
	case <-time.After(time.Second):
		t.Fatal("error event not delivered")
	}
}
