package event

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe(TypeProximity, func(e Event) { called = true })

	assert.NotEmpty(t, id)
	assert.Equal(t, 1, bus.SubscriptionCount())
	assert.False(t, called, "handler must not run before a publish")
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe(TypeProximity, func(e Event) { received = e })

	bus.Publish(NewProximityEvent(0, 101, 10, 10, 7))

	require.NotNil(t, received)
	prox, ok := received.(ProximityEvent)
	require.True(t, ok)
	assert.Equal(t, 101, prox.AgentID)
	assert.Equal(t, 7, prox.Distance)
	assert.False(t, prox.Timestamp().IsZero())
}

func TestBus_PublishOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "all") })
	bus.Subscribe(TypePeerMoved, func(e Event) { order = append(order, "first") })
	bus.Subscribe(TypePeerMoved, func(e Event) { order = append(order, "second") })

	bus.Publish(NewPeerMovedEvent(1, 102, 3, 4))

	assert.Equal(t, []string{"first", "second", "all"}, order)
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	bus.Subscribe(TypePeerDeparted, func(e Event) {
		t.Error("handler should not be called for a different event type")
	})

	bus.Publish(NewAgentDepartedEvent(2))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := map[string]int{}
	id1 := bus.Subscribe(TypeMailboxReset, func(e Event) { calls["one"]++ })
	bus.Subscribe(TypeMailboxReset, func(e Event) { calls["two"]++ })

	assert.True(t, bus.Unsubscribe(id1))
	assert.False(t, bus.Unsubscribe(id1))
	assert.False(t, bus.Unsubscribe("missing"))

	bus.Publish(NewMailboxResetEvent(4))

	assert.Equal(t, 0, calls["one"])
	assert.Equal(t, 1, calls["two"])
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TypePeerMoved, func(e Event) {})
	bus.SubscribeAll(func(e Event) {})
	require.Equal(t, 2, bus.SubscriptionCount())

	bus.Clear()
	assert.Equal(t, 0, bus.SubscriptionCount())
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	bus := NewBus()

	var reported string
	bus.OnPanic(func(eventType string, recovered any, stack []byte) {
		reported = eventType
	})

	calls := 0
	bus.Subscribe(TypeProximity, func(e Event) {
		calls++
		panic("boom")
	})
	bus.Subscribe(TypeProximity, func(e Event) { calls++ })

	assert.NotPanics(t, func() { bus.Publish(NewProximityEvent(0, 1, 1, 1, 0)) })
	assert.Equal(t, 2, calls)
	assert.Equal(t, TypeProximity, reported)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var count atomic.Int64
	bus.SubscribeAll(func(e Event) { count.Add(1) })

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			for range 50 {
				bus.Publish(NewPositionPublishedEvent(i, 1, 1))
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int64(400), count.Load())
}

func TestEventTypes(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewAgentStartedEvent(0, 100, 5, 5), TypeAgentStarted},
		{NewPositionPublishedEvent(0, 5, 5), TypePositionPublished},
		{NewAgentDepartedEvent(0), TypeAgentDeparted},
		{NewMailboxResetEvent(4), TypeMailboxReset},
		{NewPeerMovedEvent(1, 101, 2, 2), TypePeerMoved},
		{NewPeerDepartedEvent(1, 101), TypePeerDeparted},
		{NewProximityEvent(1, 101, 2, 2, 3), TypeProximity},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.EventType())
	}
}
