package agent

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/swarmbot/internal/errors"
	"github.com/Iron-Ham/swarmbot/internal/event"
	"github.com/Iron-Ham/swarmbot/internal/filelock"
	"github.com/Iron-Ham/swarmbot/internal/mailbox"
	"github.com/Iron-Ham/swarmbot/internal/roster"
)

type agentFixture struct {
	dir    string
	store  *mailbox.MemoryStore
	bus    *event.Bus
	events *recorder
	peers  *mailbox.Mailbox
}

func newAgentFixture(t *testing.T, n int) *agentFixture {
	t.Helper()
	dir := t.TempDir()
	store := mailbox.NewMemoryStore()
	bus := event.NewBus()

	peers, err := mailbox.Open(store, mailbox.Labels(dir, n))
	require.NoError(t, err)

	return &agentFixture{
		dir:   dir,
		store: store,
		bus:   bus,
		events: record(bus,
			event.TypeAgentStarted,
			event.TypePositionPublished,
			event.TypeAgentDeparted,
			event.TypeMailboxReset,
			event.TypeProximity,
		),
		peers: peers,
	}
}

func (f *agentFixture) config(index int) Config {
	return Config{
		Index:        index,
		LabelDir:     f.dir,
		PollInterval: time.Millisecond,
		Threshold:    DefaultThreshold,
	}
}

func (f *agentFixture) published() []mailbox.Position {
	var out []mailbox.Position
	for _, e := range f.events.all() {
		if pe, ok := e.(event.PositionPublishedEvent); ok {
			out = append(out, mailbox.Position{X: pe.X, Y: pe.Y})
		}
	}
	return out
}

func (f *agentFixture) has(eventType string) bool {
	for _, e := range f.events.all() {
		if e.EventType() == eventType {
			return true
		}
	}
	return false
}

func TestNew_Validation(t *testing.T) {
	r := testRoster(t, 3)
	store := mailbox.NewMemoryStore()
	prompter := newScriptedPrompter()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative index", Config{Index: -1}},
		{"index past the roster", Config{Index: 3}},
		{"start outside the arena", Config{Index: 0, Start: mailbox.Position{X: 31, Y: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, r, store, prompter)
			assert.Error(t, err)
		})
	}

	_, err := New(Config{Index: 0}, roster.Roster{}, store, prompter)
	assert.Error(t, err, "a swarm needs at least two agents")
}

func TestAgent_RunDetectsNeighbourAndDeparts(t *testing.T) {
	f := newAgentFixture(t, 3)
	require.NoError(t, f.peers.Publish(1, mailbox.Position{X: 12, Y: 12}))
	require.NoError(t, f.peers.Publish(2, mailbox.Position{X: 30, Y: 1}))

	prompter := newScriptedPrompter("11", "11").holding()
	var once sync.Once
	f.bus.Subscribe(event.TypeProximity, func(event.Event) {
		once.Do(prompter.release)
	})

	cfg := f.config(0)
	cfg.Start = mailbox.Position{X: 10, Y: 10}
	a, err := New(cfg, testRoster(t, 3), f.store, prompter, WithBus(f.bus))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, a.Run(ctx))
	require.NoError(t, ctx.Err(), "agent should stop once the operator leaves")

	prox := f.events.proximity()
	require.NotEmpty(t, prox)
	assert.Equal(t, 1, prox[0].Index)
	assert.Equal(t, 102, prox[0].AgentID)

	assert.Contains(t, f.published(), mailbox.Position{X: 10, Y: 10})
	assert.True(t, f.has(event.TypeAgentStarted))
	assert.True(t, f.has(event.TypeAgentDeparted))
	assert.False(t, f.has(event.TypeMailboxReset), "only the initializer resets")

	own, err := f.peers.Peek(0)
	require.NoError(t, err)
	assert.Equal(t, mailbox.Sentinel, own, "departure is announced with the sentinel")

	peer, err := f.peers.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, mailbox.Position{X: 12, Y: 12}, peer, "peer mailboxes are never written")
}

func TestAgent_InitializerResetsMailboxes(t *testing.T) {
	f := newAgentFixture(t, 3)
	require.NoError(t, f.peers.Publish(2, mailbox.Position{X: 3, Y: 3}))

	cfg := f.config(1)
	cfg.Initializer = true
	cfg.Start = mailbox.Position{X: 4, Y: 4}
	a, err := New(cfg, testRoster(t, 3), f.store, newScriptedPrompter(), WithBus(f.bus))
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))

	snap, err := f.peers.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []mailbox.Position{mailbox.Sentinel, mailbox.Sentinel, mailbox.Sentinel}, snap)
	assert.True(t, f.has(event.TypeMailboxReset))

	events := f.events.all()
	require.NotEmpty(t, events)
	assert.Equal(t, event.TypeMailboxReset, events[0].EventType(), "reset happens before the initial publish")
}

func TestAgent_AllocationFailureIsFatal(t *testing.T) {
	f := newAgentFixture(t, 3)
	f.store.FailEnsure(mailbox.Label(f.dir, 2), errors.New("no space left on device"))

	a, err := New(f.config(0), testRoster(t, 3), f.store, newScriptedPrompter(), WithBus(f.bus))
	require.NoError(t, err)

	err = a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMailboxAlloc)
	assert.True(t, errors.IsFatal(err))
	assert.Empty(t, f.events.all(), "nothing is published after a startup failure")
}

func TestAgent_SlotAlreadyClaimed(t *testing.T) {
	f := newAgentFixture(t, 2)
	slot, err := filelock.Claim(mailbox.Label(f.dir, 0))
	require.NoError(t, err)
	defer slot.Release() //nolint:errcheck

	a, err := New(f.config(0), testRoster(t, 2), f.store, newScriptedPrompter(), WithBus(f.bus))
	require.NoError(t, err)

	err = a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSlotClaimed)
	assert.Empty(t, f.events.all())
}

func TestAgent_RandomStart(t *testing.T) {
	f := newAgentFixture(t, 2)

	a, err := New(f.config(0), testRoster(t, 2), f.store, newScriptedPrompter(),
		WithBus(f.bus),
		WithRandom(func(n int) int { return n - 1 }),
	)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	var started []event.AgentStartedEvent
	for _, e := range f.events.all() {
		if se, ok := e.(event.AgentStartedEvent); ok {
			started = append(started, se)
		}
	}
	require.Len(t, started, 1)
	assert.Equal(t, mailbox.ArenaMax, started[0].X)
	assert.Equal(t, mailbox.ArenaMax, started[0].Y)
	assert.Equal(t, 101, started[0].AgentID)
}

func TestAgent_CancelledContextDeparts(t *testing.T) {
	f := newAgentFixture(t, 2)
	prompter := newScriptedPrompter().holding()

	cfg := f.config(1)
	cfg.Start = mailbox.Position{X: 9, Y: 9}
	a, err := New(cfg, testRoster(t, 2), f.store, prompter, WithBus(f.bus))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	f.bus.Subscribe(event.TypeAgentStarted, func(event.Event) { cancel() })

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("agent did not stop after cancellation")
	}

	own, err := f.peers.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, mailbox.Sentinel, own)
}

func TestAgent_SecondRunReclaimsSlot(t *testing.T) {
	f := newAgentFixture(t, 2)

	for range 2 {
		a, err := New(f.config(0), testRoster(t, 2), f.store, newScriptedPrompter(), WithBus(f.bus))
		require.NoError(t, err)
		require.NoError(t, a.Run(context.Background()))
	}
}
