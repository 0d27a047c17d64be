package agent

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/swarmbot/internal/errors"
	"github.com/Iron-Ham/swarmbot/internal/event"
	"github.com/Iron-Ham/swarmbot/internal/filelock"
	"github.com/Iron-Ham/swarmbot/internal/logging"
	"github.com/Iron-Ham/swarmbot/internal/mailbox"
	"github.com/Iron-Ham/swarmbot/internal/roster"
)

// Config describes one agent of the swarm.
type Config struct {
	// Index is the agent's own roster index.
	Index int

	// Initializer makes the agent reset every mailbox on startup.
	Initializer bool

	// LabelDir is the directory that holds the mailbox labels.
	LabelDir string

	// Start is the initial own position. A zero Position picks a random one
	// inside the arena.
	Start mailbox.Position

	// PollInterval is the pause after each peer read.
	PollInterval time.Duration

	// Threshold is the largest neighbour distance.
	Threshold int
}

// Option configures an Agent.
type Option func(*Agent)

// WithBus sets the event bus shared by the mailbox, the Poller and observers
// such as the console.
func WithBus(bus *event.Bus) Option {
	return func(a *Agent) {
		if bus != nil {
			a.bus = bus
		}
	}
}

// WithLogger sets the logger of the agent and its loops.
func WithLogger(logger *logging.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRandom replaces the source of random start coordinates. fn returns a
// value in [0, n).
func WithRandom(fn func(n int) int) Option {
	return func(a *Agent) {
		if fn != nil {
			a.randIntN = fn
		}
	}
}

// WithPublisherOptions passes options through to the Publisher.
func WithPublisherOptions(opts ...PublisherOption) Option {
	return func(a *Agent) {
		a.publisherOpts = append(a.publisherOpts, opts...)
	}
}

// Agent runs one member of the swarm for the lifetime of the process.
type Agent struct {
	cfg      Config
	roster   roster.Roster
	store    mailbox.Store
	prompter Prompter
	bus      *event.Bus
	logger   *logging.Logger
	randIntN func(n int) int

	publisherOpts []PublisherOption

	state *State
}

// New validates cfg against the roster and returns an Agent ready to Run.
func New(cfg Config, r roster.Roster, store mailbox.Store, prompter Prompter, opts ...Option) (*Agent, error) {
	if r.Len() < roster.MinSize {
		return nil, fmt.Errorf("swarm of %d agents is too small", r.Len())
	}
	if cfg.Index < 0 || cfg.Index >= r.Len() {
		return nil, fmt.Errorf("agent index %d out of range [0,%d)", cfg.Index, r.Len())
	}
	if cfg.Start != (mailbox.Position{}) && !cfg.Start.InArena() {
		return nil, fmt.Errorf("start position %s outside the arena", cfg.Start)
	}
	if cfg.Threshold < 0 {
		cfg.Threshold = DefaultThreshold
	}

	a := &Agent{
		cfg:      cfg,
		roster:   r,
		store:    store,
		prompter: prompter,
		bus:      event.NewBus(),
		logger:   logging.NopLogger(),
		randIntN: rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithAgent(cfg.Index)
	a.state = NewState(cfg.Index, r.Len(), cfg.Threshold)
	return a, nil
}

// State returns the agent's shared state.
func (a *Agent) State() *State {
	return a.state
}

// Bus returns the event bus the agent publishes on.
func (a *Agent) Bus() *event.Bus {
	return a.bus
}

func (a *Agent) startPosition() mailbox.Position {
	if a.cfg.Start != (mailbox.Position{}) {
		return a.cfg.Start
	}
	span := mailbox.ArenaMax - mailbox.ArenaMin + 1
	return mailbox.Position{
		X: mailbox.ArenaMin + a.randIntN(span),
		Y: mailbox.ArenaMin + a.randIntN(span),
	}
}

// Run claims the agent's slot, ensures every mailbox, publishes the initial
// position and runs the Publisher and Poller until the operator leaves or ctx
// is cancelled. On the way out the agent writes the sentinel to its own
// mailbox. Errors from the startup phase are fatal and nothing is published
// when they occur.
func (a *Agent) Run(ctx context.Context) error {
	self := a.cfg.Index
	labels := a.roster.Labels(a.cfg.LabelDir)

	slot, err := filelock.Claim(labels[self])
	if err != nil {
		a.logger.Error("slot claim failed", "label", labels[self], "error", err.Error())
		return err
	}
	defer func() {
		if releaseErr := slot.Release(); releaseErr != nil {
			a.logger.Warn("slot release failed", "error", releaseErr.Error())
		}
	}()

	mb, err := mailbox.Open(a.store, labels, mailbox.WithBus(a.bus), mailbox.WithLogger(a.logger))
	if err != nil {
		return err
	}

	if a.cfg.Initializer {
		if err := mb.ResetAll(); err != nil {
			return fmt.Errorf("reset mailboxes: %w", err)
		}
	}

	start := a.startPosition()
	if err := mb.Publish(self, start); err != nil {
		return fmt.Errorf("publish initial position: %w", err)
	}
	a.state.SetOwn(start)
	a.bus.Publish(event.NewAgentStartedEvent(self, a.roster.ID(self), start.X, start.Y))
	a.logger.Info("agent started",
		"agent_id", a.roster.ID(self),
		"swarm_size", a.roster.Len(),
		"backend", mb.Backend(),
		"position", start.String(),
		"initializer", a.cfg.Initializer,
	)

	poller := NewPoller(mb, a.state, a.roster,
		WithPollInterval(a.cfg.PollInterval),
		WithPollerBus(a.bus),
		WithPollerLogger(a.logger.WithLoop("poller")),
	)
	publisher := NewPublisher(mb, a.state, a.prompter,
		append([]PublisherOption{WithPublisherLogger(a.logger.WithLoop("publisher"))}, a.publisherOpts...)...,
	)

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var pollErr error
	var wg conc.WaitGroup
	wg.Go(func() {
		pollErr = poller.Run(pollCtx)
	})

	pubErr := publisher.Run(ctx)
	cancel()
	wg.Wait()

	departErr := mb.Depart(self)
	if departErr != nil {
		a.logger.Error("departure not written", "error", departErr.Error())
	} else {
		a.logger.Info("agent departed", "position", a.state.Own().String())
	}

	return errors.Join(pubErr, pollErr, departErr)
}
