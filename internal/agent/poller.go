package agent

import (
	"context"
	"time"

	"github.com/Iron-Ham/swarmbot/internal/event"
	"github.com/Iron-Ham/swarmbot/internal/logging"
	"github.com/Iron-Ham/swarmbot/internal/mailbox"
	"github.com/Iron-Ham/swarmbot/internal/roster"
)

// DefaultPollInterval is the pause after each peer read.
const DefaultPollInterval = 100 * time.Millisecond

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithPollInterval sets the pause after each peer read. Zero disables it.
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d >= 0 {
			p.interval = d
		}
	}
}

// WithPollerBus sets the bus that receives peer and proximity events.
func WithPollerBus(bus *event.Bus) PollerOption {
	return func(p *Poller) {
		p.bus = bus
	}
}

// WithPollerLogger sets the logger of the Poller.
func WithPollerLogger(logger *logging.Logger) PollerOption {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Poller scans every peer mailbox in roster order and reports neighbours.
type Poller struct {
	mb       *mailbox.Mailbox
	state    *State
	roster   roster.Roster
	bus      *event.Bus
	logger   *logging.Logger
	interval time.Duration
}

// NewPoller creates a Poller for the agent described by state.
func NewPoller(mb *mailbox.Mailbox, state *State, r roster.Roster, opts ...PollerOption) *Poller {
	p := &Poller{
		mb:       mb,
		state:    state,
		roster:   r,
		logger:   logging.NopLogger(),
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run scans until ctx is done, then returns nil. Cancellation is noticed
// between peers and during the pause after each read.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Debug("poller started", "interval", p.interval.String())
	for {
		if !p.Scan(ctx) {
			break
		}
	}
	p.logger.Debug("poller stopped")
	return nil
}

// Scan makes one pass over every peer. It reports false if ctx ended the
// pass early.
func (p *Poller) Scan(ctx context.Context) bool {
	self := p.state.Self()
	for peer := range p.mb.Len() {
		if peer == self {
			continue
		}
		if ctx.Err() != nil {
			return false
		}

		pos, err := p.mb.Peek(peer)
		if err != nil {
			p.logger.Warn("peer read failed", "peer", peer, "error", err.Error())
			if !p.sleep(ctx) {
				return false
			}
			continue
		}

		if p.state.Observe(peer, pos) {
			p.announceChange(peer, pos)
		}

		if !p.sleep(ctx) {
			return false
		}

		if r, ok := p.state.Evaluate(peer); ok {
			p.logger.Debug("distance recomputed", "peer", peer, "position", r.Position.String(), "distance", r.Distance)
			if r.Proximate {
				p.logger.Info("neighbour detected", "peer", peer, "peer_id", p.roster.ID(peer), "distance", r.Distance)
				p.publish(event.NewProximityEvent(peer, p.roster.ID(peer), r.Position.X, r.Position.Y, r.Distance))
			}
		}
	}
	return ctx.Err() == nil
}

func (p *Poller) announceChange(peer int, pos mailbox.Position) {
	id := p.roster.ID(peer)
	if pos.Departed() {
		p.logger.Info("peer departed", "peer", peer, "peer_id", id)
		p.publish(event.NewPeerDepartedEvent(peer, id))
		return
	}
	p.logger.Debug("peer moved", "peer", peer, "peer_id", id, "position", pos.String())
	p.publish(event.NewPeerMovedEvent(peer, id, pos.X, pos.Y))
}

func (p *Poller) publish(e event.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}

// sleep pauses for the poll interval. It reports false if ctx ended first.
func (p *Poller) sleep(ctx context.Context) bool {
	if p.interval <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(p.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
