package console

import (
	"fmt"

	"github.com/Iron-Ham/swarmbot/internal/event"
)

// Sink prints swarm events for the operator.
type Sink struct {
	out      *Output
	self     int
	selfID   int
	subIDs   []string
	attached *event.Bus
}

// NewSink returns a Sink for the agent at roster index self with roster
// identifier selfID.
func NewSink(out *Output, self, selfID int) *Sink {
	return &Sink{out: out, self: self, selfID: selfID}
}

// Attach subscribes the Sink to bus. Call Detach to unsubscribe.
func (s *Sink) Attach(bus *event.Bus) {
	s.attached = bus
	s.subIDs = append(s.subIDs,
		bus.Subscribe(event.TypeAgentStarted, s.handleStarted),
		bus.Subscribe(event.TypeProximity, s.handleProximity),
		bus.Subscribe(event.TypePeerDeparted, s.handlePeerDeparted),
		bus.Subscribe(event.TypeAgentDeparted, s.handleDeparted),
	)
}

// Detach removes every subscription made by Attach.
func (s *Sink) Detach() {
	if s.attached == nil {
		return
	}
	for _, id := range s.subIDs {
		s.attached.Unsubscribe(id)
	}
	s.subIDs = nil
	s.attached = nil
}

func (s *Sink) handleStarted(e event.Event) {
	started, ok := e.(event.AgentStartedEvent)
	if !ok || started.Index != s.self {
		return
	}
	s.out.line(s.out.styles.greeting, fmt.Sprintf("Hello, I am Robot #%d.", started.AgentID))
}

func (s *Sink) handleProximity(e event.Event) {
	prox, ok := e.(event.ProximityEvent)
	if !ok {
		return
	}
	s.out.line(s.out.styles.neighbour, fmt.Sprintf("Message Received: Hello %d, we are neighbours!", prox.AgentID))
}

func (s *Sink) handlePeerDeparted(e event.Event) {
	departed, ok := e.(event.PeerDepartedEvent)
	if !ok {
		return
	}
	s.out.line(s.out.styles.muted, fmt.Sprintf("Robot #%d has left the swarm.", departed.AgentID))
}

func (s *Sink) handleDeparted(e event.Event) {
	departed, ok := e.(event.AgentDepartedEvent)
	if !ok || departed.Index != s.self {
		return
	}
	s.out.line(s.out.styles.muted, fmt.Sprintf("Robot #%d signing off.", s.selfID))
}
