package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "peer.proximity", "agent.departed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeAgentStarted      = "agent.started"
	TypeAgentDeparted     = "agent.departed"
	TypePositionPublished = "position.published"
	TypeMailboxReset      = "mailbox.reset"
	TypePeerMoved         = "peer.moved"
	TypePeerDeparted      = "peer.departed"
	TypeProximity         = "peer.proximity"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Own Agent Events
// -----------------------------------------------------------------------------

// AgentStartedEvent is emitted once the agent has written its initial position.
type AgentStartedEvent struct {
	baseEvent
	Index   int // Roster index of this agent
	AgentID int // Roster identifier of this agent
	X, Y    int // Initial position
}

// NewAgentStartedEvent creates an AgentStartedEvent.
func NewAgentStartedEvent(index, agentID, x, y int) AgentStartedEvent {
	return AgentStartedEvent{
		baseEvent: newBaseEvent(TypeAgentStarted),
		Index:     index,
		AgentID:   agentID,
		X:         x,
		Y:         y,
	}
}

// PositionPublishedEvent is emitted after a position is written to a mailbox.
type PositionPublishedEvent struct {
	baseEvent
	Index int
	X, Y  int
}

// NewPositionPublishedEvent creates a PositionPublishedEvent.
func NewPositionPublishedEvent(index, x, y int) PositionPublishedEvent {
	return PositionPublishedEvent{
		baseEvent: newBaseEvent(TypePositionPublished),
		Index:     index,
		X:         x,
		Y:         y,
	}
}

// AgentDepartedEvent is emitted after an agent writes the sentinel to its own mailbox.
type AgentDepartedEvent struct {
	baseEvent
	Index int
}

// NewAgentDepartedEvent creates an AgentDepartedEvent.
func NewAgentDepartedEvent(index int) AgentDepartedEvent {
	return AgentDepartedEvent{
		baseEvent: newBaseEvent(TypeAgentDeparted),
		Index:     index,
	}
}

// MailboxResetEvent is emitted after the initializer flushes every mailbox.
type MailboxResetEvent struct {
	baseEvent
	Count int // Number of mailboxes reset
}

// NewMailboxResetEvent creates a MailboxResetEvent.
func NewMailboxResetEvent(count int) MailboxResetEvent {
	return MailboxResetEvent{
		baseEvent: newBaseEvent(TypeMailboxReset),
		Count:     count,
	}
}

// -----------------------------------------------------------------------------
// Peer Events
// -----------------------------------------------------------------------------

// PeerMovedEvent is emitted when the poller accepts a changed peer position.
type PeerMovedEvent struct {
	baseEvent
	Index   int
	AgentID int
	X, Y    int
}

// NewPeerMovedEvent creates a PeerMovedEvent.
func NewPeerMovedEvent(index, agentID, x, y int) PeerMovedEvent {
	return PeerMovedEvent{
		baseEvent: newBaseEvent(TypePeerMoved),
		Index:     index,
		AgentID:   agentID,
		X:         x,
		Y:         y,
	}
}

// PeerDepartedEvent is emitted when a peer's cached position becomes the sentinel.
type PeerDepartedEvent struct {
	baseEvent
	Index   int
	AgentID int
}

// NewPeerDepartedEvent creates a PeerDepartedEvent.
func NewPeerDepartedEvent(index, agentID int) PeerDepartedEvent {
	return PeerDepartedEvent{
		baseEvent: newBaseEvent(TypePeerDeparted),
		Index:     index,
		AgentID:   agentID,
	}
}

// ProximityEvent is emitted when an active peer is within the proximity threshold.
type ProximityEvent struct {
	baseEvent
	Index    int
	AgentID  int
	X, Y     int
	Distance int
}

// NewProximityEvent creates a ProximityEvent.
func NewProximityEvent(index, agentID, x, y, distance int) ProximityEvent {
	return ProximityEvent{
		baseEvent: newBaseEvent(TypeProximity),
		Index:     index,
		AgentID:   agentID,
		X:         x,
		Y:         y,
		Distance:  distance,
	}
}
