// Package event provides a synchronous pub-sub bus that decouples the agent
// loops from whatever presents their results.
//
// The poller publishes [ProximityEvent], [PeerMovedEvent] and
// [PeerDepartedEvent]; the mailbox facade publishes [PositionPublishedEvent],
// [AgentDepartedEvent] and [MailboxResetEvent]. The console sink and the
// debug log subscribe without either loop knowing about them.
//
// Handlers run on the publishing goroutine, in registration order, with
// type-specific handlers before wildcard ones. A panicking handler is
// recovered so that the poller keeps running.
package event
