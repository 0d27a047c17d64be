// Package agent implements one member of a swarm: its shared state, the
// Publisher loop that takes new coordinates from the operator, the Poller
// loop that watches every peer mailbox, and the Agent runner that ties both
// to the mailboxes for the lifetime of the process.
//
// # Concurrency
//
// The Publisher runs on the caller's goroutine and the Poller on a second
// one. They share a [State], which serializes every access behind a mutex.
// Mailbox reads are not atomic across processes; a torn read is accepted and
// corrected on the next scan.
//
// # Change Detection
//
// A peer counts as moved only when both of its coordinates differ from the
// cached value. A peer that moves along a single axis is not picked up until
// the countdown forces a recomputation.
//
// # Countdown
//
// Every publish of the agent's own position sets the countdown to N-1, the
// number of peers. Each peer evaluation that recomputes a distance decrements
// it, so one full scan after a move refreshes the distance to every peer.
package agent
