// Package mailbox implements the per-agent shared memory mailboxes through
// which swarmbot agents publish their positions.
//
// Each agent owns exactly one mailbox. A mailbox holds a single [Position]:
// two native-endian 32-bit integers, x then y, with no header or version. The
// region is persistent: it is created by whichever agent first needs it and is
// not destroyed when a process exits. There is no history and no queue; the
// last write wins.
//
// # Architecture
//
// Mailboxes are addressed by a label, a file-like path derived from the
// agent's roster index (see [Label]). Every process of a swarm derives the
// same labels and therefore reaches the same segments.
//
//	./robot0.txt  -> ftok -> shmget -> 8-byte segment (sysv backend)
//	./robot0.txt.mbox       8-byte file mapped MAP_SHARED (mmap backend)
//
// A [Store] is the low-level backend contract: Ensure, Read, Write, Reset,
// Remove. Every operation attaches the segment, touches it and detaches it
// again; no mapping is held between calls.
//
// [Mailbox] is the roster-wide facade used by the agent. It ensures every
// mailbox once at startup and then addresses them by roster index.
//
// # Consistency
//
// Each coordinate is loaded and stored with a 32-bit atomic operation, but the
// pair is not: a reader racing a writer may observe the new x with the old y.
// Such torn reads are accepted. A write followed by a read with no writer in
// between always returns exactly the written position.
//
// # Basic Usage
//
//	store, err := mailbox.NewStore(mailbox.BackendSysV)
//	mb, err := mailbox.Open(store, roster.Labels("."), mailbox.WithBus(bus))
//	if err != nil {
//	    return err // fatal: a mailbox could not be allocated
//	}
//	_ = mb.Publish(self, mailbox.Position{X: 5, Y: 5})
//	pos, err := mb.Peek(peer)
//	_ = mb.Depart(self)
package mailbox
