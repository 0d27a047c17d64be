// Package filelock guards agent slots with advisory file locks.
//
// Every agent index owns one mailbox, and two processes started with the
// same index would overwrite each other's position. Before publishing
// anything, an agent claims its slot by taking an exclusive, non-blocking
// flock on <label>.lock. A second process claiming the same slot receives
// errors.ErrSlotClaimed and terminates.
//
// # Basic Usage
//
//	slot, err := filelock.Claim(mailbox.Label(dir, index))
//	if err != nil {
//		return err
//	}
//	defer slot.Release()
//
// The kernel drops the lock when the owning process exits, so a crashed agent
// never leaves its slot claimed.
package filelock
