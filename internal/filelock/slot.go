package filelock

import (
	"sync"
)

// lockSuffix is appended to a mailbox label to form its lock file path.
const lockSuffix = ".lock"

// Slot is a held claim on an agent slot.
type Slot struct {
	mu   sync.Mutex
	path string
	fd   int
	held bool
}

// Path returns the lock file backing the claim.
func (s *Slot) Path() string {
	return s.path
}

// Held reports whether the claim has not been released yet.
func (s *Slot) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held
}

// LockPath returns the lock file path guarding label.
func LockPath(label string) string {
	return label + lockSuffix
}
