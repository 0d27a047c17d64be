package mailbox

import (
	"fmt"
	"sync"

	"github.com/Iron-Ham/swarmbot/internal/errors"
)

// MemoryStore is a process-local Store. It has the same single-slot,
// last-write-wins semantics as the shared backends and lets tests inject
// allocation and read failures.
type MemoryStore struct {
	mu         sync.Mutex
	slots      map[string]Position
	ensureErrs map[string]error
	readErrs   map[string]error
	reads      map[string]int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:      make(map[string]Position),
		ensureErrs: make(map[string]error),
		readErrs:   make(map[string]error),
		reads:      make(map[string]int),
	}
}

func (s *MemoryStore) Name() string { return BackendMemory }

// FailEnsure makes every later Ensure of label fail with err wrapped as an
// allocation failure.
func (s *MemoryStore) FailEnsure(label string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureErrs[label] = err
}

// FailRead makes every later Read of label fail with err. A nil err clears it.
func (s *MemoryStore) FailRead(label string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.readErrs, label)
		return
	}
	s.readErrs[label] = err
}

// Reads returns how many times label has been read.
func (s *MemoryStore) Reads(label string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[label]
}

func (s *MemoryStore) Ensure(label string) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureErrs[label]; err != nil {
		return Handle{}, errors.NewMailboxError("ensure",
			fmt.Errorf("%w: %w", errors.ErrMailboxAlloc, err)).WithLabel(label)
	}
	if _, ok := s.slots[label]; !ok {
		s.slots[label] = Position{}
	}
	return Handle{Label: label}, nil
}

func (s *MemoryStore) Read(h Handle) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads[h.Label]++
	if err := s.readErrs[h.Label]; err != nil {
		return Position{}, errors.NewMailboxError("read", err).WithLabel(h.Label)
	}
	p, ok := s.slots[h.Label]
	if !ok {
		return Position{}, errors.NewMailboxError("read", errors.ErrMailboxNotFound).WithLabel(h.Label)
	}
	return p, nil
}

func (s *MemoryStore) Write(h Handle, p Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[h.Label]; !ok {
		return errors.NewMailboxError("write", errors.ErrMailboxNotFound).WithLabel(h.Label)
	}
	s.slots[h.Label] = p
	return nil
}

func (s *MemoryStore) Reset(h Handle) error {
	return s.Write(h, Sentinel)
}

func (s *MemoryStore) Remove(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, h.Label)
	return nil
}
