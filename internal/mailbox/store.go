package mailbox

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/swarmbot/internal/errors"
)

// Backend names accepted by NewStore.
const (
	BackendSysV   = "sysv"
	BackendMmap   = "mmap"
	BackendMemory = "memory"
)

// ValidBackends returns the backends selectable from configuration. The
// memory backend is process-local and therefore not listed.
func ValidBackends() []string {
	return []string{BackendSysV, BackendMmap}
}

// Handle identifies an ensured mailbox. It holds no attached memory and may
// be copied freely.
type Handle struct {
	Label string // Label the mailbox was ensured under
	Key   int    // IPC key (sysv backend)
	ID    int    // Segment identifier (sysv backend)
	Path  string // Backing file (mmap backend)
}

// Store is the contract of a mailbox backend. Implementations must attach and
// release the underlying resource inside every call.
type Store interface {
	// Name returns the backend name.
	Name() string

	// Ensure creates the mailbox for label if it does not exist and returns a
	// handle to it. A failure to allocate wraps errors.ErrMailboxAlloc.
	Ensure(label string) (Handle, error)

	// Read returns the position currently held by the mailbox.
	Read(h Handle) (Position, error)

	// Write publishes p to the mailbox.
	Write(h Handle, p Position) error

	// Reset writes the Sentinel to the mailbox.
	Reset(h Handle) error

	// Remove destroys the mailbox. Removing a missing mailbox is not an error.
	Remove(h Handle) error
}

// NewStore returns the backend registered under name.
func NewStore(name string) (Store, error) {
	switch strings.ToLower(name) {
	case BackendSysV:
		return newSysVStore()
	case BackendMmap:
		return newMmapStore()
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.NewMailboxError("select backend",
			fmt.Errorf("%w: %q (valid: %s)", errors.ErrBackendUnsupported, name, strings.Join(ValidBackends(), ", ")))
	}
}

// IsValidBackend reports whether name may be used in configuration.
func IsValidBackend(name string) bool {
	return slices.Contains(ValidBackends(), strings.ToLower(name))
}
