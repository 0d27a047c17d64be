//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/Iron-Ham/swarmbot/internal/errors"
)

// Claim takes an exclusive lock on the slot guarding label. It never blocks:
// when another process holds the slot, the returned error wraps
// errors.ErrSlotClaimed.
func Claim(label string) (*Slot, error) {
	path := LockPath(label)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = unix.Close(fd)
		if err == unix.EWOULDBLOCK {
			return nil, fmt.Errorf("%w: %s", errors.ErrSlotClaimed, path)
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	return &Slot{path: path, fd: fd, held: true}, nil
}

// Release drops the claim. Releasing twice is a no-op. The lock file itself
// is left in place so that concurrent claimers always lock the same inode.
func (s *Slot) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.held {
		return nil
	}
	s.held = false

	unlockErr := unix.Flock(s.fd, unix.LOCK_UN)
	closeErr := unix.Close(s.fd)
	if unlockErr != nil {
		return fmt.Errorf("unlock %s: %w", s.path, unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", s.path, closeErr)
	}
	return nil
}
