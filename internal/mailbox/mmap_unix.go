//go:build unix

package mailbox

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/Iron-Ham/swarmbot/internal/errors"
)

// mmapSuffix is appended to a label to name its backing file.
const mmapSuffix = ".mbox"

// mmapStore keeps each mailbox in a small file mapped MAP_SHARED, which gives
// the same cross-process visibility as a SysV segment on any unix.
type mmapStore struct{}

func newMmapStore() (Store, error) {
	return mmapStore{}, nil
}

func (mmapStore) Name() string { return BackendMmap }

func (mmapStore) Ensure(label string) (Handle, error) {
	path := label + mmapSuffix
	fail := func(op string, err error) (Handle, error) {
		return Handle{}, errors.NewMailboxError(op, fmt.Errorf("%w: %w", errors.ErrMailboxAlloc, err)).WithLabel(label)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fail("create directory", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return fail("open", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fail("stat", err)
	}
	if info.Size() < positionSize {
		if err := f.Truncate(positionSize); err != nil {
			return fail("truncate", err)
		}
	}

	return Handle{Label: label, Path: path}, nil
}

func (s mmapStore) Read(h Handle) (Position, error) {
	var p Position
	err := s.mapped(h, "read", false, func(seg []byte) {
		p = loadPosition(seg)
	})
	return p, err
}

func (s mmapStore) Write(h Handle, p Position) error {
	return s.mapped(h, "write", true, func(seg []byte) {
		storePosition(seg, p)
	})
}

func (s mmapStore) Reset(h Handle) error {
	return s.Write(h, Sentinel)
}

func (mmapStore) Remove(h Handle) error {
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		return errors.NewMailboxError("remove", err).WithLabel(h.Label)
	}
	return nil
}

// mapped opens and maps the backing file, runs fn, and unmaps and closes it.
func (mmapStore) mapped(h Handle, op string, writable bool, fn func([]byte)) error {
	flag, prot := os.O_RDONLY, unix.PROT_READ
	if writable {
		flag, prot = os.O_RDWR, unix.PROT_READ|unix.PROT_WRITE
	}

	f, err := os.OpenFile(h.Path, flag, 0)
	if err != nil {
		return errors.NewMailboxError(op, fmt.Errorf("%w: %w", errors.ErrMailboxAttach, err)).WithLabel(h.Label)
	}
	defer func() { _ = f.Close() }()

	seg, err := unix.Mmap(int(f.Fd()), 0, positionSize, prot, unix.MAP_SHARED)
	if err != nil {
		return errors.NewMailboxError(op, fmt.Errorf("%w: %w", errors.ErrMailboxAttach, err)).WithLabel(h.Label)
	}

	fn(seg)

	if err := unix.Munmap(seg); err != nil {
		return errors.NewMailboxError(op+" unmap", err).WithLabel(h.Label)
	}
	return nil
}
