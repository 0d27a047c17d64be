//go:build linux

package mailbox

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/Iron-Ham/swarmbot/internal/errors"
)

// projID is the ftok project identifier shared by every agent.
const projID = 1

// sysvStore keeps each mailbox in a System V shared memory segment keyed by
// ftok(label, 1), so that it interoperates with other programs using the same
// key derivation.
type sysvStore struct{}

func newSysVStore() (Store, error) {
	return sysvStore{}, nil
}

func (sysvStore) Name() string { return BackendSysV }

// Ensure creates the label file when missing so that ftok can resolve it,
// then creates or opens the segment.
func (sysvStore) Ensure(label string) (Handle, error) {
	if err := touch(label); err != nil {
		return Handle{}, errors.NewMailboxError("create label",
			fmt.Errorf("%w: %w", errors.ErrMailboxAlloc, err)).WithLabel(label)
	}

	key, err := ftok(label, projID)
	if err != nil {
		return Handle{}, errors.NewMailboxError("ftok",
			fmt.Errorf("%w: %w", errors.ErrMailboxAlloc, err)).WithLabel(label)
	}

	id, err := unix.SysvShmGet(key, positionSize, unix.IPC_CREAT|0o666)
	if err != nil {
		return Handle{}, errors.NewMailboxError("shmget",
			fmt.Errorf("%w: %w", errors.ErrMailboxAlloc, err)).WithLabel(label).WithKey(key)
	}

	return Handle{Label: label, Key: key, ID: id}, nil
}

func (s sysvStore) Read(h Handle) (Position, error) {
	var p Position
	err := s.attached(h, "read", unix.SHM_RDONLY, func(seg []byte) {
		p = loadPosition(seg)
	})
	return p, err
}

func (s sysvStore) Write(h Handle, p Position) error {
	return s.attached(h, "write", 0, func(seg []byte) {
		storePosition(seg, p)
	})
}

func (s sysvStore) Reset(h Handle) error {
	return s.Write(h, Sentinel)
}

func (sysvStore) Remove(h Handle) error {
	if _, err := unix.SysvShmCtl(h.ID, unix.IPC_RMID, nil); err != nil && err != unix.EINVAL && err != unix.EIDRM {
		return errors.NewMailboxError("remove", err).WithLabel(h.Label).WithKey(h.Key)
	}
	return nil
}

// attached runs fn with the segment mapped and always detaches afterwards.
func (sysvStore) attached(h Handle, op string, flag int, fn func([]byte)) error {
	seg, err := unix.SysvShmAttach(h.ID, 0, flag)
	if err != nil {
		return errors.NewMailboxError(op, fmt.Errorf("%w: %w", errors.ErrMailboxAttach, err)).
			WithLabel(h.Label).WithKey(h.Key)
	}
	if len(seg) < positionSize {
		_ = unix.SysvShmDetach(seg)
		return errors.NewMailboxError(op, fmt.Errorf("%w: segment is %d bytes", errors.ErrMailboxAttach, len(seg))).
			WithLabel(h.Label).WithKey(h.Key)
	}

	fn(seg)

	if err := unix.SysvShmDetach(seg); err != nil {
		return errors.NewMailboxError(op+" detach", err).WithLabel(h.Label).WithKey(h.Key)
	}
	return nil
}

// ftok derives an IPC key from a path the way glibc does: the low byte of the
// project id, the low byte of the device number and the low 16 bits of the
// inode.
func ftok(path string, proj int) (int, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return -1, err
	}
	key := uint32(uint64(st.Ino)&0xffff) |
		uint32(uint64(st.Dev)&0xff)<<16 |
		uint32(proj&0xff)<<24
	return int(int32(key)), nil
}

func touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
