//go:build !linux

package mailbox

import (
	"fmt"
	"runtime"

	"github.com/Iron-Ham/swarmbot/internal/errors"
)

func newSysVStore() (Store, error) {
	return nil, errors.NewMailboxError("select backend",
		fmt.Errorf("%w: sysv is not available on %s, use mmap", errors.ErrBackendUnsupported, runtime.GOOS))
}
