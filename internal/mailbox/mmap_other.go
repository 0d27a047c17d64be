//go:build !unix

package mailbox

import (
	"fmt"
	"runtime"

	"github.com/Iron-Ham/swarmbot/internal/errors"
)

func newMmapStore() (Store, error) {
	return nil, errors.NewMailboxError("select backend",
		fmt.Errorf("%w: mmap is not available on %s", errors.ErrBackendUnsupported, runtime.GOOS))
}
