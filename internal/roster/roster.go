// Package roster loads the ordered list of agent identifiers that every
// process of a swarm agrees on. A roster index addresses an agent's mailbox
// and its slot in every per-peer array.
package roster

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/swarmbot/internal/errors"
	"github.com/Iron-Ham/swarmbot/internal/mailbox"
)

// DefaultFile is the roster file name used when none is configured.
const DefaultFile = "rollnumbers.txt"

// MinSize is the smallest swarm that makes sense: one agent and one peer.
const MinSize = 2

// Roster is an immutable ordered list of agent identifiers.
type Roster struct {
	ids []int
}

// New builds a Roster from ids, rejecting duplicates.
func New(ids []int) (Roster, error) {
	seen := make(map[int]int, len(ids))
	for i, id := range ids {
		if prev, ok := seen[id]; ok {
			return Roster{}, fmt.Errorf("%w: %d at positions %d and %d", errors.ErrRosterDuplicate, id, prev, i)
		}
		seen[id] = i
	}
	return Roster{ids: append([]int(nil), ids...)}, nil
}

// Load reads whitespace-separated integers from path on fs. When n is
// positive, exactly the first n identifiers form the roster and any further
// tokens are ignored. When n is zero the roster is every identifier in the
// file. A roster shorter than required is an error, so callers can fail
// before creating any mailbox.
func Load(fs afero.Fs, path string, n int) (Roster, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Roster{}, errors.NewRosterError("read", fmt.Errorf("%w: %w", errors.ErrRosterUnreadable, err)).WithPath(path)
	}

	fields := bytes.Fields(data)
	want := n
	if want <= 0 {
		want = len(fields)
	}
	if want < MinSize || len(fields) < want {
		return Roster{}, errors.NewRosterError("load",
			fmt.Errorf("%w: want %d, found %d", errors.ErrRosterShort, max(want, MinSize), len(fields))).WithPath(path)
	}

	ids := make([]int, want)
	for i := range ids {
		id, err := strconv.Atoi(string(fields[i]))
		if err != nil {
			return Roster{}, errors.NewRosterError("parse",
				fmt.Errorf("%w: entry %d is %q", errors.ErrRosterMalformed, i, fields[i])).WithPath(path)
		}
		ids[i] = id
	}

	r, err := New(ids)
	if err != nil {
		return Roster{}, errors.NewRosterError("load", err).WithPath(path)
	}
	return r, nil
}

// Len returns the swarm size N.
func (r Roster) Len() int {
	return len(r.ids)
}

// ID returns the identifier at index, or -1 when index is out of range.
func (r Roster) ID(index int) int {
	if index < 0 || index >= len(r.ids) {
		return -1
	}
	return r.ids[index]
}

// IDs returns a copy of the identifiers in roster order.
func (r Roster) IDs() []int {
	return append([]int(nil), r.ids...)
}

// Labels returns the mailbox label of every agent, rooted at dir.
func (r Roster) Labels(dir string) []string {
	return mailbox.Labels(dir, len(r.ids))
}
