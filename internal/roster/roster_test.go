package roster

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/swarmbot/internal/errors"
	"github.com/Iron-Ham/swarmbot/internal/mailbox"
)

func memFS(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultFile, []byte(content), 0o644))
	return fs
}

func TestLoad(t *testing.T) {
	fs := memFS(t, "101 102\n103\t104\n")

	r, err := Load(fs, DefaultFile, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []int{101, 102, 103, 104}, r.IDs())
	assert.Equal(t, 103, r.ID(2))
	assert.Equal(t, -1, r.ID(4))
	assert.Equal(t, -1, r.ID(-1))
}

func TestLoad_IgnoresExtraEntries(t *testing.T) {
	r, err := Load(memFS(t, "1 2 3 4 5 6"), DefaultFile, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, r.IDs())
}

func TestLoad_DynamicSize(t *testing.T) {
	r, err := Load(memFS(t, "7 8 9"), DefaultFile, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    error
	}{
		{"fewer than N", "101 102 103", 4, errors.ErrRosterShort},
		{"empty file", "", 4, errors.ErrRosterShort},
		{"single agent with dynamic size", "101", 0, errors.ErrRosterShort},
		{"non-integer", "101 abc 103 104", 4, errors.ErrRosterMalformed},
		{"duplicate", "101 102 101 104", 4, errors.ErrRosterDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(memFS(t, tt.content), DefaultFile, tt.n)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, errors.IsFatal(err))

			var rosterErr *errors.RosterError
			require.ErrorAs(t, err, &rosterErr)
			assert.Equal(t, DefaultFile, rosterErr.Path)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.txt", 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrRosterUnreadable)
	assert.True(t, errors.IsFatal(err))
}

func TestNew_CopiesInput(t *testing.T) {
	ids := []int{1, 2}
	r, err := New(ids)
	require.NoError(t, err)

	ids[0] = 99
	assert.Equal(t, 1, r.ID(0))

	out := r.IDs()
	out[1] = 99
	assert.Equal(t, 2, r.ID(1))
}

func TestRoster_Labels(t *testing.T) {
	r, err := New([]int{5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, mailbox.Labels(".", 3), r.Labels("."))
}
