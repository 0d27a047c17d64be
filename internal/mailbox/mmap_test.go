//go:build unix

package mailbox

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/swarmbot/internal/errors"
)

func TestMmapStore(t *testing.T) {
	store, err := newMmapStore()
	require.NoError(t, err)
	exerciseStore(t, store, t.TempDir())
}

func TestMmapStore_FileLayout(t *testing.T) {
	store, err := newMmapStore()
	require.NoError(t, err)

	h, err := store.Ensure(Label(t.TempDir(), 2))
	require.NoError(t, err)
	assert.Equal(t, h.Label+mmapSuffix, h.Path)

	info, err := os.Stat(h.Path)
	require.NoError(t, err)
	assert.Equal(t, int64(positionSize), info.Size())

	// A fresh mailbox reads as the origin until someone writes to it.
	got, err := store.Read(h)
	require.NoError(t, err)
	assert.Equal(t, Position{}, got)
}

func TestMmapStore_SharedBetweenStores(t *testing.T) {
	dir := t.TempDir()
	writer, _ := newMmapStore()
	reader, _ := newMmapStore()

	wh, err := writer.Ensure(Label(dir, 0))
	require.NoError(t, err)
	rh, err := reader.Ensure(Label(dir, 0))
	require.NoError(t, err)

	require.NoError(t, writer.Write(wh, Position{X: 3, Y: 29}))
	got, err := reader.Read(rh)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 3, Y: 29}, got)
}

func TestMmapStore_ReadRemoved(t *testing.T) {
	store, _ := newMmapStore()
	h, err := store.Ensure(Label(t.TempDir(), 0))
	require.NoError(t, err)
	require.NoError(t, store.Remove(h))

	_, err = store.Read(h)
	assert.ErrorIs(t, err, errors.ErrMailboxAttach)
	assert.False(t, errors.IsFatal(err))
}
