//go:build linux

package mailbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sysvStoreOrSkip returns a sysv store, skipping when the kernel refuses to
// create segments (containers without IPC namespaces, for example).
func sysvStoreOrSkip(t *testing.T, dir string) Store {
	t.Helper()

	store, err := newSysVStore()
	require.NoError(t, err)

	h, err := store.Ensure(filepath.Join(dir, "probe.txt"))
	if err != nil {
		t.Skipf("System V shared memory unavailable: %v", err)
	}
	require.NoError(t, store.Remove(h))
	return store
}

func TestSysVStore(t *testing.T) {
	dir := t.TempDir()
	exerciseStore(t, sysvStoreOrSkip(t, dir), dir)
}

func TestSysVStore_CreatesLabelFile(t *testing.T) {
	dir := t.TempDir()
	store := sysvStoreOrSkip(t, dir)

	label := filepath.Join(dir, "nested", "robot1.txt")
	h, err := store.Ensure(label)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Remove(h) })

	_, err = os.Stat(label)
	assert.NoError(t, err)
	assert.NotZero(t, h.Key)
}

func TestFtok(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot0.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	k1, err := ftok(path, 1)
	require.NoError(t, err)
	k2, err := ftok(path, 1)
	require.NoError(t, err)
	assert.Equal(t, k1, k2, "ftok must be stable for the same file")
	assert.Equal(t, 1, (k1>>24)&0xff, "project id occupies the top byte")

	k3, err := ftok(path, 2)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	_, err = ftok(filepath.Join(t.TempDir(), "missing.txt"), 1)
	assert.Error(t, err)
}
