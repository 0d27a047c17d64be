package mailbox

import (
	"fmt"
	"path/filepath"
)

// Label returns the label of the mailbox owned by the agent at index, rooted
// at dir. The label doubles as the ftok path for the sysv backend, so it must
// resolve to the same file in every process of the swarm.
func Label(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("robot%d.txt", index))
}

// Labels returns the labels for indexes 0..n-1.
func Labels(dir string, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = Label(dir, i)
	}
	return labels
}
