package agent

import (
	"math"

	"github.com/paulmach/orb/planar"

	"github.com/Iron-Ham/swarmbot/internal/mailbox"
)

// DefaultThreshold is the largest distance at which two agents are neighbours.
const DefaultThreshold = 10

// Distance returns the Euclidean distance between a and b, truncated toward
// zero.
func Distance(a, b mailbox.Position) int {
	return int(math.Floor(planar.Distance(a.Point(), b.Point())))
}

// Proximate reports whether a peer at position peer, distance away, is a
// neighbour. Departed peers never are.
func Proximate(peer mailbox.Position, distance, threshold int) bool {
	return !peer.Departed() && distance <= threshold
}
