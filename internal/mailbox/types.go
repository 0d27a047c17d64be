package mailbox

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Arena limits for a published position, inclusive on both axes.
const (
	ArenaMin = 1
	ArenaMax = 30
)

// positionSize is the wire size of a Position: two 32-bit integers.
const positionSize = 8

// Arena is the square in which active agents move.
var Arena = orb.Bound{
	Min: orb.Point{ArenaMin, ArenaMin},
	Max: orb.Point{ArenaMax, ArenaMax},
}

// Position is a point on the integer grid.
type Position struct {
	X int
	Y int
}

// Sentinel marks a mailbox whose agent has departed or has not yet started.
var Sentinel = Position{X: -1, Y: -1}

// Departed reports whether p belongs to an inactive agent. Any negative
// coordinate counts, not only the exact sentinel, so a torn read of a
// half-written sentinel is treated as departed too.
func (p Position) Departed() bool {
	return p.X < 0 || p.Y < 0
}

// InArena reports whether p lies inside [Arena].
func (p Position) InArena() bool {
	return Arena.Contains(p.Point())
}

// Point converts p to an orb.Point.
func (p Position) Point() orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// InRange reports whether v is an acceptable coordinate on either axis.
func InRange(v int) bool {
	return v >= ArenaMin && v <= ArenaMax
}
