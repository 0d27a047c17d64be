package mailbox

import (
	"sync/atomic"
	"unsafe"
)

// loadPosition reads a Position from an attached segment. Each coordinate is
// loaded atomically; the pair is not.
func loadPosition(seg []byte) Position {
	x, y := coords(seg)
	return Position{
		X: int(atomic.LoadInt32(x)),
		Y: int(atomic.LoadInt32(y)),
	}
}

// storePosition writes p to an attached segment, x first.
func storePosition(seg []byte, p Position) {
	x, y := coords(seg)
	atomic.StoreInt32(x, int32(p.X))
	atomic.StoreInt32(y, int32(p.Y))
}

// coords returns pointers to the two coordinates of a segment. Segments come
// from shmat or mmap and are page aligned.
func coords(seg []byte) (x, y *int32) {
	_ = seg[positionSize-1]
	return (*int32)(unsafe.Pointer(&seg[0])), (*int32)(unsafe.Pointer(&seg[4]))
}
