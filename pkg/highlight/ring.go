package highlight

// PositionRing remembers the byte offsets of the most recently consumed
// code points. It is used to recover where a match of known length began.
type PositionRing struct {
	offsets []int
	next    int
	count   int
}

// NewPositionRing creates a ring holding up to capacity offsets.
func NewPositionRing(capacity int) *PositionRing {
	if capacity < 1 {
		capacity = 1
	}
	return &PositionRing{offsets: make([]int, capacity)}
}

// Push records the offset of the code point just consumed, overwriting the
// oldest entry when full.
func (r *PositionRing) Push(offset int) {
	r.offsets[r.next] = offset
	r.next = (r.next + 1) % len(r.offsets)
	if r.count < len(r.offsets) {
		r.count++
	}
}

// Back returns the offset pushed n pushes ago; Back(1) is the newest.
// The second result is false when n is outside the remembered window.
func (r *PositionRing) Back(n int) (int, bool) {
	if n < 1 || n > r.count {
		return 0, false
	}
	idx := (r.next - n + len(r.offsets)) % len(r.offsets)
	return r.offsets[idx], true
}

// Len returns the number of remembered offsets.
func (r *PositionRing) Len() int {
	return r.count
}

// Cap returns the ring capacity.
func (r *PositionRing) Cap() int {
	return len(r.offsets)
}

// Reset forgets all offsets.
func (r *PositionRing) Reset() {
	r.next = 0
	r.count = 0
}
