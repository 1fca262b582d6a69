// Package history provides fixed-length rolling windows over per-frame samples.
package history

// DefaultLength is the window length used for hand tracking.
const DefaultLength = 5

// Buffer is a ring buffer holding the last N samples of a tracked scalar
// such as a hand-centre Y coordinate. The oldest sample is evicted on
// insert once the buffer is full.
type Buffer struct {
	samples []float64
	start   int
	n       int
}

// New creates a Buffer with the given capacity.
// Capacities below 1 are raised to 1.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{samples: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest when at capacity.
func (b *Buffer) Push(v float64) {
	if b.n < len(b.samples) {
		b.samples[(b.start+b.n)%len(b.samples)] = v
		b.n++
		return
	}
	b.samples[b.start] = v
	b.start = (b.start + 1) % len(b.samples)
}

// Displacement returns latest - oldest. The second result is false until
// the buffer holds exactly Cap() samples; callers skip evaluation then.
func (b *Buffer) Displacement() (float64, bool) {
	if !b.Warm() {
		return 0, false
	}
	return b.Latest() - b.Oldest(), true
}

// Warm reports whether the buffer is full.
func (b *Buffer) Warm() bool {
	return b.n == len(b.samples)
}

// Len returns the number of samples held.
func (b *Buffer) Len() int {
	return b.n
}

// Cap returns the window length.
func (b *Buffer) Cap() int {
	return len(b.samples)
}

// Oldest returns the oldest sample, or 0 when empty.
func (b *Buffer) Oldest() float64 {
	if b.n == 0 {
		return 0
	}
	return b.samples[b.start]
}

// Latest returns the newest sample, or 0 when empty.
func (b *Buffer) Latest() float64 {
	if b.n == 0 {
		return 0
	}
	return b.samples[(b.start+b.n-1)%len(b.samples)]
}

// Values returns the samples oldest first.
func (b *Buffer) Values() []float64 {
	out := make([]float64, b.n)
	for i := 0; i < b.n; i++ {
		out[i] = b.samples[(b.start+i)%len(b.samples)]
	}
	return out
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.start = 0
	b.n = 0
}
