package history

import "github.com/gammazero/deque"

const (
	PanelCapacity = 240
	IconCapacity  = 32
)

// Buffer is a fixed-capacity FIFO of rate values, oldest first. Pushing into
// a full buffer evicts the oldest value.
type Buffer struct {
	capacity int
	values   deque.Deque[uint64]
}

func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{capacity: capacity}
}

func (b *Buffer) Push(v uint64) {
	for b.values.Len() >= b.capacity {
		b.values.PopFront()
	}
	b.values.PushBack(v)
}

func (b *Buffer) Snapshot() []uint64 {
	out := make([]uint64, b.values.Len())
	for i := range out {
		out[i] = b.values.At(i)
	}
	return out
}

// Max returns the largest retained value, or 1 when there is nothing to
// scale against.
func (b *Buffer) Max() uint64 {
	var peak uint64
	for i := 0; i < b.values.Len(); i++ {
		if v := b.values.At(i); v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return 1
	}
	return peak
}

func (b *Buffer) Len() int {
	return b.values.Len()
}

func (b *Buffer) Cap() int {
	return b.capacity
}
