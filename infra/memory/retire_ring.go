package memory

import "sync"

// RetireRing is a bounded FIFO for retired orders. Producers are the
// worker goroutines finishing fills (already serialized per book, but
// many books feed one ring), so unlike a classic SPSC ring it takes a
// small mutex. A full ring drops the object to the GC instead of
// blocking the matching path.
type RetireRing struct {
	mu   sync.Mutex
	buf  []any
	head uint64
	tail uint64
	mask uint64
}

func NewRetireRing(size uint64) *RetireRing {
	if size == 0 || size&(size-1) != 0 {
		panic("RetireRing size must be a power of two")
	}
	return &RetireRing{
		buf:  make([]any, size),
		mask: size - 1,
	}
}

func (r *RetireRing) Enqueue(v any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.head-r.tail == uint64(len(r.buf)) {
		return false
	}
	r.buf[r.head&r.mask] = v
	r.head++
	return true
}

func (r *RetireRing) Dequeue() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tail == r.head {
		return nil
	}
	v := r.buf[r.tail&r.mask]
	r.buf[r.tail&r.mask] = nil
	r.tail++
	return v
}

// Len reports the number of retired objects waiting for reclamation.
func (r *RetireRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.head - r.tail)
}
