package memory

import "sync/atomic"

// GlobalEpoch monotonically increases.
var GlobalEpoch atomic.Uint64

const inactive = ^uint64(0)

// ReaderEpoch marks when a reader entered a read section. A reader that
// is outside any read section publishes the inactive sentinel.
type ReaderEpoch struct {
	epoch atomic.Uint64
}

func NewReaderEpoch() *ReaderEpoch {
	r := &ReaderEpoch{}
	r.epoch.Store(inactive)
	return r
}

func (r *ReaderEpoch) Enter() {
	r.epoch.Store(GlobalEpoch.Load())
}

func (r *ReaderEpoch) Exit() {
	r.epoch.Store(inactive)
}

func (r *ReaderEpoch) Value() uint64 {
	return r.epoch.Load()
}

// ReclaimablePool is the only requirement for reclamation. It is
// intentionally type-erased.
type ReclaimablePool interface {
	PutAny(any)
}

// AdvanceEpochAndReclaim advances the global epoch and returns retired
// objects to the pool while no reader is inside a read section. The
// ring is FIFO, so the first unsafe object stops the sweep.
func AdvanceEpochAndReclaim(
	ring *RetireRing,
	pool ReclaimablePool,
	readers ...*ReaderEpoch,
) int {
	GlobalEpoch.Add(1)
	min := minReaderEpoch(readers...)

	reclaimed := 0
	for {
		obj := ring.Dequeue()
		if obj == nil {
			return reclaimed
		}

		if min == inactive {
			pool.PutAny(obj)
			reclaimed++
			continue
		}

		_ = ring.Enqueue(obj)
		return reclaimed
	}
}

func minReaderEpoch(rs ...*ReaderEpoch) uint64 {
	min := inactive
	for _, r := range rs {
		if r == nil {
			continue
		}
		v := r.Value()
		if v < min {
			min = v
		}
	}
	return min
}
