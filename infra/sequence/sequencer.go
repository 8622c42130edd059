package sequence

import "sync/atomic"

// Sequencer hands out strictly monotonic engine-wide sequence numbers.
// Order IDs and fill sequence numbers both come from here, which is
// what makes WAL replay deterministic.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer. start is 0 on a fresh boot and the last
// replayed sequence after recovery.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}

// Reset moves the sequencer forward after WAL replay. It must not be
// called while traffic is being accepted.
func (s *Sequencer) Reset(v uint64) {
	s.next.Store(v)
}
