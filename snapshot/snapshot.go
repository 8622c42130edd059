package snapshot

import "time"

// OrderEntry is one open resting order, enough to rebuild its book slot.
type OrderEntry struct {
	Symbol string
	ID     uint64
	Side   int
	Price  int64
	Qty    int64
	Filled int64
}

// Snapshot captures every open order across all books at a sequence
// point. Orders already fully filled or cancelled are not included.
type Snapshot struct {
	Seq     uint64
	Created time.Time
	Entries []OrderEntry
}
