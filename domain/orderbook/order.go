package orderbook

type Side int
type Status int

const (
	Buy Side = iota
	Sell
)

const (
	Active Status = iota
	Inactive
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// Order is a pure domain entity. Side and Price never change after
// insertion; only Filled and Status move, and only inside the owning
// book's critical section.
type Order struct {
	ID     uint64 // engine-wide sequence, doubles as time priority
	Price  int64
	Qty    int64 // original quantity
	Filled int64

	Side   Side
	Status Status

	next *Order
	prev *Order
}

// Remaining is the unfilled quantity.
func (o *Order) Remaining() int64 {
	return o.Qty - o.Filled
}

// Live reports whether the order can still match.
func (o *Order) Live() bool {
	return o.Status == Active
}

// Next allows read-only traversal of a price level's FIFO queue.
func (o *Order) Next() *Order {
	return o.next
}
