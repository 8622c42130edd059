package orderbook

import (
	"errors"
	"sync"
)

var (
	// ErrCapacityExceeded is returned when a side's open-order store is
	// full. The order is rejected, the book is untouched, and retrying
	// is the caller's decision.
	ErrCapacityExceeded = errors.New("orderbook: side capacity exceeded")

	// ErrInvalidOrder is returned for non-positive price or quantity,
	// before any book state is mutated.
	ErrInvalidOrder = errors.New("orderbook: price and quantity must be positive")
)

// DefaultCapacity matches the legacy engine's per-side order slots.
const DefaultCapacity = 1024

// Fill is one executed match between the best resting bid and ask.
type Fill struct {
	Qty       int64
	BuyPrice  int64
	SellPrice int64
	BuyID     uint64
	SellID    uint64
}

// Retirer receives orders that reached zero remaining quantity and were
// unlinked from the book. The book never touches a retired order again.
type Retirer interface {
	Retire(*Order)
}

// OrderBook holds the resting orders of one symbol. The mutex is the
// synchronization boundary: insertion, best-price lookup and fill
// application for this symbol all serialize here, and nothing is shared
// across symbols.
type OrderBook struct {
	mu sync.Mutex

	bids *RBTree
	asks *RBTree

	capacity int
	openBids int
	openAsks int

	// orders ever accepted per side, monotone
	insertedBids uint64
	insertedAsks uint64

	retirer Retirer
}

// NewOrderBook creates a book with the given per-side open-order
// capacity. capacity <= 0 falls back to DefaultCapacity. retirer may be
// nil, in which case exhausted orders are left to the GC.
func NewOrderBook(capacity int, retirer Retirer) *OrderBook {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &OrderBook{
		bids:     NewRBTree(),
		asks:     NewRBTree(),
		capacity: capacity,
		retirer:  retirer,
	}
}

// Insert appends a live order to its side's FIFO queue at o.Price.
// Once Insert returns, the order is visible to matching from any
// goroutine. A full side returns ErrCapacityExceeded without mutating
// the book.
func (b *OrderBook) Insert(o *Order) error {
	if o.Price <= 0 || o.Remaining() <= 0 {
		return ErrInvalidOrder
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if o.Side == Buy {
		if b.openBids >= b.capacity {
			return ErrCapacityExceeded
		}
		b.bids.GetOrCreate(o.Price).Enqueue(o)
		b.openBids++
		b.insertedBids++
	} else {
		if b.openAsks >= b.capacity {
			return ErrCapacityExceeded
		}
		b.asks.GetOrCreate(o.Price).Enqueue(o)
		b.openAsks++
		b.insertedAsks++
	}
	o.Status = Active
	return nil
}

// Drain repeatedly crosses the best bid against the best ask until no
// cross remains, invoking onFill for every executed match. The whole
// loop runs in one critical section: deciding the matched quantity,
// decrementing both orders and flipping liveness are a single atomic
// step, and onFill observes fills in execution order.
func (b *OrderBook) Drain(onFill func(Fill)) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	fills := 0
	for {
		bb := b.bids.BestMax()
		aa := b.asks.BestMin()
		if bb == nil || aa == nil || bb.Price < aa.Price {
			return fills
		}

		// Empty levels are deleted eagerly, so the heads exist.
		buy := bb.Head()
		sell := aa.Head()

		trade := min(buy.Remaining(), sell.Remaining())
		buy.Filled += trade
		sell.Filled += trade
		bb.TotalQty -= trade
		aa.TotalQty -= trade

		if onFill != nil {
			onFill(Fill{
				Qty:       trade,
				BuyPrice:  buy.Price,
				SellPrice: sell.Price,
				BuyID:     buy.ID,
				SellID:    sell.ID,
			})
		}
		fills++

		if buy.Remaining() == 0 {
			b.unlinkHead(b.bids, bb)
			b.openBids--
		}
		if sell.Remaining() == 0 {
			b.unlinkHead(b.asks, aa)
			b.openAsks--
		}
	}
}

func (b *OrderBook) unlinkHead(tree *RBTree, lvl *PriceLevel) {
	o := lvl.PopHead()
	o.Status = Inactive
	if lvl.Empty() {
		tree.Delete(lvl.Price)
	}
	if b.retirer != nil {
		b.retirer.Retire(o)
	}
}

// BestBid returns the top of the buy side: highest price, earliest
// insertion first within the price.
func (b *OrderBook) BestBid() (price, qty int64, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	lvl := b.bids.BestMax()
	if lvl == nil {
		return 0, 0, false
	}
	return lvl.Price, lvl.TotalQty, true
}

// BestAsk returns the top of the sell side: lowest price first.
func (b *OrderBook) BestAsk() (price, qty int64, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	lvl := b.asks.BestMin()
	if lvl == nil {
		return 0, 0, false
	}
	return lvl.Price, lvl.TotalQty, true
}

// WalkOpen visits every live resting order: bids best-to-worst, then
// asks best-to-worst. The callback runs inside the book's critical
// section and must not retain order pointers.
func (b *OrderBook) WalkOpen(fn func(*Order)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bids.WalkDesc(func(lvl *PriceLevel) bool {
		for o := lvl.Head(); o != nil; o = o.Next() {
			if o.Status == Active {
				fn(o)
			}
		}
		return true
	})
	b.asks.WalkAsc(func(lvl *PriceLevel) bool {
		for o := lvl.Head(); o != nil; o = o.Next() {
			if o.Status == Active {
				fn(o)
			}
		}
		return true
	})
}

// Depth reports the number of open orders per side.
func (b *OrderBook) Depth() (bids, asks int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openBids, b.openAsks
}

// Inserted reports the monotone per-side accepted-order counters.
func (b *OrderBook) Inserted() (bids, asks uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insertedBids, b.insertedAsks
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
