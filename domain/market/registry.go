// Package market maps symbols to their uniquely-owned order books.
package market

import (
	"sync"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
)

// Registry is the shard router: every symbol resolves to exactly one
// book, created lazily on first reference. Distinct symbols never alias
// and lookup after creation is a read-lock map hit, so matching on one
// symbol cannot contend with another.
type Registry struct {
	mu    sync.RWMutex
	books map[string]*orderbook.OrderBook

	capacity int
	retirer  orderbook.Retirer
}

// NewRegistry creates an empty registry. capacity and retirer are
// passed through to every book it creates.
func NewRegistry(capacity int, retirer orderbook.Retirer) *Registry {
	return &Registry{
		books:    make(map[string]*orderbook.OrderBook),
		capacity: capacity,
		retirer:  retirer,
	}
}

// Book returns the order book for symbol, creating it on first use.
func (r *Registry) Book(symbol string) *orderbook.OrderBook {
	r.mu.RLock()
	b, ok := r.books[symbol]
	r.mu.RUnlock()
	if ok {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check: another goroutine may have created it between locks.
	if b, ok := r.books[symbol]; ok {
		return b
	}
	b = orderbook.NewOrderBook(r.capacity, r.retirer)
	r.books[symbol] = b
	return b
}

// Lookup returns the book for symbol without creating one.
func (r *Registry) Lookup(symbol string) (*orderbook.OrderBook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[symbol]
	return b, ok
}

// Range visits every known symbol and its book. The callback must not
// call back into the registry.
func (r *Registry) Range(fn func(symbol string, b *orderbook.OrderBook)) {
	r.mu.RLock()
	symbols := make([]string, 0, len(r.books))
	books := make([]*orderbook.OrderBook, 0, len(r.books))
	for s, b := range r.books {
		symbols = append(symbols, s)
		books = append(books, b)
	}
	r.mu.RUnlock()

	for i := range symbols {
		fn(symbols[i], books[i])
	}
}

// Len reports the number of symbols seen so far.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books)
}
