// Package service orchestrates the submit path: durability first, then
// book insertion, then matching. It owns the memory discipline around
// pooled orders.
package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/api/pb"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/engine"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/memory"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/sequence"
	entrywal "github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/wal/entry"
)

// TopOfBook is a point-in-time best bid and ask for one symbol.
type TopOfBook struct {
	Symbol   string
	BidPrice int64
	BidQty   int64
	HasBid   bool
	AskPrice int64
	AskQty   int64
	HasAsk   bool
}

type OrderService struct {
	reg  *market.Registry
	eng  *engine.Engine
	pool *memory.Pool[orderbook.Order]
	ring *memory.RetireRing
	seq  *sequence.Sequencer
	wal  *entrywal.WAL
	log  *zap.Logger

	// jmu makes ID assignment and the journal append one atomic step,
	// keeping journal sequence numbers in append order.
	jmu sync.Mutex

	// smu gates submissions against snapshot capture. Submits hold it
	// shared for their whole journal-insert-match span; Quiesce takes
	// it exclusively so the sequencer and the books form one cut.
	smu sync.RWMutex

	readers []*memory.ReaderEpoch
}

func NewOrderService(
	reg *market.Registry,
	eng *engine.Engine,
	pool *memory.Pool[orderbook.Order],
	ring *memory.RetireRing,
	seq *sequence.Sequencer,
	wal *entrywal.WAL,
	log *zap.Logger,
	readers ...*memory.ReaderEpoch,
) *OrderService {
	return &OrderService{
		reg:     reg,
		eng:     eng,
		pool:    pool,
		ring:    ring,
		seq:     seq,
		wal:     wal,
		log:     log,
		readers: readers,
	}
}

// SubmitOrder accepts one order and runs the match loop for its symbol.
// The order is journaled before it touches a book, so a crash after
// Append replays to the same state. The assigned order ID is returned;
// capacity and validation failures surface as orderbook errors.
func (s *OrderService) SubmitOrder(
	ctx context.Context,
	symbol string,
	side orderbook.Side,
	qty, price int64,
) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if symbol == "" {
		return 0, fmt.Errorf("%w: empty symbol", orderbook.ErrInvalidOrder)
	}
	if qty <= 0 || price <= 0 {
		return 0, fmt.Errorf("%w: qty=%d price=%d", orderbook.ErrInvalidOrder, qty, price)
	}

	s.smu.RLock()
	defer s.smu.RUnlock()

	id, err := s.journal(symbol, side, qty, price)
	if err != nil {
		return 0, err
	}

	book := s.reg.Book(symbol)

	o := s.pool.Get()
	*o = orderbook.Order{
		ID:     id,
		Price:  price,
		Qty:    qty,
		Side:   side,
		Status: orderbook.Active,
	}

	if err := book.Insert(o); err != nil {
		s.pool.Put(o)
		return 0, err
	}

	s.eng.Match(symbol, book)
	return id, nil
}

func (s *OrderService) journal(symbol string, side orderbook.Side, qty, price int64) (uint64, error) {
	s.jmu.Lock()
	defer s.jmu.Unlock()

	id := s.seq.Next()
	if s.wal == nil {
		return id, nil
	}

	payload := pb.MarshalOrderRecord(&pb.OrderRecord{
		Symbol:   symbol,
		Side:     sideToProto(side),
		Price:    price,
		Quantity: qty,
	})
	rec := entrywal.NewRecord(entrywal.RecordSubmit, id, payload)
	if err := s.wal.Append(rec); err != nil {
		return 0, fmt.Errorf("journal order %d: %w", id, err)
	}
	return id, nil
}

// TopOfBook reads the best prices for a symbol without creating a book
// for symbols never traded.
func (s *OrderService) TopOfBook(symbol string) (TopOfBook, bool) {
	book, ok := s.reg.Lookup(symbol)
	if !ok {
		return TopOfBook{Symbol: symbol}, false
	}
	t := TopOfBook{Symbol: symbol}
	t.BidPrice, t.BidQty, t.HasBid = book.BestBid()
	t.AskPrice, t.AskQty, t.HasAsk = book.BestAsk()
	return t, true
}

// OpenOrders streams every resting order across all books.
func (s *OrderService) OpenOrders(fn func(symbol string, o *orderbook.Order)) {
	s.reg.Range(func(symbol string, b *orderbook.OrderBook) {
		b.WalkOpen(func(o *orderbook.Order) {
			fn(symbol, o)
		})
	})
}

// CurrentSeq is the last sequence number handed out.
func (s *OrderService) CurrentSeq() uint64 {
	return s.seq.Current()
}

// Quiesce runs fn with no submit in flight. The sequencer value handed
// to fn and everything fn reads from the books form a consistent cut:
// every order with ID <= seq has finished inserting and matching, and
// no order with ID > seq exists anywhere. Snapshot capture depends on
// this; an order must never be both in a snapshot and above its
// sequence in the journal, or it would be applied twice on recovery.
func (s *OrderService) Quiesce(fn func(seq uint64)) {
	s.smu.Lock()
	defer s.smu.Unlock()
	fn(s.seq.Current())
}

// AdvanceEpoch runs one reclamation round, returning retired orders to
// the pool when no snapshot reader can still hold a reference.
func (s *OrderService) AdvanceEpoch() int {
	n := memory.AdvanceEpochAndReclaim(s.ring, s.pool, s.readers...)
	if n > 0 {
		s.log.Debug("reclaimed retired orders", zap.Int("count", n))
	}
	return n
}

func sideToProto(s orderbook.Side) pb.Side {
	if s == orderbook.Sell {
		return pb.Side_SIDE_SELL
	}
	return pb.Side_SIDE_BUY
}

func sideFromProto(s pb.Side) orderbook.Side {
	if s == pb.Side_SIDE_SELL {
		return orderbook.Sell
	}
	return orderbook.Buy
}
