package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/engine"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/memory"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/outbox"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/sequence"
	entrywal "github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/wal/entry"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/snapshot"
)

type ringRetirer struct {
	ring *memory.RetireRing
}

func (r ringRetirer) Retire(o *orderbook.Order) {
	_ = r.ring.Enqueue(o)
}

type collectSink struct {
	mu    sync.Mutex
	fills []engine.Fill
}

func (c *collectSink) OnFill(f engine.Fill) {
	c.mu.Lock()
	c.fills = append(c.fills, f)
	c.mu.Unlock()
}

func (c *collectSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fills)
}

type fixture struct {
	svc  *OrderService
	sink *collectSink
	ring *memory.RetireRing
	wal  *entrywal.WAL
	reg  *market.Registry
	dir  string
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()

	dir := t.TempDir()
	wal, err := entrywal.Open(entrywal.Config{Dir: dir, SegmentSize: 1 << 20, SegmentDuration: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { wal.Close() })

	pool := memory.NewPool(func() *orderbook.Order { return new(orderbook.Order) })
	ring := memory.NewRetireRing(1 << 10)
	reg := market.NewRegistry(capacity, ringRetirer{ring: ring})
	seq := sequence.New(0)
	sink := &collectSink{}
	eng := engine.New(sink, seq)

	svc := NewOrderService(reg, eng, pool, ring, seq, wal, zap.NewNop(), memory.NewReaderEpoch())
	return &fixture{svc: svc, sink: sink, ring: ring, wal: wal, reg: reg, dir: dir}
}

func TestSubmitAssignsIncreasingIDs(t *testing.T) {
	fx := newFixture(t, orderbook.DefaultCapacity)
	ctx := context.Background()

	id1, err := fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 100, 50)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := fx.svc.SubmitOrder(ctx, "MSFT", orderbook.Sell, 50, 40)
	if err != nil {
		t.Fatal(err)
	}
	if id2 <= id1 {
		t.Fatalf("ids not increasing: %d then %d", id1, id2)
	}
}

func TestSubmitValidation(t *testing.T) {
	fx := newFixture(t, orderbook.DefaultCapacity)
	ctx := context.Background()

	cases := []struct {
		symbol string
		qty    int64
		price  int64
	}{
		{"", 10, 10},
		{"AAPL", 0, 10},
		{"AAPL", -1, 10},
		{"AAPL", 10, 0},
		{"AAPL", 10, -5},
	}
	for _, c := range cases {
		_, err := fx.svc.SubmitOrder(ctx, c.symbol, orderbook.Buy, c.qty, c.price)
		if !errors.Is(err, orderbook.ErrInvalidOrder) {
			t.Fatalf("(%q, %d, %d): got %v, want ErrInvalidOrder", c.symbol, c.qty, c.price, err)
		}
	}
}

func TestSubmitTriggersMatch(t *testing.T) {
	fx := newFixture(t, orderbook.DefaultCapacity)
	ctx := context.Background()

	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 100, 50)
	if fx.sink.count() != 0 {
		t.Fatal("fill before any cross")
	}
	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Sell, 100, 50)
	if fx.sink.count() != 1 {
		t.Fatalf("got %d fills, want 1", fx.sink.count())
	}
}

func TestSubmitCapacityError(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()

	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 10, 40)
	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 10, 41)
	_, err := fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 10, 42)
	if !errors.Is(err, orderbook.ErrCapacityExceeded) {
		t.Fatalf("got %v, want ErrCapacityExceeded", err)
	}

	// Another symbol is unaffected.
	if _, err := fx.svc.SubmitOrder(ctx, "NVDA", orderbook.Buy, 10, 42); err != nil {
		t.Fatal(err)
	}
}

func TestTopOfBook(t *testing.T) {
	fx := newFixture(t, orderbook.DefaultCapacity)
	ctx := context.Background()

	if _, ok := fx.svc.TopOfBook("AAPL"); ok {
		t.Fatal("top of book for a symbol never traded")
	}

	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 100, 50)
	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Sell, 80, 55)

	top, ok := fx.svc.TopOfBook("AAPL")
	if !ok {
		t.Fatal("symbol missing")
	}
	if !top.HasBid || top.BidPrice != 50 || top.BidQty != 100 {
		t.Fatalf("bid side: %+v", top)
	}
	if !top.HasAsk || top.AskPrice != 55 || top.AskQty != 80 {
		t.Fatalf("ask side: %+v", top)
	}
}

func TestFilledOrdersReclaimedThroughEpoch(t *testing.T) {
	fx := newFixture(t, orderbook.DefaultCapacity)
	ctx := context.Background()

	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 100, 50)
	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Sell, 100, 50)

	if fx.ring.Len() != 2 {
		t.Fatalf("ring holds %d orders, want 2", fx.ring.Len())
	}
	if n := fx.svc.AdvanceEpoch(); n != 2 {
		t.Fatalf("reclaimed %d, want 2", n)
	}
	if fx.ring.Len() != 0 {
		t.Fatal("ring not drained")
	}
}

func TestRecoverRebuildsBooks(t *testing.T) {
	fx := newFixture(t, orderbook.DefaultCapacity)
	ctx := context.Background()

	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 100, 50)
	fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Sell, 40, 50) // partial fill, 60 rests
	fx.svc.SubmitOrder(ctx, "MSFT", orderbook.Sell, 30, 70)
	lastID := fx.svc.CurrentSeq()

	if err := fx.wal.Close(); err != nil {
		t.Fatal(err)
	}

	// Fresh world, same journal.
	pool := memory.NewPool(func() *orderbook.Order { return new(orderbook.Order) })
	reg := market.NewRegistry(orderbook.DefaultCapacity, nil)
	seq := sequence.New(0)

	if err := Recover(fx.dir, t.TempDir(), reg, pool, seq, nil, zap.NewNop()); err != nil {
		t.Fatal(err)
	}

	if seq.Current() != lastID {
		t.Fatalf("sequencer = %d after recovery, want %d", seq.Current(), lastID)
	}

	book, ok := reg.Lookup("AAPL")
	if !ok {
		t.Fatal("AAPL book missing after recovery")
	}
	price, qty, ok := book.BestBid()
	if !ok || price != 50 || qty != 60 {
		t.Fatalf("recovered bid = (%d, %d, %v), want (50, 60, true)", price, qty, ok)
	}
	if _, _, ok := book.BestAsk(); ok {
		t.Fatal("recovered AAPL ask side should be empty")
	}

	msft, ok := reg.Lookup("MSFT")
	if !ok {
		t.Fatal("MSFT book missing after recovery")
	}
	if price, qty, ok := msft.BestAsk(); !ok || price != 70 || qty != 30 {
		t.Fatalf("recovered MSFT ask = (%d, %d, %v)", price, qty, ok)
	}
}

func TestSnapshotCutAndReplayApplyEachOrderOnce(t *testing.T) {
	fx := newFixture(t, orderbook.DefaultCapacity)
	ctx := context.Background()

	idA, err := fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 100, 50)
	if err != nil {
		t.Fatal(err)
	}

	// Cut the snapshot between two submits. Everything at or below the
	// captured sequence must come back from the snapshot alone; everything
	// after it from the journal alone.
	var snap snapshot.Snapshot
	fx.svc.Quiesce(func(seq uint64) {
		snap = snapshot.Capture(seq, fx.reg)
	})

	idB, err := fx.svc.SubmitOrder(ctx, "AAPL", orderbook.Buy, 30, 48)
	if err != nil {
		t.Fatal(err)
	}

	snapDir := t.TempDir()
	writer, err := snapshot.NewWriter(snapDir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := writer.Write(snap); err != nil {
		t.Fatal(err)
	}
	if err := fx.wal.Close(); err != nil {
		t.Fatal(err)
	}

	pool := memory.NewPool(func() *orderbook.Order { return new(orderbook.Order) })
	reg := market.NewRegistry(orderbook.DefaultCapacity, nil)
	seq := sequence.New(0)
	if err := Recover(fx.dir, snapDir, reg, pool, seq, nil, zap.NewNop()); err != nil {
		t.Fatal(err)
	}

	seen := map[uint64]int{}
	reg.Range(func(_ string, b *orderbook.OrderBook) {
		b.WalkOpen(func(o *orderbook.Order) {
			seen[o.ID]++
		})
	})
	for _, id := range []uint64{idA, idB} {
		if seen[id] != 1 {
			t.Fatalf("order %d applied %d times after recovery, want 1", id, seen[id])
		}
	}

	book, ok := reg.Lookup("AAPL")
	if !ok {
		t.Fatal("AAPL book missing after recovery")
	}
	if price, qty, ok := book.BestBid(); !ok || price != 50 || qty != 100 {
		t.Fatalf("recovered bid = (%d, %d, %v), want (50, 100, true)", price, qty, ok)
	}
}

func TestRecoverSequencerClearsOutboxKeys(t *testing.T) {
	ob, err := outbox.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer ob.Close()

	// A fill published at sequence 50 but never journaled: its outbox row
	// must still hold the sequencer floor after recovery, or the next fill
	// would reuse the key and clobber an unacknowledged row.
	if err := ob.Put(50, []byte("pending")); err != nil {
		t.Fatal(err)
	}

	pool := memory.NewPool(func() *orderbook.Order { return new(orderbook.Order) })
	reg := market.NewRegistry(orderbook.DefaultCapacity, nil)
	seq := sequence.New(0)
	if err := Recover(t.TempDir(), t.TempDir(), reg, pool, seq, ob, zap.NewNop()); err != nil {
		t.Fatal(err)
	}

	if seq.Current() < 50 {
		t.Fatalf("sequencer = %d after recovery, want at least 50", seq.Current())
	}
}

func TestConcurrentSubmitters(t *testing.T) {
	fx := newFixture(t, 1<<16)
	ctx := context.Background()

	symbols := []string{"AAPL", "GOOG", "MSFT", "AMZN"}
	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				side := orderbook.Buy
				if (w+i)%2 == 1 {
					side = orderbook.Sell
				}
				sym := symbols[(w+i)%len(symbols)]
				if _, err := fx.svc.SubmitOrder(ctx, sym, side, 10, int64(90+i%20)); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if fx.svc.CurrentSeq() < workers*perWorker {
		t.Fatalf("sequencer = %d, want at least %d", fx.svc.CurrentSeq(), workers*perWorker)
	}

	// Every book must be internally consistent: no crossed top.
	for _, sym := range symbols {
		top, ok := fx.svc.TopOfBook(sym)
		if !ok {
			continue
		}
		if top.HasBid && top.HasAsk && top.BidPrice >= top.AskPrice {
			t.Fatalf("%s left crossed: %+v", sym, top)
		}
	}
}
