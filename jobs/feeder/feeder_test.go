package feeder

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/engine"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/memory"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/sequence"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/service"
)

func newTestService(capacity int) *service.OrderService {
	pool := memory.NewPool(func() *orderbook.Order { return new(orderbook.Order) })
	ring := memory.NewRetireRing(1 << 12)
	reg := market.NewRegistry(capacity, nil)
	seq := sequence.New(0)
	eng := engine.New(nil, seq)
	return service.NewOrderService(reg, eng, pool, ring, seq, nil, zap.NewNop())
}

func TestFeederSubmitsAllOrders(t *testing.T) {
	svc := newTestService(1 << 20)

	f := New(svc, Config{
		Workers:         4,
		OrdersPerWorker: 250,
		Symbols:         []string{"AAPL", "GOOG"},
		MaxQty:          100,
		MinPrice:        10,
		MaxPrice:        20,
	}, zap.NewNop())
	f.Run(context.Background())

	submitted, rejected := f.Counts()
	if submitted != 1000 || rejected != 0 {
		t.Fatalf("submitted=%d rejected=%d, want 1000 accepted", submitted, rejected)
	}
}

func TestFeederCountsCapacityRejections(t *testing.T) {
	// A tiny book with one price forces rejections without stopping the run.
	svc := newTestService(1)

	f := New(svc, Config{
		Workers:         2,
		OrdersPerWorker: 100,
		Symbols:         []string{"AAPL"},
		MaxQty:          10,
		MinPrice:        50,
		MaxPrice:        50,
	}, zap.NewNop())
	f.Run(context.Background())

	submitted, rejected := f.Counts()
	if submitted+rejected != 200 {
		t.Fatalf("submitted=%d rejected=%d, want 200 total", submitted, rejected)
	}
	if submitted == 0 {
		t.Fatal("nothing was accepted")
	}
}

func TestFeederStopsOnCancel(t *testing.T) {
	svc := newTestService(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(svc, Config{
		Workers:         2,
		OrdersPerWorker: 1000,
		Symbols:         []string{"AAPL"},
		MaxQty:          10,
		MinPrice:        10,
		MaxPrice:        20,
	}, zap.NewNop())
	f.Run(ctx)

	submitted, rejected := f.Counts()
	if submitted+rejected != 0 {
		t.Fatalf("cancelled feeder still submitted %d orders", submitted+rejected)
	}
}
