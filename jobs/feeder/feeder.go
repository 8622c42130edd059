// Package feeder simulates active trading: worker goroutines submit
// random orders across the configured symbol universe.
package feeder

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/service"
)

type Config struct {
	Workers         int
	OrdersPerWorker int
	Symbols         []string
	MaxQty          int64
	MinPrice        int64
	MaxPrice        int64
}

type Feeder struct {
	svc *service.OrderService
	cfg Config
	log *zap.Logger

	submitted atomic.Uint64
	rejected  atomic.Uint64
}

func New(svc *service.OrderService, cfg Config, log *zap.Logger) *Feeder {
	return &Feeder{svc: svc, cfg: cfg, log: log}
}

// Run drives all workers to completion or until ctx is cancelled.
// Capacity rejections are counted, not fatal: a full side is expected
// behavior under sustained one-sided flow.
func (f *Feeder) Run(ctx context.Context) {
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < f.cfg.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			f.runWorker(ctx, worker)
		}(i)
	}
	wg.Wait()

	f.log.Info("feeder finished",
		zap.Uint64("submitted", f.submitted.Load()),
		zap.Uint64("rejected", f.rejected.Load()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (f *Feeder) runWorker(ctx context.Context, worker int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)))

	for i := 0; i < f.cfg.OrdersPerWorker; i++ {
		if ctx.Err() != nil {
			return
		}

		side := orderbook.Buy
		if rng.Intn(2) == 1 {
			side = orderbook.Sell
		}
		symbol := f.cfg.Symbols[rng.Intn(len(f.cfg.Symbols))]
		qty := rng.Int63n(f.cfg.MaxQty) + 1
		price := f.cfg.MinPrice + rng.Int63n(f.cfg.MaxPrice-f.cfg.MinPrice+1)

		_, err := f.svc.SubmitOrder(ctx, symbol, side, qty, price)
		switch {
		case err == nil:
			f.submitted.Add(1)
		case errors.Is(err, orderbook.ErrCapacityExceeded):
			f.rejected.Add(1)
		default:
			f.log.Error("submit failed", zap.Error(err))
			return
		}
	}
}

// Counts reports submitted and capacity-rejected totals so far.
func (f *Feeder) Counts() (submitted, rejected uint64) {
	return f.submitted.Load(), f.rejected.Load()
}
