// Package quotes periodically publishes each symbol's top of book.
package quotes

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/kafka"
)

type Quote struct {
	Symbol   string `json:"symbol"`
	BidPrice int64  `json:"bid_price"`
	BidQty   int64  `json:"bid_qty"`
	AskPrice int64  `json:"ask_price"`
	AskQty   int64  `json:"ask_qty"`
	Time     int64  `json:"ts"`
}

type Publisher struct {
	registry *market.Registry
	producer *kafka.Producer
	interval time.Duration
	log      *zap.Logger
}

func NewPublisher(
	reg *market.Registry,
	producer *kafka.Producer,
	interval time.Duration,
	log *zap.Logger,
) *Publisher {
	return &Publisher{
		registry: reg,
		producer: producer,
		interval: interval,
		log:      log,
	}
}

// Run blocks until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishOnce(ctx)
		}
	}
}

func (p *Publisher) publishOnce(ctx context.Context) {
	now := time.Now().UnixNano()
	p.registry.Range(func(symbol string, b *orderbook.OrderBook) {
		q := Quote{Symbol: symbol, Time: now}
		if price, qty, ok := b.BestBid(); ok {
			q.BidPrice, q.BidQty = price, qty
		}
		if price, qty, ok := b.BestAsk(); ok {
			q.AskPrice, q.AskQty = price, qty
		}

		value, err := json.Marshal(q)
		if err != nil {
			return
		}
		if err := p.producer.Send(ctx, []byte(symbol), value); err != nil {
			p.log.Warn("quote publish failed",
				zap.String("symbol", symbol), zap.Error(err))
		}
	})
}
