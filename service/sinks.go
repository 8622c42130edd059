package service

import (
	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/api/pb"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/engine"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/outbox"
)

// OutboxSink stages every fill in the durable outbox for the
// broadcaster to publish. It runs inside the book's critical section,
// so the write is NoSync; durability is settled when the broadcaster
// acks.
type OutboxSink struct {
	ob  *outbox.Outbox
	log *zap.Logger
}

func NewOutboxSink(ob *outbox.Outbox, log *zap.Logger) *OutboxSink {
	return &OutboxSink{ob: ob, log: log}
}

func (s *OutboxSink) OnFill(f engine.Fill) {
	payload := pb.MarshalFillEvent(&pb.FillEvent{
		Symbol:     f.Symbol,
		Quantity:   f.Qty,
		BuyPrice:   f.BuyPrice,
		SellPrice:  f.SellPrice,
		Sequence:   f.Seq,
		ExecutedAt: f.ExecutedAt,
	})
	if err := s.ob.Put(f.Seq, payload); err != nil {
		// Matching already happened; all we can do is scream.
		s.log.Error("outbox put failed",
			zap.Uint64("seq", f.Seq),
			zap.String("symbol", f.Symbol),
			zap.Error(err),
		)
	}
}

// LogSink mirrors fills into the log at debug level.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) OnFill(f engine.Fill) {
	s.log.Debug("fill",
		zap.Uint64("seq", f.Seq),
		zap.String("symbol", f.Symbol),
		zap.Int64("qty", f.Qty),
		zap.Int64("buy_price", f.BuyPrice),
		zap.Int64("sell_price", f.SellPrice),
		zap.Uint64("buy_order", f.BuyOrder),
		zap.Uint64("sell_order", f.SellOrder),
	)
}
