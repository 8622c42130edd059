// Package engine runs the matching loop over per-symbol order books and
// pushes executed fills to a sink.
package engine

import (
	"time"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/sequence"
)

// Fill is the outbound notification for one executed match.
type Fill struct {
	Symbol     string
	Qty        int64
	BuyPrice   int64
	SellPrice  int64
	BuyOrder   uint64
	SellOrder  uint64
	Seq        uint64
	ExecutedAt int64 // unix nanos
}

// FillSink receives fills. For a given symbol, OnFill is invoked in
// execution order, inside the book's critical section, so sinks must be
// cheap and must not call back into the engine.
type FillSink interface {
	OnFill(Fill)
}

// SinkFunc adapts a function to FillSink.
type SinkFunc func(Fill)

func (f SinkFunc) OnFill(fl Fill) { f(fl) }

// MultiSink fans a fill out to several sinks in order.
type MultiSink []FillSink

func (m MultiSink) OnFill(f Fill) {
	for _, s := range m {
		s.OnFill(f)
	}
}

// Engine is stateless apart from its collaborators and is safe for
// concurrent use across symbols; per-symbol serialization comes from
// the book itself.
type Engine struct {
	sink FillSink
	seq  *sequence.Sequencer
}

func New(sink FillSink, seq *sequence.Sequencer) *Engine {
	return &Engine{sink: sink, seq: seq}
}

// Match drains every currently crossable pair on the book and reports
// the number of fills executed. It returns once the best bid no longer
// reaches the best ask.
func (e *Engine) Match(symbol string, book *orderbook.OrderBook) int {
	return book.Drain(func(f orderbook.Fill) {
		if e.sink == nil {
			return
		}
		e.sink.OnFill(Fill{
			Symbol:     symbol,
			Qty:        f.Qty,
			BuyPrice:   f.BuyPrice,
			SellPrice:  f.SellPrice,
			BuyOrder:   f.BuyID,
			SellOrder:  f.SellID,
			Seq:        e.seq.Next(),
			ExecutedAt: time.Now().UnixNano(),
		})
	})
}
