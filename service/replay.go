package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/api/pb"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/memory"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/outbox"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/sequence"
	entrywal "github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/wal/entry"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/snapshot"
)

// Recover rebuilds book state on startup: load the newest snapshot,
// then re-apply journaled submits after its sequence. Fills produced
// during replay are the same fills that were already published before
// the crash, so replay matches with no sink attached. The sequencer is
// reset past everything seen — journal, snapshot and outbox alike —
// so new IDs and fill sequences never collide with pre-crash ones.
// Fill sequences are not journaled, which is why the outbox scan is
// needed: a staged fill can carry a higher sequence than any submit.
func Recover(
	walDir, snapDir string,
	reg *market.Registry,
	pool *memory.Pool[orderbook.Order],
	seq *sequence.Sequencer,
	ob *outbox.Outbox,
	log *zap.Logger,
) error {
	var floor uint64

	path, err := snapshot.Latest(snapDir)
	if err != nil {
		return fmt.Errorf("find snapshot: %w", err)
	}
	if path != "" {
		floor, err = snapshot.Load(path, reg, pool)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		log.Info("snapshot restored",
			zap.String("path", path),
			zap.Uint64("seq", floor),
		)
	}

	replayed := 0
	lastSeq, err := entrywal.Replay(walDir, func(rec *entrywal.Record) error {
		if rec.Seq <= floor || rec.Type != entrywal.RecordSubmit {
			return nil
		}
		ord, err := pb.UnmarshalOrderRecord(rec.Data)
		if err != nil {
			return fmt.Errorf("decode submit %d: %w", rec.Seq, err)
		}

		o := pool.Get()
		*o = orderbook.Order{
			ID:     rec.Seq,
			Price:  ord.Price,
			Qty:    ord.Quantity,
			Side:   sideFromProto(ord.Side),
			Status: orderbook.Active,
		}

		book := reg.Book(ord.Symbol)
		if err := book.Insert(o); err != nil {
			// Capacity rejections were rejected live too; the journal
			// records intents, not accepted state.
			pool.Put(o)
			return nil
		}
		book.Drain(nil)
		replayed++
		return nil
	})
	if err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}

	if lastSeq > floor {
		floor = lastSeq
	}
	if ob != nil {
		obMax, err := ob.MaxSeq()
		if err != nil {
			return fmt.Errorf("scan outbox: %w", err)
		}
		if obMax > floor {
			floor = obMax
		}
	}
	seq.Reset(floor)

	log.Info("journal replayed",
		zap.Int("orders", replayed),
		zap.Uint64("seq", floor),
	)
	return nil
}
