package snapshot

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/memory"
)

// Load reads a snapshot file and reinserts its orders into the registry.
// It returns the sequence the snapshot was taken at, which becomes the
// floor for log replay. Entries are resting orders from a consistent
// book state, so reinserting them cannot cross.
func Load(path string, reg *market.Registry, pool *memory.Pool[orderbook.Order]) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return 0, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	for _, e := range snap.Entries {
		o := pool.Get()
		*o = orderbook.Order{
			ID:     e.ID,
			Price:  e.Price,
			Qty:    e.Qty,
			Filled: e.Filled,
			Side:   orderbook.Side(e.Side),
			Status: orderbook.Active,
		}
		if err := reg.Book(e.Symbol).Insert(o); err != nil {
			return 0, fmt.Errorf("restore order %d (%s): %w", e.ID, e.Symbol, err)
		}
	}
	return snap.Seq, nil
}
