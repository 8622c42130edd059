package snapshot

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
)

// Writer persists snapshots as gob files named by sequence number.
type Writer struct {
	dir string
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Capture collects every open order across the registry into a
// Snapshot at seq. For the result to be a valid recovery point, seq
// must agree with the walk: every order with ID <= seq settled, none
// with ID > seq inserted. Callers get that by capturing inside
// OrderService.Quiesce; a bare Capture over live books is only good
// for inspection.
func Capture(seq uint64, reg *market.Registry) Snapshot {
	snap := Snapshot{Seq: seq, Created: time.Now()}

	reg.Range(func(symbol string, b *orderbook.OrderBook) {
		b.WalkOpen(func(o *orderbook.Order) {
			snap.Entries = append(snap.Entries, OrderEntry{
				Symbol: symbol,
				ID:     o.ID,
				Side:   int(o.Side),
				Price:  o.Price,
				Qty:    o.Qty,
				Filled: o.Filled,
			})
		})
	})
	return snap
}

// Write persists one captured snapshot, named by its sequence.
func (w *Writer) Write(snap Snapshot) (string, error) {
	name := fmt.Sprintf("snapshot-%020d.gob", snap.Seq)
	tmp := filepath.Join(w.dir, name+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}

	final := filepath.Join(w.dir, name)
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return final, nil
}

// Dir is the directory snapshots are written to.
func (w *Writer) Dir() string { return w.dir }

// Latest returns the newest snapshot file in dir, or "" if none exist.
func Latest(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "snapshot-*.gob"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	latest := matches[0]
	for _, m := range matches[1:] {
		if m > latest {
			latest = m
		}
	}
	return latest, nil
}

// Prune removes every snapshot file except the newest keep files.
func Prune(dir string, keep int) error {
	matches, err := filepath.Glob(filepath.Join(dir, "snapshot-*.gob"))
	if err != nil {
		return err
	}
	if len(matches) <= keep {
		return nil
	}
	// Glob output is sorted, and the zero-padded seq makes lexical
	// order equal numeric order.
	for _, m := range matches[:len(matches)-keep] {
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	return nil
}
