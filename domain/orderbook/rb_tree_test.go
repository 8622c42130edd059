package orderbook

import (
	"math/rand"
	"testing"
)

func TestTreeOrderedWalk(t *testing.T) {
	tr := NewRBTree()
	prices := []int64{50, 10, 90, 30, 70, 20, 80, 40, 60}
	for _, p := range prices {
		tr.GetOrCreate(p)
	}

	var asc []int64
	tr.WalkAsc(func(l *PriceLevel) bool {
		asc = append(asc, l.Price)
		return true
	})
	for i := 1; i < len(asc); i++ {
		if asc[i-1] >= asc[i] {
			t.Fatalf("ascending walk out of order: %v", asc)
		}
	}
	if len(asc) != len(prices) {
		t.Fatalf("walk saw %d levels, want %d", len(asc), len(prices))
	}

	var desc []int64
	tr.WalkDesc(func(l *PriceLevel) bool {
		desc = append(desc, l.Price)
		return true
	})
	for i := 1; i < len(desc); i++ {
		if desc[i-1] <= desc[i] {
			t.Fatalf("descending walk out of order: %v", desc)
		}
	}
}

func TestTreeBestEnds(t *testing.T) {
	tr := NewRBTree()
	for _, p := range []int64{42, 7, 99, 13} {
		tr.GetOrCreate(p)
	}
	if best := tr.BestMin(); best == nil || best.Price != 7 {
		t.Fatalf("BestMin = %v, want price 7", best)
	}
	if best := tr.BestMax(); best == nil || best.Price != 99 {
		t.Fatalf("BestMax = %v, want price 99", best)
	}
}

func TestTreeGetOrCreateIsIdempotent(t *testing.T) {
	tr := NewRBTree()
	a := tr.GetOrCreate(55)
	b := tr.GetOrCreate(55)
	if a != b {
		t.Fatal("same price produced two levels")
	}
	if tr.Size() != 1 {
		t.Fatalf("size = %d, want 1", tr.Size())
	}
}

func TestTreeDelete(t *testing.T) {
	tr := NewRBTree()
	for _, p := range []int64{5, 3, 8, 1, 4} {
		tr.GetOrCreate(p)
	}

	tr.Delete(3)
	if tr.Find(3) != nil {
		t.Fatal("deleted price still found")
	}
	if tr.Size() != 4 {
		t.Fatalf("size = %d, want 4", tr.Size())
	}

	var asc []int64
	tr.WalkAsc(func(l *PriceLevel) bool {
		asc = append(asc, l.Price)
		return true
	})
	want := []int64{1, 4, 5, 8}
	for i, p := range want {
		if asc[i] != p {
			t.Fatalf("walk after delete = %v, want %v", asc, want)
		}
	}
}

func TestTreeRandomizedInsertDelete(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := NewRBTree()
	present := map[int64]bool{}

	for i := 0; i < 5000; i++ {
		p := int64(rng.Intn(500) + 1)
		if present[p] && rng.Intn(2) == 0 {
			tr.Delete(p)
			delete(present, p)
		} else {
			tr.GetOrCreate(p)
			present[p] = true
		}
	}

	if tr.Size() != len(present) {
		t.Fatalf("size = %d, want %d", tr.Size(), len(present))
	}
	prev := int64(-1)
	count := 0
	tr.WalkAsc(func(l *PriceLevel) bool {
		if l.Price <= prev {
			t.Fatalf("walk out of order at %d after %d", l.Price, prev)
		}
		if !present[l.Price] {
			t.Fatalf("walk saw deleted price %d", l.Price)
		}
		prev = l.Price
		count++
		return true
	})
	if count != len(present) {
		t.Fatalf("walk saw %d levels, want %d", count, len(present))
	}
}
