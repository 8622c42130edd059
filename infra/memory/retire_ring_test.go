package memory

import (
	"sync"
	"testing"
)

func TestRingFIFO(t *testing.T) {
	r := NewRetireRing(8)
	for i := 0; i < 5; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	for i := 0; i < 5; i++ {
		if got := r.Dequeue(); got != i {
			t.Fatalf("dequeue = %v, want %d", got, i)
		}
	}
	if r.Dequeue() != nil {
		t.Fatal("empty ring returned a value")
	}
}

func TestRingRejectsWhenFull(t *testing.T) {
	r := NewRetireRing(4)
	for i := 0; i < 4; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	if r.Enqueue(99) {
		t.Fatal("full ring accepted a value")
	}
	r.Dequeue()
	if !r.Enqueue(99) {
		t.Fatal("ring rejected after freeing a slot")
	}
}

func TestRingConcurrentProducers(t *testing.T) {
	r := NewRetireRing(1 << 12)

	const producers = 8
	const perProducer = 256

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if !r.Enqueue(struct{}{}) {
					t.Error("enqueue failed below capacity")
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := r.Len(); got != producers*perProducer {
		t.Fatalf("len = %d, want %d", got, producers*perProducer)
	}
}

type countingPool struct {
	returned int
}

func (p *countingPool) PutAny(any) { p.returned++ }

func TestReclaimWithNoActiveReaders(t *testing.T) {
	ring := NewRetireRing(16)
	pool := &countingPool{}
	reader := NewReaderEpoch()

	for i := 0; i < 10; i++ {
		ring.Enqueue(i)
	}

	n := AdvanceEpochAndReclaim(ring, pool, reader)
	if n != 10 || pool.returned != 10 {
		t.Fatalf("reclaimed %d (pool saw %d), want 10", n, pool.returned)
	}
}

func TestReclaimBlockedByActiveReader(t *testing.T) {
	ring := NewRetireRing(16)
	pool := &countingPool{}
	reader := NewReaderEpoch()

	ring.Enqueue(1)
	reader.Enter()

	if n := AdvanceEpochAndReclaim(ring, pool, reader); n != 0 {
		t.Fatalf("reclaimed %d with an active reader, want 0", n)
	}
	if ring.Len() != 1 {
		t.Fatal("object lost from ring")
	}

	reader.Exit()
	if n := AdvanceEpochAndReclaim(ring, pool, reader); n != 1 {
		t.Fatal("object not reclaimed after reader exit")
	}
}
