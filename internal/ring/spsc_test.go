package ring

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestTryPushTryPopFIFO(t *testing.T) {
	q := New[int](8)
	for i := 0; i < 8; i++ {
		if !q.TryPush(i) {
			t.Fatalf("TryPush(%d) failed unexpectedly", i)
		}
	}
	for i := 0; i < 8; i++ {
		v, ok := q.TryPop()
		if !ok {
			t.Fatalf("TryPop() failed at i=%d", i)
		}
		if v != i {
			t.Errorf("TryPop() = %d, want %d", v, i)
		}
	}
}

func TestRingFullness(t *testing.T) {
	const capacity = 16
	q := New[int](capacity)
	for i := 0; i < capacity; i++ {
		if !q.TryPush(i) {
			t.Fatalf("TryPush(%d) failed, expected room up to capacity", i)
		}
	}
	if q.TryPush(capacity) {
		t.Fatal("TryPush succeeded past capacity, want failure")
	}
}

func TestTryPopEmpty(t *testing.T) {
	q := New[int](4)
	if _, ok := q.TryPop(); ok {
		t.Fatal("TryPop() on empty ring returned ok=true")
	}
}

func TestWrapAroundPreservesOrder(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 100; i++ {
		if !q.TryPush(i) {
			t.Fatalf("TryPush(%d) failed", i)
		}
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("TryPop() = (%d, %v), want (%d, true)", v, ok, i)
		}
	}
}

// Scenario E — latency pipe, exercised structurally: push K then close,
// consumer observes exactly K items in order then the closed signal.
func TestCloseSafety(t *testing.T) {
	const k = 10
	q := New[uint64](4)
	var closed atomic.Bool

	var wg sync.WaitGroup
	wg.Add(1)
	received := make([]uint64, 0, k)
	go func() {
		defer wg.Done()
		for {
			v, ok := q.PopBlocking(&closed)
			if !ok {
				return
			}
			received = append(received, v)
		}
	}()

	for i := uint64(1); i <= k; i++ {
		q.Push(i)
	}
	closed.Store(true)
	wg.Wait()

	if len(received) != k {
		t.Fatalf("received %d items, want %d", len(received), k)
	}
	for i, v := range received {
		if v != uint64(i+1) {
			t.Errorf("received[%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestPopBlockingReturnsFalseWhenClosedAndEmpty(t *testing.T) {
	q := New[int](4)
	var closed atomic.Bool
	closed.Store(true)

	if _, ok := q.PopBlocking(&closed); ok {
		t.Fatal("PopBlocking() on empty closed ring returned ok=true")
	}
}

func TestConcurrentProducerConsumerFIFO(t *testing.T) {
	const n = 50_000
	q := New[int](256)
	var closed atomic.Bool

	var wg sync.WaitGroup
	wg.Add(1)
	results := make([]int, 0, n)
	go func() {
		defer wg.Done()
		for {
			v, ok := q.PopBlocking(&closed)
			if !ok {
				return
			}
			results = append(results, v)
		}
	}()

	for i := 0; i < n; i++ {
		q.Push(i)
	}
	closed.Store(true)
	wg.Wait()

	if len(results) != n {
		t.Fatalf("received %d items, want %d", len(results), n)
	}
	for i, v := range results {
		if v != i {
			t.Fatalf("results[%d] = %d, want %d", i, v, i)
		}
	}
}
