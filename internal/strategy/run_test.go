package strategy

import (
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"orderbook/internal/ring"
	"orderbook/internal/types"
)

type fakeClock struct{ ns atomic.Uint64 }

func (c *fakeClock) NowNS() uint64 { return c.ns.Load() }
func (c *fakeClock) set(ns uint64) { c.ns.Store(ns) }

// Scenario E — latency pipe: push 10 notifications with monotonically
// increasing engine_send_ns and seq over a capacity-4 ring, close, and
// confirm the strategy loop records exactly 10 latency samples and that the
// maximum sample does not exceed the total. Delivery order through the ring
// is checked by the ring package's TestCloseSafety.
func TestScenarioE_LatencyPipe(t *testing.T) {
	const n = 10
	q := ring.New[types.BookNotification](4)
	var closed atomic.Bool
	clock := &fakeClock{}
	logger := zap.NewNop()

	var stats *Stats
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stats = Run(q, &closed, clock, logger, false)
	}()

	for i := uint64(1); i <= n; i++ {
		clock.set(i * 100)
		q.Push(types.BookNotification{Seq: i, EngineSendNS: i * 100, UpdateTimestamp: i})
	}
	closed.Store(true)
	wg.Wait()

	if stats.Count != n {
		t.Fatalf("count = %d, want %d", stats.Count, n)
	}
	if stats.Max > stats.TotalLatencyNS {
		t.Errorf("max %d exceeds total %d", stats.Max, stats.TotalLatencyNS)
	}
}

func TestStatsPercentileAndMedian(t *testing.T) {
	s := NewStats()
	for _, v := range []uint64{10, 20, 30, 40, 50} {
		s.Record(v)
	}
	if got := s.Median(); got != 30 {
		t.Errorf("Median() = %d, want 30", got)
	}
	if got := s.Percentile(0); got != 10 {
		t.Errorf("Percentile(0) = %d, want 10", got)
	}
	if got := s.Percentile(100); got != 50 {
		t.Errorf("Percentile(100) = %d, want 50", got)
	}
	if got := s.Avg(); got != 30 {
		t.Errorf("Avg() = %d, want 30", got)
	}
}

func TestStatsEmptyPercentile(t *testing.T) {
	s := NewStats()
	if got := s.Percentile(50); got != 0 {
		t.Errorf("Percentile(50) on empty stats = %d, want 0", got)
	}
	if got := s.Avg(); got != 0 {
		t.Errorf("Avg() on empty stats = %d, want 0", got)
	}
}

func TestStatsMinMaxTracking(t *testing.T) {
	s := NewStats()
	s.Record(100)
	s.Record(5)
	s.Record(500)
	if s.Min != 5 {
		t.Errorf("Min = %d, want 5", s.Min)
	}
	if s.Max != 500 {
		t.Errorf("Max = %d, want 500", s.Max)
	}
}
