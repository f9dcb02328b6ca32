package strategy

import "sort"

// StatsSampleCapacity is the number of latency samples pre-reserved, so the
// first StatsSampleCapacity samples are recorded without allocating; past
// that, append grows the sample slice.
const StatsSampleCapacity = 8192

// Stats accumulates engine-to-strategy latency measurements for one run.
// It is owned exclusively by the consumer goroutine until that goroutine
// terminates and the driver joins it.
type Stats struct {
	Count          uint64
	TotalLatencyNS uint64
	Min            uint64
	Max            uint64

	latencies []uint64
}

// NewStats returns an empty Stats with its sample slice pre-reserved.
func NewStats() *Stats {
	return &Stats{
		Min:       ^uint64(0),
		latencies: make([]uint64, 0, StatsSampleCapacity),
	}
}

// Record adds one latency sample in nanoseconds.
func (s *Stats) Record(latencyNS uint64) {
	s.Count++
	s.TotalLatencyNS += latencyNS
	if latencyNS < s.Min {
		s.Min = latencyNS
	}
	if latencyNS > s.Max {
		s.Max = latencyNS
	}
	s.latencies = append(s.latencies, latencyNS)
}

// Avg returns the mean latency in nanoseconds, or 0 if no samples recorded.
func (s *Stats) Avg() uint64 {
	if s.Count == 0 {
		return 0
	}
	return s.TotalLatencyNS / s.Count
}

// Median returns the 50th percentile latency.
func (s *Stats) Median() uint64 {
	return s.Percentile(50)
}

// Percentile sorts a copy of the recorded samples and returns the element
// at index floor(p/100*(n-1)), clamped to [0, n-1].
func (s *Stats) Percentile(p float64) uint64 {
	n := len(s.latencies)
	if n == 0 {
		return 0
	}
	sorted := make([]uint64, n)
	copy(sorted, s.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(p / 100 * float64(n-1))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}
