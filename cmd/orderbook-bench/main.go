// Command orderbook-bench measures CSV parsing throughput, isolated engine
// throughput, and end-to-end throughput through the SPSC ring, then reports
// the same latency percentile table the main driver prints.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"orderbook/internal/ingest"
	"orderbook/internal/orderbook"
	"orderbook/internal/ring"
	"orderbook/internal/strategy"
	"orderbook/internal/types"
)

const (
	warmupIterations = 5
	benchIterations  = 20
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("orderbook-bench", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	csvPath := "btc_orderbook_updates.csv"
	if fs.NArg() > 0 {
		csvPath = fs.Arg(0)
	}

	fmt.Println("=== orderbook-bench ===")

	clock := strategy.NewMonotonicClock()

	fmt.Println("-- CSV parse throughput --")
	updates, err := ingest.FromCSV(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orderbook-bench: %v\n", err)
		return 1
	}
	if len(updates) == 0 {
		fmt.Fprintln(os.Stderr, "orderbook-bench: no updates parsed, exiting")
		return 1
	}
	for i := 0; i < warmupIterations; i++ {
		if _, err := ingest.FromCSV(csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "orderbook-bench: %v\n", err)
			return 1
		}
	}
	parseTimes := make([]uint64, 0, benchIterations)
	for i := 0; i < benchIterations; i++ {
		start := clock.NowNS()
		if _, err := ingest.FromCSV(csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "orderbook-bench: %v\n", err)
			return 1
		}
		parseTimes = append(parseTimes, clock.NowNS()-start)
	}
	minParseNS := minUint64(parseTimes)
	fmt.Printf("Updates parsed:  %d\n", len(updates))
	fmt.Printf("Min parse time:  %.2f us\n", float64(minParseNS)/1e3)
	fmt.Printf("Parse throughput: %.0f updates/sec (best run)\n\n", float64(len(updates))/float64(minParseNS)*1e9)

	fmt.Println("-- Engine throughput (isolated, no ring) --")
	for i := 0; i < warmupIterations; i++ {
		runEngineOnly(updates)
	}
	engineTimes := make([]uint64, 0, benchIterations)
	for i := 0; i < benchIterations; i++ {
		start := clock.NowNS()
		runEngineOnly(updates)
		engineTimes = append(engineTimes, clock.NowNS()-start)
	}
	minEngineNS := minUint64(engineTimes)
	perUpdateNS := float64(minEngineNS) / float64(len(updates))
	fmt.Printf("Min engine time:   %.2f us\n", float64(minEngineNS)/1e3)
	fmt.Printf("Per-update:        %.0f ns\n", perUpdateNS)
	fmt.Printf("Engine throughput: %.0f updates/sec (best run)\n\n", float64(len(updates))/float64(minEngineNS)*1e9)

	fmt.Println("-- End-to-end throughput (engine + ring + strategy) --")
	var lastStats *strategy.Stats
	e2eTimes := make([]uint64, 0, benchIterations)
	for i := 0; i < benchIterations; i++ {
		start := clock.NowNS()
		lastStats = runEndToEnd(updates, clock)
		e2eTimes = append(e2eTimes, clock.NowNS()-start)
	}
	minE2ENS := minUint64(e2eTimes)
	fmt.Printf("Min e2e time:      %.2f us\n", float64(minE2ENS)/1e3)
	fmt.Printf("E2E throughput:    %.0f updates/sec (best run)\n\n", float64(len(updates))/float64(minE2ENS)*1e9)

	fmt.Println("-- Engine -> strategy latency --")
	if lastStats != nil {
		fmt.Printf("Samples:       %d\n", lastStats.Count)
		fmt.Printf("Min latency:   %d ns\n", lastStats.Min)
		fmt.Printf("Max latency:   %d ns\n", lastStats.Max)
		fmt.Printf("Avg latency:   %d ns\n", lastStats.Avg())
		fmt.Printf("P50 latency:   %d ns\n", lastStats.Median())
		fmt.Printf("P90 latency:   %d ns\n", lastStats.Percentile(90))
		fmt.Printf("P95 latency:   %d ns\n", lastStats.Percentile(95))
		fmt.Printf("P99 latency:   %d ns\n", lastStats.Percentile(99))
		fmt.Printf("P99.9 latency: %d ns\n", lastStats.Percentile(99.9))
	}
	return 0
}

func runEngineOnly(updates []types.Update) *orderbook.Book {
	book := orderbook.New()
	for _, u := range updates {
		book.Apply(u, 0)
	}
	return book
}

func runEndToEnd(updates []types.Update, clock strategy.Clock) *strategy.Stats {
	q := ring.New[types.BookNotification](ring.DefaultCapacity)
	var closed atomic.Bool
	logger := zap.NewNop()

	var stats *strategy.Stats
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stats = strategy.Run(q, &closed, clock, logger, false)
	}()

	book := orderbook.New()
	for _, u := range updates {
		sendNS := clock.NowNS()
		notif := book.Apply(u, sendNS)
		q.Push(notif)
	}
	closed.Store(true)
	wg.Wait()
	return stats
}

func minUint64(vs []uint64) uint64 {
	sorted := make([]uint64, len(vs))
	copy(sorted, vs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[0]
}
