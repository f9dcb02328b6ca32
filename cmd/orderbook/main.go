// Command orderbook is the driver: it wires the CSV ingest adapter to the
// orderbook engine, pushes each resulting notification into the SPSC ring,
// and runs the strategy consumer loop on a second goroutine until the
// input is exhausted.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"orderbook/internal/config"
	"orderbook/internal/ingest"
	"orderbook/internal/logging"
	"orderbook/internal/orderbook"
	"orderbook/internal/ring"
	"orderbook/internal/strategy"
	"orderbook/internal/types"
)

// ErrEmptyInput is logged when the ingest adapter parses zero updates from
// the input file; the driver then exits with status 1.
var ErrEmptyInput = errors.New("orderbook: no updates found in input")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("orderbook", flag.ContinueOnError)
	ringCapacity := fs.Int("ring-capacity", ring.DefaultCapacity, "SPSC ring capacity (must be a power of two)")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	strategyLog := fs.Bool("strategy-log", true, "log one line per notification received by the strategy")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	inputPath := "btc_orderbook_updates.csv"
	if fs.NArg() > 0 {
		inputPath = fs.Arg(0)
	}

	cfg := config.New(config.Config{
		InputPath:    inputPath,
		RingCapacity: *ringCapacity,
		LogLevel:     *logLevel,
		StrategyLog:  *strategyLog,
	})

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orderbook: failed to build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	logger.Info("loading input", zap.String("path", cfg.InputPath))
	updates, err := ingest.FromCSV(cfg.InputPath)
	if err != nil {
		logger.Error("failed to load input", zap.Error(err))
		return 1
	}
	logger.Info("parsed updates", zap.Int("count", len(updates)))

	if len(updates) == 0 {
		logger.Error("empty input", zap.Error(ErrEmptyInput))
		return 1
	}

	clock := strategy.NewMonotonicClock()
	notifRing := ring.New[types.BookNotification](cfg.RingCapacity)

	var closed atomic.Bool
	var stats *strategy.Stats
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stats = strategy.Run(notifRing, &closed, clock, logger, cfg.StrategyLog)
	}()

	book := orderbook.New()
	start := clock.NowNS()
	for _, u := range updates {
		sendNS := clock.NowNS()
		notif := book.Apply(u, sendNS)
		notifRing.Push(notif)
	}
	elapsedNS := clock.NowNS() - start

	// Every notification is pushed before closed is set, and nothing is
	// pushed after it: PopBlocking stops once it sees closed and an empty
	// slot, so a later push would never be received.
	closed.Store(true)
	wg.Wait()

	printSummary(logger, len(updates), elapsedNS, book, stats)
	return 0
}

func printSummary(logger *zap.Logger, numUpdates int, elapsedNS uint64, book *orderbook.Book, stats *strategy.Stats) {
	throughput := 0.0
	if elapsedNS > 0 {
		throughput = float64(numUpdates) / float64(elapsedNS) * 1e9
	}

	fmt.Println("\n=== Engine Summary ===")
	fmt.Printf("Total updates:     %d\n", numUpdates)
	fmt.Printf("Engine time:       %.2f ms\n", float64(elapsedNS)/1e6)
	fmt.Printf("Throughput:        %.0f updates/sec\n", throughput)
	fmt.Printf("Final book depth:  %d bids, %d asks\n", book.BidDepth(), book.AskDepth())
	fmt.Printf("Final best bid:    %s\n", formatSummaryLevel(book.BestBid()))
	fmt.Printf("Final best ask:    %s\n", formatSummaryLevel(book.BestAsk()))

	fmt.Println("\n=== Strategy Latency (engine -> strategy) ===")
	fmt.Printf("Updates received:  %d\n", stats.Count)
	fmt.Printf("Min latency:       %d ns\n", stats.Min)
	fmt.Printf("Max latency:       %d ns\n", stats.Max)
	fmt.Printf("Avg latency:       %d ns\n", stats.Avg())
	fmt.Printf("Median latency:    %d ns\n", stats.Median())
	fmt.Printf("P90 latency:       %d ns\n", stats.Percentile(90))
	fmt.Printf("P95 latency:       %d ns\n", stats.Percentile(95))
	fmt.Printf("P99 latency:       %d ns\n", stats.Percentile(99))
	fmt.Printf("P99.9 latency:     %d ns\n", stats.Percentile(99.9))

	logger.Info("run complete",
		zap.Int("updates", numUpdates),
		zap.Uint64("p99_latency_ns", stats.Percentile(99)),
	)
}

// formatSummaryLevel renders a book level for the summary, or "n/a" when the
// side is empty.
func formatSummaryLevel(l *types.Level) string {
	return lo.TernaryF(l != nil,
		func() string { return fmt.Sprintf("%s @ %s", l.Price.ToDecimal().String(), l.Qty.ToDecimal().String()) },
		func() string { return "n/a" },
	)
}
