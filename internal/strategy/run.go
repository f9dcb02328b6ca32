// Package strategy implements the downstream consumer loop: it drains book
// notifications from the SPSC ring under a close signal and measures
// engine-to-strategy hand-off latency.
package strategy

import (
	"sync/atomic"

	"go.uber.org/zap"

	"orderbook/internal/ring"
	"orderbook/internal/types"
)

// Run drains q until closed is observed true and the ring is empty,
// recording hand-off latency for every notification received. It returns
// the completed Stats; the caller must join the goroutine running Run
// before reading the result, establishing the happens-before edge that
// makes the read safe without further synchronization.
func Run(q *ring.SPSCQueue[types.BookNotification], closed *atomic.Bool, clock Clock, logger *zap.Logger, logEnabled bool) *Stats {
	stats := NewStats()

	for {
		notif, ok := q.PopBlocking(closed)
		if !ok {
			break
		}
		recvNS := clock.NowNS()
		latency := saturatingSub(recvNS, notif.EngineSendNS)
		stats.Record(latency)

		if logEnabled {
			logger.Debug("notification received",
				zap.Uint64("seq", notif.Seq),
				zap.Uint64("update_timestamp", notif.UpdateTimestamp),
				zap.Stringp("best_bid", formatLevel(notif.BestBid)),
				zap.Stringp("best_ask", formatLevel(notif.BestAsk)),
				zap.Uint64("latency_ns", latency),
			)
		}
	}

	return stats
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func formatLevel(l *types.Level) *string {
	var s string
	if l == nil {
		s = "EMPTY"
	} else {
		s = l.Price.ToDecimal().String() + "@" + l.Qty.ToDecimal().String()
	}
	return &s
}
