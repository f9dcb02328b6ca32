// Package orderbook implements the incremental L2 orderbook engine: a
// two-sided book keyed by fixed-point price with a monotonically maintained
// best-of-book cache so best_bid/best_ask reads never touch the tree.
package orderbook

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"

	"orderbook/internal/types"
)

// bidComparator orders bid prices descending so the tree's leftmost node is
// the best (highest) bid.
func bidComparator(a, b interface{}) int {
	pa, pb := a.(types.Price), b.(types.Price)
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	default:
		return 0
	}
}

// askComparator orders ask prices ascending so the tree's leftmost node is
// the best (lowest) ask.
func askComparator(a, b interface{}) int {
	pa, pb := a.(types.Price), b.(types.Price)
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}

// Book is the exclusively single-owner, lock-free-to-mutate L2 book. It is
// created empty and lives for the duration of one run.
type Book struct {
	bids *rbt.Tree
	asks *rbt.Tree

	bestBid *types.Level
	bestAsk *types.Level

	seq uint64
}

// New returns an empty book.
func New() *Book {
	return &Book{
		bids: rbt.NewWith(bidComparator),
		asks: rbt.NewWith(askComparator),
	}
}

// Apply mutates the book per the update variant, increments seq by exactly
// one, and returns a notification carrying the post-mutation best bid/ask.
// Apply is total: it has no failure mode over well-formed updates.
func (b *Book) Apply(u types.Update, sendNS uint64) types.BookNotification {
	switch u.Kind {
	case types.KindSnapshot:
		b.applySnapshot(u.Bids, u.Asks)
	default:
		b.applyIncremental(u.Side, u.Level)
	}
	b.seq++
	return types.BookNotification{
		UpdateTimestamp: u.Timestamp,
		EngineSendNS:    sendNS,
		Seq:             b.seq,
		BestBid:         b.bestBid,
		BestAsk:         b.bestAsk,
	}
}

// applySnapshot replaces the entire book. Zero-quantity levels are dropped;
// duplicate prices within one snapshot are last-writer-wins, which falls
// out naturally from sequential tree inserts.
func (b *Book) applySnapshot(bids, asks []types.Level) {
	b.bids = rbt.NewWith(bidComparator)
	b.asks = rbt.NewWith(askComparator)

	for _, l := range bids {
		if l.Qty.IsZero() {
			continue
		}
		b.bids.Put(l.Price, l.Qty)
	}
	for _, l := range asks {
		if l.Qty.IsZero() {
			continue
		}
		b.asks.Put(l.Price, l.Qty)
	}

	b.bestBid = extremum(b.bids)
	b.bestAsk = extremum(b.asks)
}

// applyIncremental inserts, overwrites, or deletes a single level and keeps
// the monotone best-of-book cache in sync without a tree traversal on the
// common (non-improving) path.
func (b *Book) applyIncremental(side types.Side, level types.Level) {
	var tree *rbt.Tree
	var best **types.Level
	var improves func(incoming, cached types.Price) bool

	if side == types.Bid {
		tree, best = b.bids, &b.bestBid
		improves = func(incoming, cached types.Price) bool { return incoming >= cached }
	} else {
		tree, best = b.asks, &b.bestAsk
		improves = func(incoming, cached types.Price) bool { return incoming <= cached }
	}

	if level.Qty.IsZero() {
		_, found := tree.Get(level.Price)
		tree.Remove(level.Price)
		if found && *best != nil && (*best).Price == level.Price {
			*best = extremum(tree)
		}
		return
	}

	tree.Put(level.Price, level.Qty)
	if *best == nil || improves(level.Price, (*best).Price) {
		lvl := level
		*best = &lvl
	}
}

// extremum reads the tree's best (leftmost, per the side's comparator)
// entry by a single root-to-leaf descent, O(log N) with no full scan — this
// is the cache-refresh primitive used
// after a snapshot or after deleting the current best.
func extremum(tree *rbt.Tree) *types.Level {
	node := tree.Left()
	if node == nil {
		return nil
	}
	return &types.Level{
		Price: node.Key.(types.Price),
		Qty:   node.Value.(types.Qty),
	}
}

// BestBid returns the cached best bid, or nil if the bid side is empty.
func (b *Book) BestBid() *types.Level { return b.bestBid }

// BestAsk returns the cached best ask, or nil if the ask side is empty.
func (b *Book) BestAsk() *types.Level { return b.bestAsk }

// BidDepth returns the number of distinct bid price levels.
func (b *Book) BidDepth() int { return b.bids.Size() }

// AskDepth returns the number of distinct ask price levels.
func (b *Book) AskDepth() int { return b.asks.Size() }

// Seq returns the current sequence counter.
func (b *Book) Seq() uint64 { return b.seq }
