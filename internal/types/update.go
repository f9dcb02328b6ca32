package types

// Side identifies which side of the book a level belongs to.
type Side uint8

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// Level is a single book rung: a price and the total resting quantity there.
type Level struct {
	Price Price
	Qty   Qty
}

// Kind tags which variant of Update a value holds.
type Kind uint8

const (
	KindSnapshot Kind = iota
	KindIncremental
)

// Update is a tagged sum of the two mutation shapes the engine accepts: a
// full two-sided snapshot, or a single-level incremental delta. Only the
// fields matching Kind are populated; the zero value of the other variant's
// fields is ignored by Apply.
type Update struct {
	Kind      Kind
	Timestamp uint64

	// Populated when Kind == KindSnapshot.
	Bids []Level
	Asks []Level

	// Populated when Kind == KindIncremental.
	Side  Side
	Level Level
}

// NewSnapshot builds a snapshot update.
func NewSnapshot(timestamp uint64, bids, asks []Level) Update {
	return Update{Kind: KindSnapshot, Timestamp: timestamp, Bids: bids, Asks: asks}
}

// NewIncremental builds a single-level incremental update.
func NewIncremental(timestamp uint64, side Side, level Level) Update {
	return Update{Kind: KindIncremental, Timestamp: timestamp, Side: side, Level: level}
}

// BookNotification is emitted exactly once per applied update. Fields are
// ordered so the whole value stays within two cache lines: the two pointer
// fields (nil when a side is empty) keep the struct small instead of
// carrying two always-present Level values.
type BookNotification struct {
	UpdateTimestamp uint64
	EngineSendNS    uint64
	Seq             uint64
	BestBid         *Level
	BestAsk         *Level
}
