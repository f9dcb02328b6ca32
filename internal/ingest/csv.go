// Package ingest is the external-collaborator adapter that turns a
// line-oriented CSV file into a sequence of types.Update values. It is not
// part of the hot path: parsing happens once, up front, before the
// producer loop starts.
package ingest

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"orderbook/internal/types"
)

// ErrInputOpenFailure is wrapped and returned when the input file cannot be
// opened.
var ErrInputOpenFailure = fmt.Errorf("ingest: failed to open input file")

// record is one parsed-but-not-yet-converted CSV row, kept around only long
// enough for lo.Map to turn it into a types.Update.
type record struct {
	kind      byte // 's' or 'i'
	timestamp uint64
	side      types.Side
	price     decimal.Decimal
	qty       decimal.Decimal
	bids      []types.Level
	asks      []types.Level
}

// FromCSV opens path and parses every well-formed line into a types.Update.
// The first line is skipped as a header. Lines that don't start with 's' or
// 'i', or that have too few fields, are silently dropped — best-effort
// ingestion is the contract; no counter is kept.
func FromCSV(path string) ([]types.Update, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputOpenFailure, path, err)
	}
	defer f.Close()

	records, err := parseRecords(f)
	if err != nil {
		return nil, err
	}

	updates := lo.Map(records, func(r record, _ int) types.Update {
		if r.kind == 's' {
			return types.NewSnapshot(r.timestamp, r.bids, r.asks)
		}
		return types.NewIncremental(r.timestamp, r.side, types.Level{
			Price: types.PriceFromDecimal(r.price),
			Qty:   types.QtyFromDecimal(r.qty),
		})
	})
	return updates, nil
}

func parseRecords(f *os.File) ([]record, error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	records := make([]record, 0, 4096)
	firstLine := true
	for scanner.Scan() {
		if firstLine {
			firstLine = false
			continue
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if r, ok := parseLine(line); ok {
			records = append(records, r)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: read %w", err)
	}
	return records, nil
}

func parseLine(line string) (record, bool) {
	switch line[0] {
	case 's':
		return parseSnapshotLine(line)
	case 'i':
		return parseIncrementalLine(line)
	default:
		return record{}, false
	}
}

// parseSnapshotLine handles:
// snapshot,exchange,symbol,<timestamp>,,"[[p,s],...]","[[p,s],...]",,
func parseSnapshotLine(line string) (record, bool) {
	fields, ok := splitQuoted(line)
	if !ok || len(fields) < 7 {
		return record{}, false
	}
	timestamp, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return record{}, false
	}
	bids, ok := parseLevelsJSON(fields[5])
	if !ok {
		return record{}, false
	}
	asks, ok := parseLevelsJSON(fields[6])
	if !ok {
		return record{}, false
	}
	return record{kind: 's', timestamp: timestamp, bids: bids, asks: asks}, true
}

// parseIncrementalLine handles:
// incremental,exchange,symbol,<timestamp>,bid/ask,,,<price>,<size>
func parseIncrementalLine(line string) (record, bool) {
	fields, ok := splitQuoted(line)
	if !ok || len(fields) < 9 {
		return record{}, false
	}
	timestamp, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return record{}, false
	}
	side := types.Ask
	if strings.HasPrefix(fields[4], "b") {
		side = types.Bid
	}
	price, err := decimal.NewFromString(fields[7])
	if err != nil {
		return record{}, false
	}
	qty, err := decimal.NewFromString(fields[8])
	if err != nil {
		return record{}, false
	}
	return record{kind: 'i', timestamp: timestamp, side: side, price: price, qty: qty}, true
}

// splitQuoted splits one CSV line into fields, respecting double-quoted
// fields that themselves contain commas (the JSON-array snapshot fields).
func splitQuoted(line string) ([]string, bool) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return nil, false
	}
	return fields, true
}

// parseLevelsJSON parses a JSON array of [price, qty] pairs into Levels.
func parseLevelsJSON(s string) ([]types.Level, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	var pairs [][2]float64
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, false
	}
	levels := make([]types.Level, 0, len(pairs))
	for _, pair := range pairs {
		levels = append(levels, types.Level{
			Price: types.PriceFromDecimal(decimal.NewFromFloat(pair[0])),
			Qty:   types.QtyFromDecimal(decimal.NewFromFloat(pair[1])),
		})
	}
	return levels, true
}
