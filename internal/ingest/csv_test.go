package ingest

import (
	"testing"

	"orderbook/internal/types"
)

func TestFromCSVParsesSnapshotAndIncrementals(t *testing.T) {
	updates, err := FromCSV("../../testdata/sample_updates.csv")
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	// 5 data lines, one malformed ('x') silently dropped.
	if len(updates) != 4 {
		t.Fatalf("len(updates) = %d, want 4", len(updates))
	}

	snap := updates[0]
	if snap.Kind != types.KindSnapshot {
		t.Fatalf("updates[0].Kind = %v, want KindSnapshot", snap.Kind)
	}
	if snap.Timestamp != 1000 {
		t.Errorf("snapshot timestamp = %d, want 1000", snap.Timestamp)
	}
	if len(snap.Bids) != 2 || len(snap.Asks) != 2 {
		t.Fatalf("snapshot levels = %d bids, %d asks, want 2/2", len(snap.Bids), len(snap.Asks))
	}
	if snap.Bids[0].Price != types.PriceFromFloat64(100.00) {
		t.Errorf("first bid price = %d, want %d", snap.Bids[0].Price, types.PriceFromFloat64(100.00))
	}

	inc1 := updates[1]
	if inc1.Kind != types.KindIncremental || inc1.Side != types.Bid {
		t.Fatalf("updates[1] = %+v, want incremental bid", inc1)
	}
	if inc1.Level.Price != types.PriceFromFloat64(100.25) {
		t.Errorf("incremental price = %d, want %d", inc1.Level.Price, types.PriceFromFloat64(100.25))
	}

	del := updates[2]
	if !del.Level.Qty.IsZero() {
		t.Errorf("updates[2] qty = %v, want zero (delete)", del.Level.Qty)
	}
}

func TestFromCSVOpenFailure(t *testing.T) {
	_, err := FromCSV("testdata/does-not-exist.csv")
	if err == nil {
		t.Fatal("FromCSV() on missing file returned nil error")
	}
}
