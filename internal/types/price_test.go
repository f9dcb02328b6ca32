package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceFromFloat64RoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want Price
	}{
		{100.00, 10000},
		{99.50, 9950},
		{100.005, 10001},
		{0, 0},
	}
	for _, c := range cases {
		if got := PriceFromFloat64(c.in); got != c.want {
			t.Errorf("PriceFromFloat64(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPriceToFloat64RoundTrip(t *testing.T) {
	p := PriceFromFloat64(100.50)
	if got := p.ToFloat64(); got != 100.50 {
		t.Errorf("ToFloat64() = %v, want 100.50", got)
	}
}

func TestPriceFromDecimal(t *testing.T) {
	d := decimal.NewFromFloat(100.25)
	if got := PriceFromDecimal(d); got != 10025 {
		t.Errorf("PriceFromDecimal(%v) = %d, want 10025", d, got)
	}
}

func TestQtyIsZero(t *testing.T) {
	if !Qty(0).IsZero() {
		t.Error("Qty(0).IsZero() = false, want true")
	}
	if !Qty(1e-16).IsZero() {
		t.Error("Qty(1e-16).IsZero() = false, want true")
	}
	if Qty(1e-10).IsZero() {
		t.Error("Qty(1e-10).IsZero() = true, want false")
	}
}
