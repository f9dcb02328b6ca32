// Package types holds the fixed-point numeric model and update
// representation shared between the orderbook engine, the SPSC ring, and
// the strategy consumer.
package types

import "github.com/shopspring/decimal"

// hundred is the fixed-point scale: two decimal places of price precision.
const hundred = 100

// Price is a non-negative fixed-point value holding round(price*100) as an
// unsigned 64-bit integer. All comparisons are exact integer comparisons.
type Price uint64

// PriceFromFloat64 rounds p*100 half-up and truncates to the integer raw
// representation, matching the venue's two-decimal-place precision.
func PriceFromFloat64(p float64) Price {
	return Price(p*hundred + 0.5)
}

// PriceFromDecimal quantizes a decimal.Decimal price to the fixed-point raw
// representation. Used at the ingest boundary, where text-exact decimal
// parsing avoids float rounding surprises before the value is folded into
// the hot-path integer representation.
func PriceFromDecimal(d decimal.Decimal) Price {
	scaled := d.Mul(decimal.NewFromInt(hundred))
	return Price(scaled.Round(0).IntPart())
}

// ToFloat64 converts the raw fixed-point value back to a float for display.
func (p Price) ToFloat64() float64 {
	return float64(p) / hundred
}

// ToDecimal converts the raw fixed-point value back to an exact decimal for
// display or re-serialization.
func (p Price) ToDecimal() decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Div(decimal.NewFromInt(hundred))
}

// Qty is a non-negative quantity. No arithmetic beyond storage and the
// zero-quantity check is required of it.
type Qty float64

// zeroEpsilon is the threshold below which a quantity is treated as zero.
const zeroEpsilon = 1e-15

// IsZero reports whether q should be treated as "delete this level".
func (q Qty) IsZero() bool {
	return q <= zeroEpsilon
}

// QtyFromDecimal converts a decimal.Decimal quantity parsed from the ingest
// boundary into the storage representation.
func QtyFromDecimal(d decimal.Decimal) Qty {
	f, _ := d.Float64()
	return Qty(f)
}

// ToDecimal converts q back to an exact decimal for display.
func (q Qty) ToDecimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(q))
}
