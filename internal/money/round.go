package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every amount is rounded to.
const Places = 2

// Sanitize coerces non-finite values (NaN, ±Inf) to zero.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds v to two decimal places, half away from zero.
// The float is converted through its shortest decimal representation so values
// like 1.005 round to 1.01 instead of drifting down. Non-finite input yields 0.
func Round2(v float64) float64 {
	return toFloat(decimalOf(v).Round(Places))
}

// Sum adds the provided values using decimal arithmetic and rounds the result.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimalOf(v))
	}
	return toFloat(total.Round(Places))
}

// Sub returns Round2(a - b) computed without binary drift.
func Sub(a, b float64) float64 {
	return toFloat(decimalOf(a).Sub(decimalOf(b)).Round(Places))
}

// NonNegative clamps negative amounts to zero.
func NonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func decimalOf(v float64) decimal.Decimal {
	return decimal.NewFromFloat(Sanitize(v))
}

func toFloat(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	if f == 0 {
		// avoid handing out -0 which renders as "-0.00"
		return 0
	}
	return f
}
