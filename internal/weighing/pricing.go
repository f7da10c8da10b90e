package weighing

import "github.com/shopspring/decimal"

// Price computes one line's monetary value, rounded half away from zero to
// cent precision. Each line rounds on its own so stored values match what a
// printed ticket shows.
func Price(pricePerQuintal, effectiveQuintals float64) float64 {
	f, _ := decimal.NewFromFloat(pricePerQuintal).
		Mul(decimal.NewFromFloat(effectiveQuintals)).
		Round(2).
		Float64()
	return f
}

// SumPrices totals already-rounded line prices, rounding the sum once more to
// cent precision.
func SumPrices(prices ...float64) float64 {
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(decimal.NewFromFloat(p))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// SumQuintals totals quintal values at the canonical 4-decimal precision.
func SumQuintals(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	f, _ := sum.Round(4).Float64()
	return f
}

// Round2 rounds a scale reading to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
