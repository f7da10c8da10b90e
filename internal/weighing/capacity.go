package weighing

import "github.com/shopspring/decimal"

// EnsureCapacity rejects an incoming item weight that would push the running
// quintal total past the report's capacity bound. Comparison happens at the
// canonical 4-decimal precision.
func EnsureCapacity(usedQuintals, incomingQuintals, capacityQuintals float64) error {
	total := decimal.NewFromFloat(usedQuintals).
		Add(decimal.NewFromFloat(incomingQuintals)).
		Round(4)

	if total.GreaterThan(decimal.NewFromFloat(capacityQuintals).Round(4)) {
		return ErrCapacityExceeded
	}
	return nil
}
