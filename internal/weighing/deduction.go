package weighing

import "github.com/shopspring/decimal"

// DefaultMoistureRate is the facility's flat moisture/impurity cut applied to
// every line item before any commercial discount.
const DefaultMoistureRate = 0.05

// ApplyDeductions nets a raw quintal value down in a fixed order: the
// moisture rate first, then the report-level extra percentage of the
// already-reduced value, then a fixed discount in quintals. Each deduction
// compounds on the previous result, never on the original.
func ApplyDeductions(rawQuintals, moistureRate, extraPercentage, discountWeight float64) (float64, error) {
	eff := decimal.NewFromFloat(rawQuintals)

	eff = eff.Sub(eff.Mul(decimal.NewFromFloat(moistureRate)))

	if extraPercentage > 0 {
		eff = eff.Sub(eff.Mul(decimal.NewFromFloat(extraPercentage).Div(decimal.NewFromInt(100))))
	}

	if discountWeight > 0 {
		eff = eff.Sub(decimal.NewFromFloat(discountWeight))
	}

	eff = eff.Round(4)
	if eff.Sign() <= 0 {
		return 0, ErrInvalidEffectiveWeight
	}

	f, _ := eff.Float64()
	return f, nil
}
