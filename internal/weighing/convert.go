package weighing

import (
	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitQuintals  Unit = "quintals"
	UnitPounds    Unit = "pounds"
	UnitKilograms Unit = "kilograms"
	UnitTons      Unit = "tons"
)

// ParseUnit validates a unit string coming from the boundary.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitQuintals, UnitPounds, UnitKilograms, UnitTons:
		return Unit(s), nil
	}
	return "", ErrInvalidUnit
}

// ConversionTable holds the facility's unit constants. The default is the
// hundredweight quintal (1 qq = 100 lb); a metric facility can supply its own
// table instead of patching literals.
type ConversionTable struct {
	PoundsPerQuintal    float64
	KilogramsPerQuintal float64
	QuintalsPerTon      float64 // metric ton
}

var DefaultTable = ConversionTable{
	PoundsPerQuintal:    100,
	KilogramsPerQuintal: 45.359237,
	QuintalsPerTon:      1000 / 45.359237,
}

// ToQuintals converts a weight to quintals, rounded to 4 decimal places.
// Zero is a valid input; negative weights are not.
func (t ConversionTable) ToQuintals(weight float64, unit Unit) (float64, error) {
	if weight < 0 {
		return 0, ErrInvalidWeight
	}

	w := decimal.NewFromFloat(weight)
	var q decimal.Decimal
	switch unit {
	case UnitQuintals:
		q = w
	case UnitPounds:
		q = w.Div(decimal.NewFromFloat(t.PoundsPerQuintal))
	case UnitKilograms:
		q = w.Div(decimal.NewFromFloat(t.KilogramsPerQuintal))
	case UnitTons:
		q = w.Mul(decimal.NewFromFloat(t.QuintalsPerTon))
	default:
		return 0, ErrInvalidUnit
	}

	f, _ := q.Round(4).Float64()
	return f, nil
}
