package weighing

import (
	"errors"
	"testing"
)

func TestToQuintals(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		unit    Unit
		want    float64
		wantErr error
	}{
		{name: "quintals are identity", weight: 3.25, unit: UnitQuintals, want: 3.25},
		{name: "pounds divide by 100", weight: 50, unit: UnitPounds, want: 0.5},
		{name: "full hundredweight", weight: 100, unit: UnitPounds, want: 1},
		{name: "kilograms divide by kg-per-quintal", weight: 45.359237, unit: UnitKilograms, want: 1},
		{name: "tons multiply by quintals-per-ton", weight: 1, unit: UnitTons, want: 22.0462},
		{name: "zero is zero in any unit", weight: 0, unit: UnitKilograms, want: 0},
		{name: "negative weight rejected", weight: -1, unit: UnitPounds, wantErr: ErrInvalidWeight},
		{name: "unknown unit rejected", weight: 10, unit: Unit("stones"), wantErr: ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultTable.ToQuintals(tt.weight, tt.unit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ToQuintals() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ToQuintals() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToQuintalsZeroForAllUnits(t *testing.T) {
	for _, unit := range []Unit{UnitQuintals, UnitPounds, UnitKilograms, UnitTons} {
		got, err := DefaultTable.ToQuintals(0, unit)
		if err != nil {
			t.Fatalf("ToQuintals(0, %s) error = %v", unit, err)
		}
		if got != 0 {
			t.Errorf("ToQuintals(0, %s) = %v, want 0", unit, got)
		}
	}
}

func TestToQuintalsIsLinear(t *testing.T) {
	for _, unit := range []Unit{UnitQuintals, UnitPounds, UnitTons} {
		single, err := DefaultTable.ToQuintals(30, unit)
		if err != nil {
			t.Fatalf("ToQuintals(30, %s) error = %v", unit, err)
		}
		double, err := DefaultTable.ToQuintals(60, unit)
		if err != nil {
			t.Fatalf("ToQuintals(60, %s) error = %v", unit, err)
		}
		if double != 2*single {
			t.Errorf("unit %s: ToQuintals(60) = %v, want 2*ToQuintals(30) = %v", unit, double, 2*single)
		}
	}
}

func TestParseUnit(t *testing.T) {
	if _, err := ParseUnit("pounds"); err != nil {
		t.Errorf("ParseUnit(pounds) error = %v", err)
	}
	if _, err := ParseUnit("POUNDS"); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("ParseUnit is case sensitive, want ErrInvalidUnit, got %v", err)
	}
	if _, err := ParseUnit(""); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("ParseUnit(empty) = %v, want ErrInvalidUnit", err)
	}
}

func TestMetricTable(t *testing.T) {
	metric := ConversionTable{
		PoundsPerQuintal:    220.462262,
		KilogramsPerQuintal: 100,
		QuintalsPerTon:      10,
	}

	got, err := metric.ToQuintals(250, UnitKilograms)
	if err != nil {
		t.Fatalf("ToQuintals error = %v", err)
	}
	if got != 2.5 {
		t.Errorf("metric ToQuintals(250 kg) = %v, want 2.5", got)
	}

	got, err = metric.ToQuintals(3, UnitTons)
	if err != nil {
		t.Fatalf("ToQuintals error = %v", err)
	}
	if got != 30 {
		t.Errorf("metric ToQuintals(3 t) = %v, want 30", got)
	}
}
