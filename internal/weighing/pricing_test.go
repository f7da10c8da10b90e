package weighing

import "testing"

func TestPrice(t *testing.T) {
	tests := []struct {
		name            string
		pricePerQuintal float64
		quintals        float64
		want            float64
	}{
		{name: "scenario ticket line", pricePerQuintal: 150, quintals: 0.475, want: 71.25},
		{name: "half cent rounds away from zero", pricePerQuintal: 0.25, quintals: 0.5, want: 0.13},
		{name: "whole amounts untouched", pricePerQuintal: 200, quintals: 2, want: 400},
		{name: "zero quintals is free", pricePerQuintal: 180.5, quintals: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.pricePerQuintal, tt.quintals); got != tt.want {
				t.Errorf("Price() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSumPrices(t *testing.T) {
	if got := SumPrices(10.05, 20.1, 0.85); got != 31 {
		t.Errorf("SumPrices() = %v, want 31", got)
	}
	if got := SumPrices(); got != 0 {
		t.Errorf("SumPrices() with no lines = %v, want 0", got)
	}
}

func TestSumQuintals(t *testing.T) {
	// Plain float addition would give 0.30000000000000004 here.
	if got := SumQuintals(0.1, 0.2); got != 0.3 {
		t.Errorf("SumQuintals() = %v, want 0.3", got)
	}
	if got := SumQuintals(0.475, 0.475); got != 0.95 {
		t.Errorf("SumQuintals() = %v, want 0.95", got)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(159.999); got != 160 {
		t.Errorf("Round2(159.999) = %v, want 160", got)
	}
	if got := Round2(0.125); got != 0.13 {
		t.Errorf("Round2(0.125) = %v, want 0.13", got)
	}
}
