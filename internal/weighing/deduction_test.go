package weighing

import (
	"errors"
	"testing"
)

func TestApplyDeductions(t *testing.T) {
	tests := []struct {
		name            string
		raw             float64
		moistureRate    float64
		extraPercentage float64
		discountWeight  float64
		want            float64
		wantErr         error
	}{
		{
			name:         "moisture only",
			raw:          0.5,
			moistureRate: DefaultMoistureRate,
			want:         0.475,
		},
		{
			name:            "extra percentage compounds on the reduced value",
			raw:             1,
			moistureRate:    DefaultMoistureRate,
			extraPercentage: 10,
			want:            0.855, // 1 -> 0.95 -> 0.855, not 0.85
		},
		{
			name:            "fixed discount subtracted last",
			raw:             1,
			moistureRate:    DefaultMoistureRate,
			extraPercentage: 10,
			discountWeight:  0.5,
			want:            0.355,
		},
		{
			name:         "no deductions at all",
			raw:          2.5,
			moistureRate: 0,
			want:         2.5,
		},
		{
			name:           "discount consuming everything fails",
			raw:            0.1,
			moistureRate:   DefaultMoistureRate,
			discountWeight: 0.095,
			wantErr:        ErrInvalidEffectiveWeight,
		},
		{
			name:           "discount beyond everything fails",
			raw:            0.05,
			moistureRate:   DefaultMoistureRate,
			discountWeight: 1,
			wantErr:        ErrInvalidEffectiveWeight,
		},
		{
			name:         "zero raw weight fails",
			raw:          0,
			moistureRate: DefaultMoistureRate,
			wantErr:      ErrInvalidEffectiveWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyDeductions(tt.raw, tt.moistureRate, tt.extraPercentage, tt.discountWeight)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ApplyDeductions() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ApplyDeductions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyDeductionsMonotonicity(t *testing.T) {
	base, err := ApplyDeductions(10, 0.05, 5, 0.1)
	if err != nil {
		t.Fatalf("ApplyDeductions() error = %v", err)
	}

	moreMoisture, err := ApplyDeductions(10, 0.06, 5, 0.1)
	if err != nil {
		t.Fatalf("ApplyDeductions() error = %v", err)
	}
	if moreMoisture >= base {
		t.Errorf("higher moisture rate must reduce the result: %v >= %v", moreMoisture, base)
	}

	moreExtra, err := ApplyDeductions(10, 0.05, 6, 0.1)
	if err != nil {
		t.Fatalf("ApplyDeductions() error = %v", err)
	}
	if moreExtra >= base {
		t.Errorf("higher extra percentage must reduce the result: %v >= %v", moreExtra, base)
	}

	moreDiscount, err := ApplyDeductions(10, 0.05, 5, 0.2)
	if err != nil {
		t.Fatalf("ApplyDeductions() error = %v", err)
	}
	if moreDiscount >= base {
		t.Errorf("higher discount must reduce the result: %v >= %v", moreDiscount, base)
	}
}
