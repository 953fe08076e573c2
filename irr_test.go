package proforma

import (
	"math"
	"testing"
)

func TestIRR(t *testing.T) {
	tests := []struct {
		name      string
		cashflows []float64
		want      float64
		wantOK    bool
	}{
		{"bond like", []float64{-100000, 10000, 10000, 10000, 10000, 110000}, 0.10, true},
		{"one year", []float64{-100, 112}, 0.12, true},
		{"loss", []float64{-100, 50}, -0.5, true},
		{"no sign change", []float64{100, 100, 100}, 0, false},
		{"empty", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IRR(tt.cashflows)
			if ok != tt.wantOK {
				t.Fatalf("IRR() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !near(got, tt.want, 1e-6) {
				t.Errorf("IRR() = %v, want %v", got, tt.want)
			}
			if npv := NPV(got, tt.cashflows); math.Abs(npv) > 1e-4 {
				t.Errorf("NPV(IRR()) = %v, want ~0", npv)
			}
		})
	}
}

func TestNPV(t *testing.T) {
	if got := NPV(0, []float64{-100, 50, 50}); got != 0 {
		t.Errorf("NPV(0) = %v, want 0", got)
	}
	if got := NPV(0.1, []float64{0, 110}); !near(got, 100, 1e-9) {
		t.Errorf("NPV(0.1) = %v, want 100", got)
	}
}
