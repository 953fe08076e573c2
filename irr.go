package proforma

import "math"

// IRR solver bounds and tolerances.
const (
	irrLowerBound    = -0.99
	irrUpperBound    = 10.0
	irrMaxIterations = 200
	irrNPVTolerance  = 1e-6
	irrRateTolerance = 1e-12
)

// NPV returns the net present value of cashflows at rate. cashflows[0]
// happens today, cashflows[t] at the end of period t.
func NPV(rate float64, cashflows []float64) float64 {
	var npv float64
	for t, cf := range cashflows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR returns the internal rate of return of cashflows, that is the rate
// where their NPV is zero.
//
// The rate is searched by bisection between -99% and +1000%. ok is false
// when NPV does not change sign in that range, or when cashflows do not hold
// both an outflow and an inflow.
func IRR(cashflows []float64) (rate float64, ok bool) {
	var in, out bool
	for _, cf := range cashflows {
		in = in || cf > 0
		out = out || cf < 0
	}
	if !in || !out {
		return 0, false
	}
	return bisect(func(r float64) float64 { return NPV(r, cashflows) }, irrLowerBound, irrUpperBound)
}

// bisect finds a root of f in [lo, hi].
func bisect(f func(float64) float64, lo, hi float64) (float64, bool) {
	flo, fhi := f(lo), f(hi)
	switch {
	case math.IsNaN(flo) || math.IsNaN(fhi):
		return 0, false
	case math.Abs(flo) < irrNPVTolerance:
		return lo, true
	case math.Abs(fhi) < irrNPVTolerance:
		return hi, true
	case (flo > 0) == (fhi > 0):
		return 0, false
	}

	for range irrMaxIterations {
		mid := (lo + hi) / 2
		fm := f(mid)
		if math.Abs(fm) < irrNPVTolerance || (hi-lo)/2 < irrRateTolerance {
			return mid, true
		}
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}
