package proforma

import (
	"fmt"
	"math"
	"strings"
)

// TVMUnknown selects the time-value-of-money variable to solve for.
type TVMUnknown int

const (
	SolveFutureValue TVMUnknown = iota
	SolvePresentValue
	SolvePayment
	SolvePeriods
	SolveRate
)

func (u TVMUnknown) String() string {
	switch u {
	case SolveFutureValue:
		return "fv"
	case SolvePresentValue:
		return "pv"
	case SolvePayment:
		return "pmt"
	case SolvePeriods:
		return "n"
	case SolveRate:
		return "rate"
	default:
		return fmt.Sprintf("TVMUnknown(%d)", int(u))
	}
}

// ParseTVMUnknown parses the name of a TVM variable.
func ParseTVMUnknown(s string) (TVMUnknown, error) {
	switch strings.ToLower(s) {
	case "fv", "future":
		return SolveFutureValue, nil
	case "pv", "present":
		return SolvePresentValue, nil
	case "pmt", "payment":
		return SolvePayment, nil
	case "n", "nper", "periods":
		return SolvePeriods, nil
	case "rate", "i":
		return SolveRate, nil
	default:
		return SolveFutureValue, fmt.Errorf("unknown TVM variable %q (want fv, pv, pmt, n or rate)", s)
	}
}

// TVMInputs are the variables of an ordinary annuity: a present value, a
// payment at the end of each period, and a future value.
//
// All amounts are non-negative; payments are assumed to repay the present
// value or to accumulate toward the future value.
type TVMInputs struct {
	Solve        TVMUnknown
	PresentValue float64
	FutureValue  float64
	Payment      float64
	Rate         float64 // per period, as a fraction
	Periods      float64
}

// FutureValue returns the value after n periods of pv invested at rate plus
// a deposit of pmt at the end of every period.
func FutureValue(pv, rate, n, pmt float64) float64 {
	if rate == 0 {
		return pv + pmt*n
	}
	g := math.Pow(1+rate, n)
	return pv*g + pmt*(g-1)/rate
}

// PresentValue returns today's value of fv received after n periods plus pmt
// received at the end of every period, discounted at rate.
func PresentValue(fv, rate, n, pmt float64) float64 {
	if rate == 0 {
		return fv + pmt*n
	}
	g := math.Pow(1+rate, n)
	return fv/g + pmt*(1-1/g)/rate
}

// AnnuityPayment returns the end-of-period payment repaying pv over n periods at rate.
func AnnuityPayment(pv, rate, n float64) float64 {
	if n <= 0 {
		return 0
	}
	if rate == 0 {
		return pv / n
	}
	return pv * rate / (1 - math.Pow(1+rate, -n))
}

// AnnuityPeriods returns the number of payments of pmt needed to repay pv at
// rate. It is +Inf when pmt does not cover the interest.
func AnnuityPeriods(pv, rate, pmt float64) float64 {
	if pmt <= 0 {
		return math.Inf(1)
	}
	if rate == 0 {
		return pv / pmt
	}
	if pmt <= pv*rate {
		return math.Inf(1)
	}
	return -math.Log(1-pv*rate/pmt) / math.Log(1+rate)
}

// AnnuityRate returns the periodic rate at which n payments of pmt repay pv.
func AnnuityRate(pv, pmt float64, n int) (float64, bool) {
	if pv <= 0 || pmt <= 0 || n <= 0 {
		return 0, false
	}
	cashflows := make([]float64, n+1)
	cashflows[0] = -pv
	for i := 1; i <= n; i++ {
		cashflows[i] = pmt
	}
	return IRR(cashflows)
}

// SolveTVM solves in for its unknown variable and returns its value.
func SolveTVM(in TVMInputs) (float64, error) {
	if msgs := ValidateTVMInputs(in); len(msgs) > 0 {
		return 0, fmt.Errorf("invalid TVM inputs: %s", strings.Join(msgs, " "))
	}
	switch in.Solve {
	case SolveFutureValue:
		return FutureValue(in.PresentValue, in.Rate, in.Periods, in.Payment), nil
	case SolvePresentValue:
		return PresentValue(in.FutureValue, in.Rate, in.Periods, in.Payment), nil
	case SolvePayment:
		return AnnuityPayment(in.PresentValue, in.Rate, in.Periods), nil
	case SolvePeriods:
		return AnnuityPeriods(in.PresentValue, in.Rate, in.Payment), nil
	case SolveRate:
		rate, ok := AnnuityRate(in.PresentValue, in.Payment, int(math.Round(in.Periods)))
		if !ok {
			return 0, fmt.Errorf("no rate between %.0f%% and %.0f%% repays %.2f with %v payments of %.2f", irrLowerBound*100, irrUpperBound*100, in.PresentValue, in.Periods, in.Payment)
		}
		return rate, nil
	default:
		return 0, fmt.Errorf("unsupported TVM unknown %v", in.Solve)
	}
}

// ValidateTVMInputs returns the list of problems found in in.
func ValidateTVMInputs(in TVMInputs) []string {
	var msgs []string
	if in.PresentValue < 0 || in.FutureValue < 0 || in.Payment < 0 {
		msgs = append(msgs, "Amounts cannot be negative.")
	}
	if in.Rate < 0 {
		msgs = append(msgs, "Rate cannot be negative.")
	}
	if in.Solve != SolvePeriods && in.Periods <= 0 {
		msgs = append(msgs, "Number of periods must be greater than zero.")
	}
	switch in.Solve {
	case SolvePayment:
		if in.PresentValue <= 0 {
			msgs = append(msgs, "Present value is required to compute a payment.")
		}
	case SolvePeriods, SolveRate:
		if in.PresentValue <= 0 || in.Payment <= 0 {
			msgs = append(msgs, "Present value and payment are required.")
		}
	}
	return msgs
}
