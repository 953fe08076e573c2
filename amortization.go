package proforma

import (
	"fmt"
	"math"

	"github.com/etnz/proforma/date"
)

// BalanceTolerance is the remaining balance under which a loan is considered repaid.
const BalanceTolerance = 0.01

// MaxAmortizationYears is the longest amortization period the engine
// schedules. Longer or non-finite periods amortize nothing.
const MaxAmortizationYears = 100

// scheduleSafetyMargin bounds the schedule loop to totalPayments plus this
// many extra iterations.
const scheduleSafetyMargin = 120

// totalPayments returns the number of payments of a loan amortized over
// years, 0 when years is not in (0, MaxAmortizationYears].
func totalPayments(years float64, perYear int) int {
	if !(years > 0 && years <= MaxAmortizationYears) || perYear <= 0 {
		return 0
	}
	return int(math.Round(years * float64(perYear)))
}

// PeriodicPayment returns the constant payment that fully amortizes principal
// over amortizationYears with paymentsPerYear payments a year.
//
// A zero interest rate degrades to straight-line division of the principal.
func PeriodicPayment(principal, annualRate, amortizationYears float64, paymentsPerYear int) float64 {
	n := totalPayments(amortizationYears, paymentsPerYear)
	if principal <= 0 || n == 0 {
		return 0
	}
	if annualRate == 0 {
		return principal / float64(n)
	}
	r := annualRate / float64(paymentsPerYear)
	g := math.Pow(1+r, float64(n))
	return principal * r * g / (g - 1)
}

// RemainingBalance returns the balance of the loan after k payments.
//
// It returns 0 once k reaches the total number of payments.
func RemainingBalance(principal, annualRate, amortizationYears float64, paymentsPerYear, k int) float64 {
	n := totalPayments(amortizationYears, paymentsPerYear)
	if principal <= 0 || n == 0 || k >= n {
		return 0
	}
	if k <= 0 {
		return principal
	}
	if annualRate == 0 {
		return principal * float64(n-k) / float64(n)
	}
	r := annualRate / float64(paymentsPerYear)
	payment := PeriodicPayment(principal, annualRate, amortizationYears, paymentsPerYear)
	g := math.Pow(1+r, float64(k))
	balance := principal*g - payment*(g-1)/r
	if balance < 0 {
		return 0
	}
	return balance
}

// LoanForPayment is the inverse of PeriodicPayment: it returns the principal
// whose periodic payment equals payment.
func LoanForPayment(payment, annualRate, amortizationYears float64, paymentsPerYear int) float64 {
	n := totalPayments(amortizationYears, paymentsPerYear)
	if payment <= 0 || n == 0 {
		return 0
	}
	if annualRate == 0 {
		return payment * float64(n)
	}
	r := annualRate / float64(paymentsPerYear)
	return payment * (1 - math.Pow(1+r, -float64(n))) / r
}

// Loan describes a fully amortizing loan.
type Loan struct {
	Principal         float64        `json:"principal"`
	AnnualRate        float64        `json:"annualRate"` // as a fraction, 0.065 for 6.5%
	AmortizationYears float64        `json:"amortizationYears"`
	Frequency         date.Frequency `json:"frequency"`
	ExtraPayment      float64        `json:"extraPayment,omitempty"` // extra principal paid with every payment
}

// ValidateLoan reports the problems of loan as human readable messages.
func ValidateLoan(loan Loan) []string {
	var msgs []string
	if !(loan.Principal > 0) || math.IsInf(loan.Principal, 0) {
		msgs = append(msgs, "Loan amount must be greater than zero.")
	}
	if !(loan.AnnualRate >= 0) || math.IsInf(loan.AnnualRate, 0) {
		msgs = append(msgs, "Interest rate cannot be negative.")
	}
	if !(loan.AmortizationYears > 0 && loan.AmortizationYears <= MaxAmortizationYears) {
		msgs = append(msgs, fmt.Sprintf("Amortization period must be between 0 and %d years.", MaxAmortizationYears))
	}
	if !(loan.ExtraPayment >= 0) || math.IsInf(loan.ExtraPayment, 0) {
		msgs = append(msgs, "Extra payment cannot be negative.")
	}
	return msgs
}

// Payment is one line of an amortization schedule.
type Payment struct {
	Number              int       `json:"number"`
	Date                date.Date `json:"date"`
	Payment             float64   `json:"payment"` // interest + principal, extra included
	Interest            float64   `json:"interest"`
	Principal           float64   `json:"principal"` // extra included
	Extra               float64   `json:"extra,omitempty"`
	Balance             float64   `json:"balance"`
	CumulativeInterest  float64   `json:"cumulativeInterest"`
	CumulativePrincipal float64   `json:"cumulativePrincipal"`
}

// AmortizationSchedule is the payment-by-payment repayment plan of a Loan.
type AmortizationSchedule struct {
	Loan            Loan      `json:"loan"`
	PeriodicPayment float64   `json:"periodicPayment"` // scheduled payment, without extra
	Payments        []Payment `json:"payments"`
	TotalPaid       float64   `json:"totalPaid"`
	TotalInterest   float64   `json:"totalInterest"`
	PayoffDate      date.Date `json:"payoffDate"`
	InterestSaved   float64   `json:"interestSaved,omitempty"` // interest avoided thanks to the extra payment
}

// Schedule computes the amortization schedule of loan. The first payment is
// due one period after start.
//
// The schedule stops when the balance falls to BalanceTolerance or after
// the scheduled number of payments plus a safety margin, whichever comes
// first.
func Schedule(loan Loan, start date.Date) AmortizationSchedule {
	perYear := loan.Frequency.PerYear()
	n := totalPayments(loan.AmortizationYears, perYear)
	s := AmortizationSchedule{
		Loan:            loan,
		PeriodicPayment: PeriodicPayment(loan.Principal, loan.AnnualRate, loan.AmortizationYears, perYear),
	}
	if loan.Principal <= 0 || n == 0 {
		return s
	}
	extra := math.Max(loan.ExtraPayment, 0)
	r := loan.AnnualRate / float64(perYear)

	balance := loan.Principal
	s.Payments = make([]Payment, 0, n)
	for i := 1; balance > BalanceTolerance && i <= n+scheduleSafetyMargin; i++ {
		interest := balance * r
		principal := s.PeriodicPayment - interest
		paidExtra := extra
		if principal+paidExtra > balance {
			// last payment only repays what is left.
			principal = balance
			paidExtra = 0
		} else {
			principal += paidExtra
		}
		balance -= principal
		if balance < 0 {
			balance = 0
		}

		s.TotalPaid += interest + principal
		s.TotalInterest += interest
		p := Payment{
			Number:              i,
			Date:                loan.Frequency.Advance(start, i),
			Payment:             interest + principal,
			Interest:            interest,
			Principal:           principal,
			Extra:               paidExtra,
			Balance:             balance,
			CumulativeInterest:  s.TotalInterest,
			CumulativePrincipal: loan.Principal - balance,
		}
		s.Payments = append(s.Payments, p)
		s.PayoffDate = p.Date
	}

	if extra > 0 {
		baseline := s.PeriodicPayment*float64(n) - loan.Principal
		s.InterestSaved = math.Max(baseline-s.TotalInterest, 0)
	}
	return s
}
