package proforma

import (
	"errors"
	"fmt"
	"math"
)

// ErrMissingDebtService is returned when DSCR inputs carry neither an annual
// debt service nor complete loan parameters.
var ErrMissingDebtService = errors.New("either an annual debt service or a loan amount, interest rate and amortization period is required")

// RiskLevel qualifies how safely NOI covers debt service.
type RiskLevel string

const (
	LowRisk      RiskLevel = "Low"
	ModerateRisk RiskLevel = "Moderate"
	HighRisk     RiskLevel = "High"
	VeryHighRisk RiskLevel = "Very High"
)

// DSCR interpretation messages, one per risk tier.
const (
	lowRiskInterpretation      = "Excellent coverage. The property generates significantly more income than needed to cover debt payments, providing a strong cushion against vacancies or unexpected expenses."
	moderateRiskInterpretation = "Good coverage. The property meets typical lender requirements with a reasonable safety margin."
	highRiskInterpretation     = "Marginal coverage. The property barely covers its debt payments, leaving little room for vacancies, repairs, or rising expenses."
	veryHighRiskInterpretation = "Insufficient coverage. The property does not generate enough income to cover its debt payments; the owner must contribute cash to service the loan."
)

// DSCRLoan are the loan parameters used to derive debt service.
type DSCRLoan struct {
	Amount            float64
	InterestRate      float64 // annual, as a fraction
	AmortizationYears float64
	TermYears         float64 // optional, only validated
}

// complete reports whether the loan can be amortized.
func (l *DSCRLoan) complete() bool {
	return l != nil && l.Amount > 0 && l.InterestRate >= 0 && l.AmortizationYears > 0
}

// DSCRInputs holds the inputs of a DSCR analysis. AnnualDebtService takes
// precedence over Loan when both are set.
type DSCRInputs struct {
	NOI               float64
	AnnualDebtService *float64
	Loan              *DSCRLoan
}

// DSCRAnalysis is the result of AnalyzeDSCR.
type DSCRAnalysis struct {
	DSCR              float64 // +Inf when there is no debt service
	AnnualDebtService float64
	MonthlyPayment    float64
	IsHealthy         bool
	RiskLevel         RiskLevel
	Interpretation    string
}

// AnalyzeDSCR computes the debt service coverage ratio and its risk tier.
func AnalyzeDSCR(in DSCRInputs) (DSCRAnalysis, error) {
	var a DSCRAnalysis
	switch {
	case in.AnnualDebtService != nil:
		a.AnnualDebtService = *in.AnnualDebtService
		a.MonthlyPayment = a.AnnualDebtService / 12
	case in.Loan.complete():
		a.MonthlyPayment = PeriodicPayment(in.Loan.Amount, in.Loan.InterestRate, in.Loan.AmortizationYears, 12)
		a.AnnualDebtService = a.MonthlyPayment * 12
	default:
		return a, ErrMissingDebtService
	}

	a.DSCR = dscr(in.NOI, a.AnnualDebtService)
	a.RiskLevel, a.IsHealthy, a.Interpretation = classifyDSCR(a.DSCR)
	return a, nil
}

func dscr(noi, debtService float64) float64 {
	if debtService == 0 {
		return math.Inf(1)
	}
	return noi / debtService
}

// classifyDSCR maps a DSCR to its risk tier.
func classifyDSCR(ratio float64) (RiskLevel, bool, string) {
	switch {
	case ratio >= 1.5:
		return LowRisk, true, lowRiskInterpretation
	case ratio >= 1.25:
		return ModerateRisk, true, moderateRiskInterpretation
	case ratio >= 1.0:
		return HighRisk, false, highRiskInterpretation
	default:
		return VeryHighRisk, false, veryHighRiskInterpretation
	}
}

// ValidateDSCRInputs returns the list of problems found in in. An empty list
// means AnalyzeDSCR can run.
func ValidateDSCRInputs(in DSCRInputs) []string {
	var msgs []string
	if in.NOI <= 0 {
		msgs = append(msgs, "Net operating income must be greater than zero.")
	}
	if in.AnnualDebtService != nil && *in.AnnualDebtService < 0 {
		msgs = append(msgs, "Annual debt service cannot be negative.")
	}
	if in.AnnualDebtService == nil && !in.Loan.complete() {
		msgs = append(msgs, "Provide either the annual debt service or the loan amount, interest rate and amortization period.")
	}
	if in.Loan != nil {
		if in.Loan.InterestRate < 0 {
			msgs = append(msgs, "Interest rate cannot be negative.")
		}
		if in.Loan.AmortizationYears > MaxAmortizationYears {
			msgs = append(msgs, fmt.Sprintf("Amortization period cannot exceed %d years.", MaxAmortizationYears))
		}
		if in.Loan.TermYears > 0 && in.Loan.AmortizationYears > 0 && in.Loan.TermYears > in.Loan.AmortizationYears {
			msgs = append(msgs, "Loan term cannot be longer than the amortization period.")
		}
	}
	return msgs
}

// MaxLoanForDSCR returns the largest loan whose debt service keeps the DSCR
// at targetDSCR for the given NOI.
func MaxLoanForDSCR(noi, targetDSCR, annualRate, amortizationYears float64, paymentsPerYear int) float64 {
	if noi <= 0 || targetDSCR <= 0 || paymentsPerYear <= 0 {
		return 0
	}
	payment := noi / targetDSCR / float64(paymentsPerYear)
	return LoanForPayment(payment, annualRate, amortizationYears, paymentsPerYear)
}
