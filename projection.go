package proforma

import "math"

// AnnualCashflow is the projection of one year of the hold period.
type AnnualCashflow struct {
	Year                 int // 1-based
	EffectiveGrossIncome float64
	OperatingExpenses    float64
	NOI                  float64
	DebtService          float64
	InterestPaid         float64
	PrincipalPaid        float64
	BeforeTaxCashflow    float64
	Depreciation         float64
	TaxableIncome        float64
	Taxes                float64 // negative when depreciation shields other income
	AfterTaxCashflow     float64
	LoanBalance          float64 // at the end of the year
	CashOnCashReturn     float64 // before tax cashflow over equity invested
	AfterTaxCashOnCash   float64
}

// financingPlan is the loan resolved once, before the projection runs.
type financingPlan struct {
	LoanAmount float64
	Terms      LoanTerms
	Payment    float64 // periodic payment
}

// annualPayments returns the number of loan payments due in year.
func (p financingPlan) annualPayments(year int) int {
	total := totalPayments(p.Terms.AmortizationYears, p.Terms.PaymentsPerYear)
	first := (year - 1) * p.Terms.PaymentsPerYear
	last := min(year*p.Terms.PaymentsPerYear, total)
	return max(last-first, 0)
}

// balanceAfter returns the loan balance at the end of year.
func (p financingPlan) balanceAfter(year int) float64 {
	return RemainingBalance(p.LoanAmount, p.Terms.InterestRate, p.Terms.AmortizationYears, p.Terms.PaymentsPerYear, year*p.Terms.PaymentsPerYear)
}

// ResolveLoanAmount returns the loan amount financing the acquisition.
//
// For DSCR financing the loan is sized once from the first year NOI; it is
// not re-solved when NOI changes in later years.
func ResolveLoanAmount(a PropertyAssumptions) float64 {
	return resolveFinancing(Normalize(a)).LoanAmount
}

// resolveFinancing sizes the loan of normalized assumptions n.
func resolveFinancing(n PropertyAssumptions) financingPlan {
	var plan financingPlan
	switch f := n.Financing.(type) {
	case LTVFinancing:
		plan.Terms = f.Terms
		plan.LoanAmount = f.LoanAmount
		if plan.LoanAmount == 0 {
			plan.LoanAmount = n.PurchasePrice * f.TargetLTV
		}
	case DSCRFinancing:
		plan.Terms = f.Terms
		year1 := CalculateNOI(n.noiInputs(1))
		loan := MaxLoanForDSCR(year1.NOI, f.TargetDSCR, f.Terms.InterestRate, f.Terms.AmortizationYears, f.Terms.PaymentsPerYear)
		plan.LoanAmount = math.Min(loan, n.PurchasePrice)
	default:
		return plan
	}
	plan.Payment = PeriodicPayment(plan.LoanAmount, plan.Terms.InterestRate, plan.Terms.AmortizationYears, plan.Terms.PaymentsPerYear)
	return plan
}

// equityInvested returns the cash put in at closing.
func equityInvested(n PropertyAssumptions, plan financingPlan) float64 {
	return n.PurchasePrice + n.AcquisitionCosts.Of(n.PurchasePrice) + plan.Terms.Costs.Of(plan.LoanAmount) - plan.LoanAmount
}

// firstYearFraction is the share of a full year of depreciation taken in the
// acquisition year, using the mid-month convention.
func firstYearFraction(acquisitionMonth int) float64 {
	return (12 - float64(acquisitionMonth) + 0.5) / 12
}

// Project returns the annual cashflows of the hold period.
func Project(a PropertyAssumptions) []AnnualCashflow {
	n := Normalize(a)
	plan := resolveFinancing(n)
	return project(n, plan, equityInvested(n, plan))
}

// project computes the annual cashflows of normalized assumptions n.
func project(n PropertyAssumptions, plan financingPlan, equity float64) []AnnualCashflow {
	flows := make([]AnnualCashflow, 0, n.HoldPeriodYears)

	basis := n.PurchasePrice * n.ImprovementsPercentage
	var annualDepreciation float64
	if n.DepreciationYears > 0 {
		annualDepreciation = basis / n.DepreciationYears
	}
	remaining := basis

	previousBalance := plan.LoanAmount
	for year := 1; year <= n.HoldPeriodYears; year++ {
		noi := CalculateNOI(n.noiInputs(year))
		cf := AnnualCashflow{
			Year:                 year,
			EffectiveGrossIncome: noi.EffectiveGrossIncome,
			OperatingExpenses:    noi.OperatingExpenses,
			NOI:                  noi.NOI,
		}

		if plan.LoanAmount > 0 {
			cf.DebtService = plan.Payment * float64(plan.annualPayments(year))
			cf.LoanBalance = plan.balanceAfter(year)
			cf.PrincipalPaid = previousBalance - cf.LoanBalance
			cf.InterestPaid = math.Max(cf.DebtService-cf.PrincipalPaid, 0)
			previousBalance = cf.LoanBalance
		}
		cf.BeforeTaxCashflow = cf.NOI - cf.DebtService

		d := annualDepreciation
		if year == 1 {
			d *= firstYearFraction(n.AcquisitionMonth)
		}
		cf.Depreciation = math.Min(d, remaining)
		remaining -= cf.Depreciation

		cf.TaxableIncome = cf.BeforeTaxCashflow - cf.Depreciation
		cf.Taxes = cf.TaxableIncome * n.OrdinaryIncomeTaxRate
		cf.AfterTaxCashflow = cf.BeforeTaxCashflow - cf.Taxes

		if equity > 0 {
			cf.CashOnCashReturn = cf.BeforeTaxCashflow / equity
			cf.AfterTaxCashOnCash = cf.AfterTaxCashflow / equity
		}
		flows = append(flows, cf)
	}
	return flows
}
