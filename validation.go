package proforma

import (
	"fmt"
	"math"
)

// ValidateAssumptions checks a before it is calculated and returns every
// problem found as a human readable message. An empty result means a is
// valid.
//
// Calculate accepts invalid assumptions anyway, it normalizes them first.
func ValidateAssumptions(a PropertyAssumptions) []string {
	var errs []string
	failf := func(format string, args ...any) { errs = append(errs, fmt.Sprintf(format, args...)) }

	if !(a.PurchasePrice > 0) {
		failf("purchase price must be greater than 0")
	}
	if a.AcquisitionMonth < 0 || a.AcquisitionMonth > 12 {
		failf("acquisition month must be between 1 and 12, got %d", a.AcquisitionMonth)
	}
	checkCost(failf, "acquisition costs", a.AcquisitionCosts)

	if a.HoldPeriodYears < 1 || a.HoldPeriodYears > MaxHoldPeriodYears {
		failf("hold period must be between 1 and %d years, got %d", MaxHoldPeriodYears, a.HoldPeriodYears)
	}
	if len(a.PotentialRentalIncome) < a.HoldPeriodYears {
		failf("potential rental income has %d years, hold period needs %d", len(a.PotentialRentalIncome), a.HoldPeriodYears)
	}

	checkSeries(failf, "potential rental income", a.PotentialRentalIncome, false)
	checkSeries(failf, "other income", a.OtherIncome, false)
	checkSeries(failf, "vacancy rate", a.VacancyRates, true)
	if a.ExpenseMode == PercentOfIncome {
		if a.ExpenseRate < 0 || a.ExpenseRate > 1 || math.IsNaN(a.ExpenseRate) {
			failf("operating expense rate must be between 0%% and 100%%")
		}
	} else {
		checkSeries(failf, "operating expenses", a.OperatingExpenses, false)
		checkSeries(failf, "property taxes", a.PropertyTaxes, false)
		checkSeries(failf, "insurance", a.Insurance, false)
		checkSeries(failf, "maintenance", a.Maintenance, false)
		checkSeries(failf, "property management", a.PropertyManagement, false)
		checkSeries(failf, "utilities", a.Utilities, false)
		checkSeries(failf, "other expenses", a.OtherExpenses, false)
	}

	switch f := a.Financing.(type) {
	case LTVFinancing:
		if f.LoanAmount == 0 && !(f.TargetLTV > 0 && f.TargetLTV <= 1) {
			failf("target LTV must be between 0%% and 100%%")
		}
		if f.LoanAmount < 0 {
			failf("loan amount cannot be negative")
		}
		if f.LoanAmount > a.PurchasePrice && a.PurchasePrice > 0 {
			failf("loan amount cannot exceed the purchase price")
		}
		checkTerms(failf, f.Terms)
	case DSCRFinancing:
		if !(f.TargetDSCR > 0) {
			failf("target DSCR must be greater than 0")
		}
		checkTerms(failf, f.Terms)
	}

	if a.DepreciationYears < 0 {
		failf("depreciation years cannot be negative")
	}
	checkRate(failf, "land percentage", a.LandPercentage)
	checkRate(failf, "improvements percentage", a.ImprovementsPercentage)
	if a.LandPercentage+a.ImprovementsPercentage > 1 {
		failf("land and improvements percentages cannot exceed 100%%")
	}
	checkRate(failf, "ordinary income tax rate", a.OrdinaryIncomeTaxRate)
	checkRate(failf, "capital gains tax rate", a.CapitalGainsTaxRate)
	if a.DepreciationRecaptureRate < 0 || a.DepreciationRecaptureRate > MaxDepreciationRecaptureRate {
		failf("depreciation recapture rate must be between 0%% and %.0f%%", MaxDepreciationRecaptureRate*100)
	}

	switch d := a.Disposition.(type) {
	case CapRateDisposition:
		if !(d.CapRate > 0 && d.CapRate <= 1) {
			failf("disposition cap rate must be between 0%% and 100%%")
		}
	case PriceDisposition:
		if d.Price < 0 {
			failf("disposition price cannot be negative")
		}
	}
	checkCost(failf, "cost of sale", a.CostOfSale)
	return errs
}

func checkTerms(failf func(string, ...any), t LoanTerms) {
	checkRate(failf, "interest rate", t.InterestRate)
	if t.AmortizationYears < 0 {
		failf("amortization years cannot be negative")
	}
	if t.AmortizationYears > MaxAmortizationYears {
		failf("amortization years cannot exceed %d", MaxAmortizationYears)
	}
	if t.TermYears < 0 {
		failf("loan term cannot be negative")
	}
	if t.AmortizationYears > 0 && t.TermYears > t.AmortizationYears {
		failf("loan term (%g years) cannot exceed the amortization period (%g years)", t.TermYears, t.AmortizationYears)
	}
	if t.PaymentsPerYear < 0 {
		failf("payments per year cannot be negative")
	}
	checkCost(failf, "loan costs", t.Costs)
}

func checkCost(failf func(string, ...any), name string, c Cost) {
	if c.Type == Dollar {
		if c.Amount < 0 {
			failf("%s cannot be negative", name)
		}
		return
	}
	checkRate(failf, name, c.Percentage)
}

func checkRate(failf func(string, ...any), name string, v float64) {
	if v < 0 || v > 1 || math.IsNaN(v) {
		failf("%s must be between 0%% and 100%%", name)
	}
}

func checkSeries(failf func(string, ...any), name string, series []float64, isRate bool) {
	for i, v := range series {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			failf("%s in year %d is not a number", name, i+1)
		case v < 0:
			failf("%s in year %d cannot be negative", name, i+1)
		case isRate && v > 1:
			failf("%s in year %d cannot exceed 100%%", name, i+1)
		}
	}
}
