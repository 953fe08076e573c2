package proforma

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	a := PropertyAssumptions{
		PurchasePrice:             -5,
		AcquisitionCosts:          Cost{Type: Percentage, Percentage: 2},
		AcquisitionMonth:          13,
		PotentialRentalIncome:     []float64{100000, -1, math.NaN()},
		VacancyRates:              []float64{1.5, -0.1},
		ExpenseRate:               math.Inf(1),
		LandPercentage:            0.3,
		ImprovementsPercentage:    0.9,
		OrdinaryIncomeTaxRate:     0.37,
		DepreciationRecaptureRate: 0.4,
		HoldPeriodYears:           50,
		Financing:                 LTVFinancing{TargetLTV: 1.2, LoanAmount: 100, Terms: LoanTerms{InterestRate: 0.07}},
		Disposition:               CapRateDisposition{CapRate: -0.05},
	}
	got := Normalize(a)
	want := PropertyAssumptions{
		PurchasePrice:             0,
		AcquisitionCosts:          Cost{Type: Percentage, Percentage: 1},
		AcquisitionMonth:          12,
		PotentialRentalIncome:     []float64{100000, 0, 0},
		VacancyRates:              []float64{1, 0},
		ExpenseRate:               0,
		DepreciationYears:         27.5,
		LandPercentage:            0.3,
		ImprovementsPercentage:    0.7,
		OrdinaryIncomeTaxRate:     0.37,
		DepreciationRecaptureRate: MaxDepreciationRecaptureRate,
		HoldPeriodYears:           MaxHoldPeriodYears,
		Financing: LTVFinancing{TargetLTV: 1, LoanAmount: 0, Terms: LoanTerms{
			InterestRate:      0.07,
			TermYears:         DefaultAmortizationYears,
			AmortizationYears: DefaultAmortizationYears,
			PaymentsPerYear:   DefaultPaymentsPerYear,
		}},
		Disposition: CapRateDisposition{CapRate: 0},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(x, y float64) bool { return near(x, y, 1e-12) })); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
	if a.PotentialRentalIncome[1] != -1 {
		t.Errorf("Normalize() modified its input series")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	got := Normalize(PropertyAssumptions{PropertyType: Commercial})
	if _, ok := got.Financing.(CashFinancing); !ok {
		t.Errorf("Financing = %T, want CashFinancing", got.Financing)
	}
	if got.Disposition != (PriceDisposition{}) {
		t.Errorf("Disposition = %#v, want PriceDisposition{}", got.Disposition)
	}
	if got.DepreciationYears != 39 {
		t.Errorf("DepreciationYears = %v, want 39", got.DepreciationYears)
	}
	if got.ImprovementsPercentage != 1 {
		t.Errorf("ImprovementsPercentage = %v, want 1", got.ImprovementsPercentage)
	}
	if got.HoldPeriodYears != 0 {
		t.Errorf("HoldPeriodYears = %v, want 0", got.HoldPeriodYears)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	tests := []PropertyAssumptions{
		{},
		{
			PurchasePrice:         1000000,
			AcquisitionCosts:      Cost{Type: Dollar, Amount: -10},
			PotentialRentalIncome: series(100000, 5),
			VacancyRates:          []float64{2, 0.05},
			LandPercentage:        1.4,
			HoldPeriodYears:       -3,
			Financing:             DSCRFinancing{TargetDSCR: -1, Terms: LoanTerms{AmortizationYears: 25, PaymentsPerYear: -1}},
			Disposition:           PriceDisposition{Price: math.NaN()},
			CostOfSale:            Cost{Type: Percentage, Percentage: 0.06},
		},
		{
			PurchasePrice: 500000,
			ExpenseMode:   PercentOfIncome,
			ExpenseRate:   0.45,
			Financing:     LTVFinancing{TargetLTV: 0.8, LoanAmount: 900000},
		},
	}
	for i, a := range tests {
		once := Normalize(a)
		twice := Normalize(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("#%d Normalize() is not idempotent (-once +twice):\n%s", i, diff)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if got, err := ParseCostType("dollar"); err != nil || got != Dollar {
		t.Errorf("ParseCostType(dollar) = %v, %v", got, err)
	}
	if got, err := ParsePropertyType("Commercial"); err != nil || got != Commercial {
		t.Errorf("ParsePropertyType(Commercial) = %v, %v", got, err)
	}
	if got, err := ParseExpenseMode("percentage"); err != nil || got != PercentOfIncome {
		t.Errorf("ParseExpenseMode(percentage) = %v, %v", got, err)
	}
	for _, bad := range []string{"euro", "x"} {
		if _, err := ParseCostType(bad); err == nil {
			t.Errorf("ParseCostType(%q) error = nil, want an error", bad)
		}
	}
	if _, err := ParsePropertyType("industrial"); err == nil {
		t.Error("ParsePropertyType(industrial) error = nil, want an error")
	}
}

func TestCost_Of(t *testing.T) {
	if got := (Cost{Type: Percentage, Percentage: 0.03, Amount: 99}).Of(200000); got != 6000 {
		t.Errorf("percentage cost = %v, want 6000", got)
	}
	if got := (Cost{Type: Dollar, Amount: 5000, Percentage: 0.5}).Of(200000); got != 5000 {
		t.Errorf("dollar cost = %v, want 5000", got)
	}
}
