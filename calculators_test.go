package proforma

import (
	"math"
	"testing"
)

func TestCalculateNOI(t *testing.T) {
	tests := []struct {
		name string
		in   NOIInputs
		want NOIResult
	}{
		{
			name: "itemized",
			in: NOIInputs{
				PotentialRentalIncome: 100000, OtherIncome: 5000, VacancyRate: 0.05,
				PropertyTaxes: 12000, Insurance: 3000, Maintenance: 5000, PropertyManagement: 8000, Utilities: 2000,
			},
			want: NOIResult{GrossPotentialIncome: 105000, VacancyLoss: 5000, EffectiveGrossIncome: 100000, OperatingExpenses: 30000, NOI: 70000, ExpenseRatio: 0.3},
		},
		{
			name: "expense rate",
			in:   NOIInputs{PotentialRentalIncome: 100000, ExpenseRate: 0.4, PropertyTaxes: 12000},
			want: NOIResult{GrossPotentialIncome: 100000, EffectiveGrossIncome: 100000, OperatingExpenses: 40000, NOI: 60000, ExpenseRatio: 0.4},
		},
		{
			name: "no income",
			in:   NOIInputs{Insurance: 1000},
			want: NOIResult{OperatingExpenses: 1000, NOI: -1000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateNOI(tt.in); got != tt.want {
				t.Errorf("CalculateNOI() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateNOIInputs(t *testing.T) {
	if got := ValidateNOIInputs(NOIInputs{PotentialRentalIncome: 1000, VacancyRate: 0.1}); len(got) != 0 {
		t.Errorf("ValidateNOIInputs() = %q, want none", got)
	}
	if got := ValidateNOIInputs(NOIInputs{PotentialRentalIncome: -1, VacancyRate: 2, Utilities: -5}); len(got) != 3 {
		t.Errorf("ValidateNOIInputs() = %q, want 3 messages", got)
	}
}

func TestAnalyzeCapRate(t *testing.T) {
	tests := []struct {
		noi, price float64
		wantRate   float64
		wantTier   string
	}{
		{-1000, 100000, -0.01, "Negative"},
		{30000, 1000000, 0.03, "Low"},
		{50000, 1000000, 0.05, "Moderate"},
		{80000, 1000000, 0.08, "High"},
		{120000, 1000000, 0.12, "Very High"},
		{50000, 0, 0, "Negative"},
	}
	for _, tt := range tests {
		got := AnalyzeCapRate(tt.noi, tt.price)
		if !near(got.CapRate, tt.wantRate, 1e-12) || got.Tier != tt.wantTier {
			t.Errorf("AnalyzeCapRate(%v, %v) = %v %s, want %v %s", tt.noi, tt.price, got.CapRate, got.Tier, tt.wantRate, tt.wantTier)
		}
	}
	if got := ValueFromCapRate(50000, 0.05); !near(got, 1000000, 1e-6) {
		t.Errorf("ValueFromCapRate() = %v, want 1000000", got)
	}
	if got := ValueFromCapRate(50000, 0); got != 0 {
		t.Errorf("ValueFromCapRate() at 0%% = %v, want 0", got)
	}
	if got := ValidateCapRateInputs(0, 0); len(got) != 2 {
		t.Errorf("ValidateCapRateInputs(0, 0) = %q, want 2 messages", got)
	}
}

func TestTVM(t *testing.T) {
	if got := FutureValue(1000, 0.05, 10, 0); !near(got, 1628.894627, 1e-6) {
		t.Errorf("FutureValue() = %v, want 1628.894627", got)
	}
	if got := PresentValue(1628.894626777442, 0.05, 10, 0); !near(got, 1000, 1e-6) {
		t.Errorf("PresentValue() = %v, want 1000", got)
	}
	if got := FutureValue(0, 0, 12, 100); got != 1200 {
		t.Errorf("FutureValue() at zero rate = %v, want 1200", got)
	}
	pmt := AnnuityPayment(100000, 0.005, 360)
	if !near(pmt, 599.55, 0.01) {
		t.Errorf("AnnuityPayment() = %v, want 599.55", pmt)
	}
	if got := AnnuityPeriods(100000, 0.005, pmt); !near(got, 360, 1e-6) {
		t.Errorf("AnnuityPeriods() = %v, want 360", got)
	}
	if got := AnnuityPeriods(100000, 0.01, 500); !math.IsInf(got, 1) {
		t.Errorf("AnnuityPeriods() when interest is not covered = %v, want +Inf", got)
	}
	rate, ok := AnnuityRate(100000, pmt, 360)
	if !ok || !near(rate, 0.005, 1e-6) {
		t.Errorf("AnnuityRate() = %v, %v, want 0.005", rate, ok)
	}
}

func TestSolveTVM(t *testing.T) {
	tests := []struct {
		in      TVMInputs
		want    float64
		wantErr bool
	}{
		{TVMInputs{Solve: SolveFutureValue, PresentValue: 1000, Rate: 0.05, Periods: 10}, 1628.894627, false},
		{TVMInputs{Solve: SolvePresentValue, FutureValue: 1628.894626777442, Rate: 0.05, Periods: 10}, 1000, false},
		{TVMInputs{Solve: SolvePayment, PresentValue: 120000, Periods: 120}, 1000, false},
		{TVMInputs{Solve: SolvePeriods, PresentValue: 120000, Payment: 1000}, 120, false},
		{TVMInputs{Solve: SolveRate, PresentValue: 100, Payment: 110, Periods: 1}, 0.1, false},
		{TVMInputs{Solve: SolvePayment, Periods: 120}, 0, true},
		{TVMInputs{Solve: SolveFutureValue, PresentValue: -1, Periods: 10}, 0, true},
	}
	for _, tt := range tests {
		got, err := SolveTVM(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("SolveTVM(%v) error = %v, wantErr %v", tt.in.Solve, err, tt.wantErr)
			continue
		}
		if !near(got, tt.want, 1e-6) {
			t.Errorf("SolveTVM(%v) = %v, want %v", tt.in.Solve, got, tt.want)
		}
	}
	if _, err := ParseTVMUnknown("pmt"); err != nil {
		t.Errorf("ParseTVMUnknown(pmt) error = %v", err)
	}
	if _, err := ParseTVMUnknown("bogus"); err == nil {
		t.Error("ParseTVMUnknown(bogus) error = nil, want an error")
	}
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 8 {
		t.Errorf("DefaultCatalog().Len() = %d, want 8", c.Len())
	}
	for _, calc := range c.All() {
		got, ok := c.Lookup(calc.ID)
		if !ok || got != calc {
			t.Errorf("Lookup(%q) = %v, %v", calc.ID, got, ok)
		}
		if calc.Name == "" || calc.Description == "" || calc.Topic == "" {
			t.Errorf("calculator %q is missing a name, description or topic", calc.ID)
		}
	}
	if _, ok := c.Lookup("mortgage"); ok {
		t.Error("Lookup(mortgage) ok = true, want false")
	}

	all := c.All()
	all[0].Name = "changed"
	if got, _ := c.Lookup(all[0].ID); got.Name == "changed" {
		t.Error("All() returned the catalog storage")
	}
	if DefaultCatalog() == c {
		t.Error("DefaultCatalog() returned a shared catalog")
	}
}

func TestNewCatalog_Errors(t *testing.T) {
	if _, err := NewCatalog(Calculator{ID: "a"}, Calculator{ID: "a"}); err == nil {
		t.Error("NewCatalog() with duplicate IDs error = nil, want an error")
	}
	if _, err := NewCatalog(Calculator{Name: "no id"}); err == nil {
		t.Error("NewCatalog() with an empty ID error = nil, want an error")
	}
	c, err := NewCatalog()
	if err != nil || c.Len() != 0 {
		t.Errorf("NewCatalog() = %v, %v, want an empty catalog", c, err)
	}
}
