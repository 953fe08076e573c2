package proforma

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// this file contains the assumptions file format.
// It is a flat, human editable document whose discriminator fields
// (financingType, dispositionPriceType, ...) select the tagged variants of
// PropertyAssumptions.

// Format is the encoding of an assumptions file.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatOf returns the format of a file from its extension. Unknown
// extensions are JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// assumptionsFile is the persisted form of PropertyAssumptions.
type assumptionsFile struct {
	PurchasePrice       float64 `json:"purchasePrice" yaml:"purchasePrice"`
	AcquisitionCosts    float64 `json:"acquisitionCosts,omitempty" yaml:"acquisitionCosts,omitempty"`
	AcquisitionCostType string  `json:"acquisitionCostType,omitempty" yaml:"acquisitionCostType,omitempty"`
	AcquisitionMonth    int     `json:"acquisitionMonth,omitempty" yaml:"acquisitionMonth,omitempty"`

	PotentialRentalIncome []float64 `json:"potentialRentalIncome,omitempty" yaml:"potentialRentalIncome,omitempty"`
	OtherIncome           []float64 `json:"otherIncome,omitempty" yaml:"otherIncome,omitempty"`
	VacancyRates          []float64 `json:"vacancyRates,omitempty" yaml:"vacancyRates,omitempty"`

	OperatingExpenseType string    `json:"operatingExpenseType,omitempty" yaml:"operatingExpenseType,omitempty"`
	OperatingExpenseRate float64   `json:"operatingExpenseRate,omitempty" yaml:"operatingExpenseRate,omitempty"`
	OperatingExpenses    []float64 `json:"operatingExpenses,omitempty" yaml:"operatingExpenses,omitempty"`
	PropertyTaxes        []float64 `json:"propertyTaxes,omitempty" yaml:"propertyTaxes,omitempty"`
	Insurance            []float64 `json:"insurance,omitempty" yaml:"insurance,omitempty"`
	Maintenance          []float64 `json:"maintenance,omitempty" yaml:"maintenance,omitempty"`
	PropertyManagement   []float64 `json:"propertyManagement,omitempty" yaml:"propertyManagement,omitempty"`
	Utilities            []float64 `json:"utilities,omitempty" yaml:"utilities,omitempty"`
	OtherExpenses        []float64 `json:"otherExpenses,omitempty" yaml:"otherExpenses,omitempty"`

	FinancingType     string  `json:"financingType,omitempty" yaml:"financingType,omitempty"`
	LoanAmount        float64 `json:"loanAmount,omitempty" yaml:"loanAmount,omitempty"`
	InterestRate      float64 `json:"interestRate,omitempty" yaml:"interestRate,omitempty"`
	LoanTermYears     float64 `json:"loanTermYears,omitempty" yaml:"loanTermYears,omitempty"`
	AmortizationYears float64 `json:"amortizationYears,omitempty" yaml:"amortizationYears,omitempty"`
	PaymentsPerYear   int     `json:"paymentsPerYear,omitempty" yaml:"paymentsPerYear,omitempty"`
	TargetDSCR        float64 `json:"targetDSCR,omitempty" yaml:"targetDSCR,omitempty"`
	TargetLTV         float64 `json:"targetLTV,omitempty" yaml:"targetLTV,omitempty"`
	LoanCosts         float64 `json:"loanCosts,omitempty" yaml:"loanCosts,omitempty"`
	LoanCostType      string  `json:"loanCostType,omitempty" yaml:"loanCostType,omitempty"`

	PropertyType              string  `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	DepreciationYears         float64 `json:"depreciationYears,omitempty" yaml:"depreciationYears,omitempty"`
	LandPercentage            float64 `json:"landPercentage,omitempty" yaml:"landPercentage,omitempty"`
	ImprovementsPercentage    float64 `json:"improvementsPercentage,omitempty" yaml:"improvementsPercentage,omitempty"`
	OrdinaryIncomeTaxRate     float64 `json:"ordinaryIncomeTaxRate,omitempty" yaml:"ordinaryIncomeTaxRate,omitempty"`
	CapitalGainsTaxRate       float64 `json:"capitalGainsTaxRate,omitempty" yaml:"capitalGainsTaxRate,omitempty"`
	DepreciationRecaptureRate float64 `json:"depreciationRecaptureRate,omitempty" yaml:"depreciationRecaptureRate,omitempty"`

	HoldPeriodYears      int     `json:"holdPeriodYears,omitempty" yaml:"holdPeriodYears,omitempty"`
	DispositionPriceType string  `json:"dispositionPriceType,omitempty" yaml:"dispositionPriceType,omitempty"`
	DispositionPrice     float64 `json:"dispositionPrice,omitempty" yaml:"dispositionPrice,omitempty"`
	DispositionCapRate   float64 `json:"dispositionCapRate,omitempty" yaml:"dispositionCapRate,omitempty"`
	CostOfSaleType       string  `json:"costOfSaleType,omitempty" yaml:"costOfSaleType,omitempty"`
	CostOfSaleAmount     float64 `json:"costOfSaleAmount,omitempty" yaml:"costOfSaleAmount,omitempty"`
	CostOfSalePercentage float64 `json:"costOfSalePercentage,omitempty" yaml:"costOfSalePercentage,omitempty"`
}

// DecodeAssumptions reads assumptions from r in the given format.
//
// Unknown fields and unknown discriminator values are errors.
func DecodeAssumptions(r io.Reader, format Format) (PropertyAssumptions, error) {
	var f assumptionsFile
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return PropertyAssumptions{}, fmt.Errorf("cannot decode yaml assumptions: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return PropertyAssumptions{}, fmt.Errorf("cannot decode json assumptions: %w", err)
		}
	}
	return f.assumptions()
}

// EncodeAssumptions writes a to w in the given format.
func EncodeAssumptions(w io.Writer, a PropertyAssumptions, format Format) error {
	f := newAssumptionsFile(a)
	if format == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("cannot encode yaml assumptions: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("cannot encode json assumptions: %w", err)
	}
	return nil
}

// cost builds a Cost from a value and its type. Percentage values are fractions.
func cost(value float64, typ string) (Cost, error) {
	t, err := ParseCostType(typ)
	if err != nil {
		return Cost{}, err
	}
	if t == Dollar {
		return Cost{Type: Dollar, Amount: value}, nil
	}
	return Cost{Type: Percentage, Percentage: value}, nil
}

// costValue is the inverse of cost.
func costValue(c Cost) (float64, string) {
	if c.Type == Dollar {
		return c.Amount, Dollar.String()
	}
	return c.Percentage, Percentage.String()
}

func (f assumptionsFile) assumptions() (PropertyAssumptions, error) {
	a := PropertyAssumptions{
		PurchasePrice:             f.PurchasePrice,
		AcquisitionMonth:          f.AcquisitionMonth,
		PotentialRentalIncome:     f.PotentialRentalIncome,
		OtherIncome:               f.OtherIncome,
		VacancyRates:              f.VacancyRates,
		ExpenseRate:               f.OperatingExpenseRate,
		OperatingExpenses:         f.OperatingExpenses,
		PropertyTaxes:             f.PropertyTaxes,
		Insurance:                 f.Insurance,
		Maintenance:               f.Maintenance,
		PropertyManagement:        f.PropertyManagement,
		Utilities:                 f.Utilities,
		OtherExpenses:             f.OtherExpenses,
		DepreciationYears:         f.DepreciationYears,
		LandPercentage:            f.LandPercentage,
		ImprovementsPercentage:    f.ImprovementsPercentage,
		OrdinaryIncomeTaxRate:     f.OrdinaryIncomeTaxRate,
		CapitalGainsTaxRate:       f.CapitalGainsTaxRate,
		DepreciationRecaptureRate: f.DepreciationRecaptureRate,
		HoldPeriodYears:           f.HoldPeriodYears,
	}
	var err error
	if a.AcquisitionCosts, err = cost(f.AcquisitionCosts, f.AcquisitionCostType); err != nil {
		return a, fmt.Errorf("acquisitionCostType: %w", err)
	}
	if a.ExpenseMode, err = ParseExpenseMode(f.OperatingExpenseType); err != nil {
		return a, fmt.Errorf("operatingExpenseType: %w", err)
	}
	if a.PropertyType, err = ParsePropertyType(f.PropertyType); err != nil {
		return a, fmt.Errorf("propertyType: %w", err)
	}

	loanCosts, err := cost(f.LoanCosts, f.LoanCostType)
	if err != nil {
		return a, fmt.Errorf("loanCostType: %w", err)
	}
	terms := LoanTerms{
		InterestRate:      f.InterestRate,
		TermYears:         f.LoanTermYears,
		AmortizationYears: f.AmortizationYears,
		PaymentsPerYear:   f.PaymentsPerYear,
		Costs:             loanCosts,
	}
	switch strings.ToLower(f.FinancingType) {
	case "cash", "":
		a.Financing = CashFinancing{}
	case "ltv":
		a.Financing = LTVFinancing{TargetLTV: f.TargetLTV, LoanAmount: f.LoanAmount, Terms: terms}
	case "dscr":
		a.Financing = DSCRFinancing{TargetDSCR: f.TargetDSCR, Terms: terms}
	default:
		return a, fmt.Errorf("financingType: unknown value %q (want cash, ltv or dscr)", f.FinancingType)
	}

	switch strings.ToLower(f.DispositionPriceType) {
	case "dollar", "":
		a.Disposition = PriceDisposition{Price: f.DispositionPrice}
	case "caprate":
		a.Disposition = CapRateDisposition{CapRate: f.DispositionCapRate}
	default:
		return a, fmt.Errorf("dispositionPriceType: unknown value %q (want dollar or caprate)", f.DispositionPriceType)
	}

	ct, err := ParseCostType(f.CostOfSaleType)
	if err != nil {
		return a, fmt.Errorf("costOfSaleType: %w", err)
	}
	a.CostOfSale = Cost{Type: ct, Amount: f.CostOfSaleAmount, Percentage: f.CostOfSalePercentage}
	return a, nil
}

func newAssumptionsFile(a PropertyAssumptions) assumptionsFile {
	f := assumptionsFile{
		PurchasePrice:             a.PurchasePrice,
		AcquisitionMonth:          a.AcquisitionMonth,
		PotentialRentalIncome:     a.PotentialRentalIncome,
		OtherIncome:               a.OtherIncome,
		VacancyRates:              a.VacancyRates,
		OperatingExpenses:         a.OperatingExpenses,
		PropertyTaxes:             a.PropertyTaxes,
		Insurance:                 a.Insurance,
		Maintenance:               a.Maintenance,
		PropertyManagement:        a.PropertyManagement,
		Utilities:                 a.Utilities,
		OtherExpenses:             a.OtherExpenses,
		PropertyType:              a.PropertyType.String(),
		DepreciationYears:         a.DepreciationYears,
		LandPercentage:            a.LandPercentage,
		ImprovementsPercentage:    a.ImprovementsPercentage,
		OrdinaryIncomeTaxRate:     a.OrdinaryIncomeTaxRate,
		CapitalGainsTaxRate:       a.CapitalGainsTaxRate,
		DepreciationRecaptureRate: a.DepreciationRecaptureRate,
		HoldPeriodYears:           a.HoldPeriodYears,
		CostOfSaleType:            a.CostOfSale.Type.String(),
		CostOfSaleAmount:          a.CostOfSale.Amount,
		CostOfSalePercentage:      a.CostOfSale.Percentage,
	}
	f.AcquisitionCosts, f.AcquisitionCostType = costValue(a.AcquisitionCosts)
	if a.ExpenseMode == PercentOfIncome {
		f.OperatingExpenseType = a.ExpenseMode.String()
		f.OperatingExpenseRate = a.ExpenseRate
	}

	var terms *LoanTerms
	if a.Financing != nil {
		f.FinancingType = a.Financing.Kind()
		terms = a.Financing.terms()
	}
	switch v := a.Financing.(type) {
	case LTVFinancing:
		f.TargetLTV, f.LoanAmount = v.TargetLTV, v.LoanAmount
	case DSCRFinancing:
		f.TargetDSCR = v.TargetDSCR
	}
	if terms != nil {
		f.InterestRate = terms.InterestRate
		f.LoanTermYears = terms.TermYears
		f.AmortizationYears = terms.AmortizationYears
		f.PaymentsPerYear = terms.PaymentsPerYear
		f.LoanCosts, f.LoanCostType = costValue(terms.Costs)
	}

	switch d := a.Disposition.(type) {
	case PriceDisposition:
		f.DispositionPriceType, f.DispositionPrice = d.Kind(), d.Price
	case CapRateDisposition:
		f.DispositionPriceType, f.DispositionCapRate = d.Kind(), d.CapRate
	}
	return f
}

// MarshalJSON encodes the cashflow with ordered camelCase keys.
func (cf AnnualCashflow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("year", cf.Year)
	w.Number("effectiveGrossIncome", cf.EffectiveGrossIncome)
	w.Number("operatingExpenses", cf.OperatingExpenses)
	w.Number("noi", cf.NOI)
	w.Number("debtService", cf.DebtService)
	w.Number("interestPaid", cf.InterestPaid)
	w.Number("principalPaid", cf.PrincipalPaid)
	w.Number("beforeTaxCashflow", cf.BeforeTaxCashflow)
	w.Number("depreciation", cf.Depreciation)
	w.Number("taxableIncome", cf.TaxableIncome)
	w.Number("taxes", cf.Taxes)
	w.Number("afterTaxCashflow", cf.AfterTaxCashflow)
	w.Number("loanBalance", cf.LoanBalance)
	w.Number("cashOnCashReturn", cf.CashOnCashReturn)
	w.Number("afterTaxCashOnCash", cf.AfterTaxCashOnCash)
	return w.MarshalJSON()
}

// MarshalJSON encodes the sale analysis with ordered camelCase keys.
func (s SaleAnalysis) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Number("salePrice", s.SalePrice)
	w.Number("costOfSale", s.CostOfSale)
	w.Number("loanPayoff", s.LoanPayoff)
	w.Number("accumulatedDepreciation", s.AccumulatedDepreciation)
	w.Number("adjustedBasis", s.AdjustedBasis)
	w.Number("gain", s.Gain)
	w.Number("recaptureTax", s.RecaptureTax)
	w.Number("capitalGainsTax", s.CapitalGainsTax)
	w.Number("netProceedsBeforeTax", s.NetProceedsBeforeTax)
	w.Number("netProceedsAfterTax", s.NetProceedsAfterTax)
	return w.MarshalJSON()
}

// MarshalJSON encodes the results with ordered camelCase keys. An unsolved
// IRR and non-finite ratios are null.
func (r ProFormaResults) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	flows := r.AnnualCashflows
	if flows == nil {
		flows = []AnnualCashflow{}
	}
	w.Append("annualCashflows", flows)
	w.Number("loanAmount", r.LoanAmount)
	w.Number("totalEquityInvested", r.TotalEquityInvested)
	w.Number("totalCashReturned", r.TotalCashReturned)
	w.Number("netProfit", r.NetProfit)
	w.Solved("irr", r.IRR)
	w.Number("equityMultiple", r.EquityMultiple)
	w.Number("averageCashOnCash", r.AverageCashOnCash)
	w.Number("totalTaxSavings", r.TotalTaxSavings)
	w.Append("sale", r.Sale)
	return w.MarshalJSON()
}

// MarshalJSON encodes the analysis with ordered camelCase keys. A DSCR
// without debt service is null.
func (a DSCRAnalysis) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Number("dscr", a.DSCR)
	w.Number("annualDebtService", a.AnnualDebtService)
	w.Number("monthlyPayment", a.MonthlyPayment)
	w.Append("isHealthy", a.IsHealthy)
	w.Append("riskLevel", a.RiskLevel)
	w.Append("interpretation", a.Interpretation)
	return w.MarshalJSON()
}
