package proforma

import (
	"fmt"
	"math"
	"strings"
)

// MaxHoldPeriodYears is the longest hold period the engine projects.
const MaxHoldPeriodYears = 10

// MaxDepreciationRecaptureRate caps the depreciation recapture tax rate.
const MaxDepreciationRecaptureRate = 0.25

// Default loan structure used when the assumptions leave it unset.
const (
	DefaultAmortizationYears = 30
	DefaultPaymentsPerYear   = 12
)

// CostType tells how a cost is expressed.
type CostType int

const (
	Percentage CostType = iota // a fraction of a base amount
	Dollar                     // a flat amount
)

func (t CostType) String() string {
	if t == Dollar {
		return "dollar"
	}
	return "percentage"
}

// ParseCostType parses "percentage" or "dollar". The empty string is a percentage.
func ParseCostType(s string) (CostType, error) {
	switch strings.ToLower(s) {
	case "percentage", "percent", "%", "":
		return Percentage, nil
	case "dollar", "dollars", "$", "flat":
		return Dollar, nil
	default:
		return Percentage, fmt.Errorf("unknown cost type %q (want percentage or dollar)", s)
	}
}

// Cost is an amount either flat or proportional to a base.
type Cost struct {
	Type       CostType
	Amount     float64 // used for Dollar costs
	Percentage float64 // used for Percentage costs, as a fraction
}

// Of returns the cost applied to base.
func (c Cost) Of(base float64) float64 {
	if c.Type == Dollar {
		return c.Amount
	}
	return base * c.Percentage
}

// PropertyType selects the depreciation recovery period.
type PropertyType int

const (
	Residential PropertyType = iota
	Commercial
)

func (p PropertyType) String() string {
	if p == Commercial {
		return "commercial"
	}
	return "residential"
}

// DepreciationYears returns the straight-line recovery period of the property type.
func (p PropertyType) DepreciationYears() float64 {
	if p == Commercial {
		return 39
	}
	return 27.5
}

// ParsePropertyType parses "residential" or "commercial".
func ParsePropertyType(s string) (PropertyType, error) {
	switch strings.ToLower(s) {
	case "residential", "":
		return Residential, nil
	case "commercial":
		return Commercial, nil
	default:
		return Residential, fmt.Errorf("unknown property type %q (want residential or commercial)", s)
	}
}

// ExpenseMode tells how operating expenses are estimated.
type ExpenseMode int

const (
	ItemizedExpenses ExpenseMode = iota // sum of the itemized expense series
	PercentOfIncome                     // a rate applied to effective gross income
)

func (m ExpenseMode) String() string {
	if m == PercentOfIncome {
		return "percentage"
	}
	return "itemized"
}

// ParseExpenseMode parses "itemized" or "percentage".
func ParseExpenseMode(s string) (ExpenseMode, error) {
	switch strings.ToLower(s) {
	case "itemized", "dollar", "":
		return ItemizedExpenses, nil
	case "percentage", "percent":
		return PercentOfIncome, nil
	default:
		return ItemizedExpenses, fmt.Errorf("unknown operating expense type %q (want itemized or percentage)", s)
	}
}

// LoanTerms are the terms shared by all financed acquisitions.
type LoanTerms struct {
	InterestRate      float64 // annual, as a fraction
	TermYears         float64
	AmortizationYears float64
	PaymentsPerYear   int
	Costs             Cost // percentage of the loan amount or flat
}

// Financing is how the acquisition is paid for. It is one of CashFinancing,
// LTVFinancing or DSCRFinancing.
type Financing interface {
	// Kind returns the financing type name: cash, ltv or dscr.
	Kind() string
	// terms returns the loan terms, nil for all-cash purchases.
	terms() *LoanTerms
}

// CashFinancing is an all-cash purchase: no loan, no debt service.
type CashFinancing struct{}

// LTVFinancing sizes the loan as a fraction of the purchase price, unless
// LoanAmount is set explicitly.
type LTVFinancing struct {
	TargetLTV  float64
	LoanAmount float64
	Terms      LoanTerms
}

// DSCRFinancing sizes the loan from the first year NOI so that the debt
// service coverage ratio equals TargetDSCR.
type DSCRFinancing struct {
	TargetDSCR float64
	Terms      LoanTerms
}

func (CashFinancing) Kind() string        { return "cash" }
func (f LTVFinancing) Kind() string       { return "ltv" }
func (f DSCRFinancing) Kind() string      { return "dscr" }
func (CashFinancing) terms() *LoanTerms   { return nil }
func (f LTVFinancing) terms() *LoanTerms  { return &f.Terms }
func (f DSCRFinancing) terms() *LoanTerms { return &f.Terms }

// Disposition is how the sale price at the end of the hold period is set. It
// is one of PriceDisposition or CapRateDisposition.
type Disposition interface {
	// Kind returns the disposition price type: dollar or caprate.
	Kind() string
	// salePrice returns the sale price given the final year NOI.
	salePrice(finalNOI float64) float64
}

// PriceDisposition sells at a fixed price.
type PriceDisposition struct{ Price float64 }

// CapRateDisposition sells at the final year NOI capitalized at CapRate.
type CapRateDisposition struct{ CapRate float64 }

func (PriceDisposition) Kind() string   { return "dollar" }
func (CapRateDisposition) Kind() string { return "caprate" }

func (d PriceDisposition) salePrice(float64) float64 { return d.Price }
func (d CapRateDisposition) salePrice(finalNOI float64) float64 {
	return ValueFromCapRate(finalNOI, d.CapRate)
}

// PropertyAssumptions is the complete input of a pro-forma calculation.
//
// Per-year series are indexed by year-1; a missing entry reads as 0.
type PropertyAssumptions struct {
	PurchasePrice    float64
	AcquisitionCosts Cost
	AcquisitionMonth int // 1 to 12, drives the first year depreciation

	PotentialRentalIncome []float64
	OtherIncome           []float64
	VacancyRates          []float64 // fractions of potential rent

	ExpenseMode        ExpenseMode
	ExpenseRate        float64 // for PercentOfIncome
	OperatingExpenses  []float64
	PropertyTaxes      []float64
	Insurance          []float64
	Maintenance        []float64
	PropertyManagement []float64
	Utilities          []float64
	OtherExpenses      []float64

	Financing Financing

	PropertyType              PropertyType
	DepreciationYears         float64
	LandPercentage            float64
	ImprovementsPercentage    float64
	OrdinaryIncomeTaxRate     float64
	CapitalGainsTaxRate       float64
	DepreciationRecaptureRate float64

	HoldPeriodYears int
	Disposition     Disposition
	CostOfSale      Cost
}

// at returns series[year-1] or 0.
func at(series []float64, year int) float64 {
	if year < 1 || year > len(series) {
		return 0
	}
	return series[year-1]
}

// noiInputs gathers the income and expenses of year.
func (a PropertyAssumptions) noiInputs(year int) NOIInputs {
	in := NOIInputs{
		PotentialRentalIncome: at(a.PotentialRentalIncome, year),
		OtherIncome:           at(a.OtherIncome, year),
		VacancyRate:           at(a.VacancyRates, year),
	}
	if a.ExpenseMode == PercentOfIncome {
		in.ExpenseRate = a.ExpenseRate
		return in
	}
	in.OperatingExpenses = at(a.OperatingExpenses, year)
	in.PropertyTaxes = at(a.PropertyTaxes, year)
	in.Insurance = at(a.Insurance, year)
	in.Maintenance = at(a.Maintenance, year)
	in.PropertyManagement = at(a.PropertyManagement, year)
	in.Utilities = at(a.Utilities, year)
	in.OtherExpenses = at(a.OtherExpenses, year)
	return in
}

// Normalize returns a copy of a with every field clamped to a usable range
// and defaults filled in. It is idempotent.
func Normalize(a PropertyAssumptions) PropertyAssumptions {
	n := a
	n.PurchasePrice = nonNegative(a.PurchasePrice)
	n.AcquisitionCosts = normalizeCost(a.AcquisitionCosts)
	n.AcquisitionMonth = clampInt(a.AcquisitionMonth, 1, 12)

	n.PotentialRentalIncome = nonNegatives(a.PotentialRentalIncome)
	n.OtherIncome = nonNegatives(a.OtherIncome)
	n.VacancyRates = fractions(a.VacancyRates)

	n.ExpenseRate = fraction(a.ExpenseRate)
	n.OperatingExpenses = nonNegatives(a.OperatingExpenses)
	n.PropertyTaxes = nonNegatives(a.PropertyTaxes)
	n.Insurance = nonNegatives(a.Insurance)
	n.Maintenance = nonNegatives(a.Maintenance)
	n.PropertyManagement = nonNegatives(a.PropertyManagement)
	n.Utilities = nonNegatives(a.Utilities)
	n.OtherExpenses = nonNegatives(a.OtherExpenses)

	switch f := a.Financing.(type) {
	case LTVFinancing:
		f.TargetLTV = fraction(f.TargetLTV)
		f.LoanAmount = math.Min(nonNegative(f.LoanAmount), n.PurchasePrice)
		f.Terms = normalizeTerms(f.Terms)
		n.Financing = f
	case DSCRFinancing:
		f.TargetDSCR = nonNegative(f.TargetDSCR)
		f.Terms = normalizeTerms(f.Terms)
		n.Financing = f
	default:
		n.Financing = CashFinancing{}
	}

	if n.DepreciationYears = nonNegative(a.DepreciationYears); n.DepreciationYears == 0 {
		n.DepreciationYears = a.PropertyType.DepreciationYears()
	}
	n.LandPercentage = fraction(a.LandPercentage)
	n.ImprovementsPercentage = fraction(a.ImprovementsPercentage)
	if n.ImprovementsPercentage == 0 {
		n.ImprovementsPercentage = 1 - n.LandPercentage
	}
	n.ImprovementsPercentage = math.Min(n.ImprovementsPercentage, 1-n.LandPercentage)
	n.OrdinaryIncomeTaxRate = fraction(a.OrdinaryIncomeTaxRate)
	n.CapitalGainsTaxRate = fraction(a.CapitalGainsTaxRate)
	n.DepreciationRecaptureRate = math.Min(fraction(a.DepreciationRecaptureRate), MaxDepreciationRecaptureRate)

	if a.HoldPeriodYears != 0 {
		n.HoldPeriodYears = clampInt(a.HoldPeriodYears, 1, MaxHoldPeriodYears)
	}
	switch d := a.Disposition.(type) {
	case CapRateDisposition:
		d.CapRate = fraction(d.CapRate)
		n.Disposition = d
	case PriceDisposition:
		d.Price = nonNegative(d.Price)
		n.Disposition = d
	default:
		n.Disposition = PriceDisposition{}
	}
	n.CostOfSale = normalizeCost(a.CostOfSale)
	return n
}

func normalizeTerms(t LoanTerms) LoanTerms {
	t.InterestRate = fraction(t.InterestRate)
	if t.AmortizationYears = nonNegative(t.AmortizationYears); t.AmortizationYears == 0 {
		t.AmortizationYears = DefaultAmortizationYears
	}
	if t.TermYears = nonNegative(t.TermYears); t.TermYears == 0 {
		t.TermYears = t.AmortizationYears
	}
	if t.PaymentsPerYear <= 0 {
		t.PaymentsPerYear = DefaultPaymentsPerYear
	}
	t.Costs = normalizeCost(t.Costs)
	return t
}

func normalizeCost(c Cost) Cost {
	c.Amount = nonNegative(c.Amount)
	c.Percentage = fraction(c.Percentage)
	return c
}

// finite replaces NaN and infinities with 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func nonNegative(v float64) float64 { return math.Max(finite(v), 0) }
func fraction(v float64) float64    { return math.Min(nonNegative(v), 1) }

func clampInt(v, lo, hi int) int { return min(max(v, lo), hi) }

func nonNegatives(series []float64) []float64 { return mapSeries(series, nonNegative) }
func fractions(series []float64) []float64    { return mapSeries(series, fraction) }

// mapSeries returns a new slice, assumptions never share their series.
func mapSeries(series []float64, f func(float64) float64) []float64 {
	if series == nil {
		return nil
	}
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = f(v)
	}
	return out
}
