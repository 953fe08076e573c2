package renderer

import (
	"fmt"

	"github.com/etnz/proforma"
)

// ProForma is the pro-forma report data.
// Amounts are Money and ratios Percent or Multiple so that they already
// carry their renderers.
type ProForma struct {
	// Name of the deal, optional.
	Name string `json:"name,omitempty"`
	// PurchasePrice is the acquisition price.
	PurchasePrice proforma.Money `json:"purchasePrice"`
	// Financing describes how the acquisition is paid for.
	Financing string `json:"financing"`
	// HoldPeriodYears is the number of projected years.
	HoldPeriodYears int `json:"holdPeriodYears"`
	// Warnings are the validation messages of the assumptions.
	Warnings []string `json:"warnings,omitempty"`

	LoanAmount          proforma.Money    `json:"loanAmount"`
	TotalEquityInvested proforma.Money    `json:"totalEquityInvested"`
	TotalCashReturned   proforma.Money    `json:"totalCashReturned"`
	NetProfit           proforma.Money    `json:"netProfit"`
	HasIRR              bool              `json:"hasIRR"`
	IRR                 proforma.Percent  `json:"irr"`
	EquityMultiple      proforma.Multiple `json:"equityMultiple"`
	AverageCashOnCash   proforma.Percent  `json:"averageCashOnCash"`
	TotalTaxSavings     proforma.Money    `json:"totalTaxSavings"`

	Years []ProFormaYear `json:"years"`
	Sale  ProFormaSale   `json:"sale"`
}

// ProFormaYear is one row of the annual cashflows.
type ProFormaYear struct {
	Year                 int              `json:"year"`
	EffectiveGrossIncome proforma.Money   `json:"effectiveGrossIncome"`
	OperatingExpenses    proforma.Money   `json:"operatingExpenses"`
	NOI                  proforma.Money   `json:"noi"`
	DebtService          proforma.Money   `json:"debtService"`
	BeforeTaxCashflow    proforma.Money   `json:"beforeTaxCashflow"`
	Depreciation         proforma.Money   `json:"depreciation"`
	Taxes                proforma.Money   `json:"taxes"`
	AfterTaxCashflow     proforma.Money   `json:"afterTaxCashflow"`
	LoanBalance          proforma.Money   `json:"loanBalance"`
	CashOnCash           proforma.Percent `json:"cashOnCash"`
}

// ProFormaSale is the disposition at the end of the hold period.
type ProFormaSale struct {
	SalePrice               proforma.Money `json:"salePrice"`
	CostOfSale              proforma.Money `json:"costOfSale"`
	LoanPayoff              proforma.Money `json:"loanPayoff"`
	NetProceedsBeforeTax    proforma.Money `json:"netProceedsBeforeTax"`
	AccumulatedDepreciation proforma.Money `json:"accumulatedDepreciation"`
	AdjustedBasis           proforma.Money `json:"adjustedBasis"`
	Gain                    proforma.Money `json:"gain"`
	RecaptureTax            proforma.Money `json:"recaptureTax"`
	CapitalGainsTax         proforma.Money `json:"capitalGainsTax"`
	NetProceedsAfterTax     proforma.Money `json:"netProceedsAfterTax"`
}

// NewProForma creates the report data of assumptions a and their results r,
// amounts in currency.
func NewProForma(name string, a proforma.PropertyAssumptions, r proforma.ProFormaResults, currency string) *ProForma {
	m := func(v float64) proforma.Money { return proforma.M(v, currency) }
	n := proforma.Normalize(a)
	p := &ProForma{
		Name:                name,
		PurchasePrice:       m(n.PurchasePrice),
		Financing:           financingLabel(n.Financing),
		HoldPeriodYears:     n.HoldPeriodYears,
		Warnings:            proforma.ValidateAssumptions(a),
		LoanAmount:          m(r.LoanAmount),
		TotalEquityInvested: m(r.TotalEquityInvested),
		TotalCashReturned:   m(r.TotalCashReturned),
		NetProfit:           m(r.NetProfit),
		EquityMultiple:      proforma.Multiple(r.EquityMultiple),
		AverageCashOnCash:   proforma.Pct(r.AverageCashOnCash),
		TotalTaxSavings:     m(r.TotalTaxSavings),
		Sale: ProFormaSale{
			SalePrice:               m(r.Sale.SalePrice),
			CostOfSale:              m(r.Sale.CostOfSale),
			LoanPayoff:              m(r.Sale.LoanPayoff),
			NetProceedsBeforeTax:    m(r.Sale.NetProceedsBeforeTax),
			AccumulatedDepreciation: m(r.Sale.AccumulatedDepreciation),
			AdjustedBasis:           m(r.Sale.AdjustedBasis),
			Gain:                    m(r.Sale.Gain),
			RecaptureTax:            m(r.Sale.RecaptureTax),
			CapitalGainsTax:         m(r.Sale.CapitalGainsTax),
			NetProceedsAfterTax:     m(r.Sale.NetProceedsAfterTax),
		},
	}
	if r.IRR != nil {
		p.HasIRR = true
		p.IRR = proforma.Pct(*r.IRR)
	}
	for _, cf := range r.AnnualCashflows {
		p.Years = append(p.Years, ProFormaYear{
			Year:                 cf.Year,
			EffectiveGrossIncome: m(cf.EffectiveGrossIncome),
			OperatingExpenses:    m(cf.OperatingExpenses),
			NOI:                  m(cf.NOI),
			DebtService:          m(cf.DebtService),
			BeforeTaxCashflow:    m(cf.BeforeTaxCashflow),
			Depreciation:         m(cf.Depreciation),
			Taxes:                m(cf.Taxes),
			AfterTaxCashflow:     m(cf.AfterTaxCashflow),
			LoanBalance:          m(cf.LoanBalance),
			CashOnCash:           proforma.Pct(cf.CashOnCashReturn),
		})
	}
	return p
}

// financingLabel describes normalized financing f in a few words.
func financingLabel(f proforma.Financing) string {
	switch v := f.(type) {
	case proforma.LTVFinancing:
		if v.LoanAmount > 0 {
			return fmt.Sprintf("fixed loan at %s over %g years", proforma.Pct(v.Terms.InterestRate), v.Terms.AmortizationYears)
		}
		return fmt.Sprintf("%s LTV loan at %s over %g years", proforma.Pct(v.TargetLTV), proforma.Pct(v.Terms.InterestRate), v.Terms.AmortizationYears)
	case proforma.DSCRFinancing:
		return fmt.Sprintf("loan sized at %s DSCR, %s over %g years", proforma.Multiple(v.TargetDSCR), proforma.Pct(v.Terms.InterestRate), v.Terms.AmortizationYears)
	default:
		return "all cash"
	}
}
