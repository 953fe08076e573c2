package proforma

import "math"

// SaleAnalysis details the disposition at the end of the hold period.
type SaleAnalysis struct {
	SalePrice               float64
	CostOfSale              float64
	LoanPayoff              float64
	AccumulatedDepreciation float64
	AdjustedBasis           float64 // price and acquisition costs less depreciation
	Gain                    float64
	RecaptureTax            float64
	CapitalGainsTax         float64
	NetProceedsBeforeTax    float64
	NetProceedsAfterTax     float64
}

// ProFormaResults aggregates the annual cashflows into investment metrics.
type ProFormaResults struct {
	AnnualCashflows     []AnnualCashflow
	LoanAmount          float64
	TotalEquityInvested float64
	TotalCashReturned   float64
	NetProfit           float64
	IRR                 *float64 // nil when it cannot be solved
	EquityMultiple      float64
	AverageCashOnCash   float64
	TotalTaxSavings     float64
	Sale                SaleAnalysis
}

// Calculate runs the full pro-forma: it normalizes a, resolves the loan,
// projects the annual cashflows and aggregates them.
//
// It never fails: incomplete assumptions yield zero metrics and a nil IRR.
func Calculate(a PropertyAssumptions) ProFormaResults {
	n := Normalize(a)
	plan := resolveFinancing(n)
	equity := equityInvested(n, plan)

	r := ProFormaResults{
		AnnualCashflows:     project(n, plan, equity),
		LoanAmount:          plan.LoanAmount,
		TotalEquityInvested: equity,
	}
	if len(r.AnnualCashflows) == 0 {
		// nothing projected, nothing sold: the equity is lost.
		r.NetProfit = -r.TotalEquityInvested
		return r
	}
	r.Sale = analyzeSale(n, r.AnnualCashflows)

	var operating, cashOnCash float64
	for _, cf := range r.AnnualCashflows {
		operating += cf.AfterTaxCashflow
		cashOnCash += cf.AfterTaxCashOnCash
		if cf.Taxes < 0 {
			r.TotalTaxSavings -= cf.Taxes
		}
	}
	r.TotalCashReturned = operating + r.Sale.NetProceedsAfterTax
	r.NetProfit = r.TotalCashReturned - r.TotalEquityInvested
	r.AverageCashOnCash = cashOnCash / float64(len(r.AnnualCashflows))
	if equity > 0 {
		r.EquityMultiple = r.TotalCashReturned / equity
		if irr, ok := IRR(r.Cashflows()); ok {
			r.IRR = &irr
		}
	}
	return r
}

// Cashflows returns the investor cashflow vector: the equity invested as an
// outflow, then every after-tax cashflow, the last one including the net
// sale proceeds.
func (r ProFormaResults) Cashflows() []float64 {
	cfs := make([]float64, 0, len(r.AnnualCashflows)+1)
	cfs = append(cfs, -r.TotalEquityInvested)
	for _, cf := range r.AnnualCashflows {
		cfs = append(cfs, cf.AfterTaxCashflow)
	}
	if len(r.AnnualCashflows) > 0 {
		cfs[len(cfs)-1] += r.Sale.NetProceedsAfterTax
	}
	return cfs
}

// analyzeSale computes the sale at the end of the hold period.
func analyzeSale(n PropertyAssumptions, flows []AnnualCashflow) SaleAnalysis {
	final := flows[len(flows)-1]
	var s SaleAnalysis
	s.SalePrice = n.Disposition.salePrice(final.NOI)
	s.CostOfSale = n.CostOfSale.Of(s.SalePrice)
	s.LoanPayoff = final.LoanBalance

	for _, cf := range flows {
		s.AccumulatedDepreciation += cf.Depreciation
	}
	s.AdjustedBasis = n.PurchasePrice + n.AcquisitionCosts.Of(n.PurchasePrice) - s.AccumulatedDepreciation
	s.Gain = s.SalePrice - s.CostOfSale - s.AdjustedBasis

	if s.Gain > 0 {
		recaptured := math.Min(s.AccumulatedDepreciation, s.Gain)
		recaptureRate := math.Min(n.DepreciationRecaptureRate, n.OrdinaryIncomeTaxRate)
		s.RecaptureTax = recaptured * recaptureRate
		s.CapitalGainsTax = (s.Gain - recaptured) * n.CapitalGainsTaxRate
	}

	s.NetProceedsBeforeTax = s.SalePrice - s.CostOfSale - s.LoanPayoff
	s.NetProceedsAfterTax = s.NetProceedsBeforeTax - s.RecaptureTax - s.CapitalGainsTax
	return s
}
