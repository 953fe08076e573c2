package proforma

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the header row of the annual cashflow section.
var csvHeader = []string{
	"Year",
	"Effective Gross Income",
	"Operating Expenses",
	"NOI",
	"Debt Service",
	"Before-Tax Cashflow",
	"Depreciation",
	"Taxable Income",
	"Taxes",
	"After-Tax Cashflow",
	"Loan Balance",
	"Cash on Cash",
}

// EncodeCSV writes the annual cashflows of r, one row per year, followed by
// a blank line and the summary metrics as "metric,value" rows.
//
// Amounts are rounded to the minor unit of currency.
func EncodeCSV(w io.Writer, r ProFormaResults, currency string) error {
	cw := csv.NewWriter(w)
	amount := func(v float64) string { return M(v, currency).Plain() }
	ratio := func(v float64) string { return strconv.FormatFloat(finite(v), 'f', 4, 64) }

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	for _, cf := range r.AnnualCashflows {
		row := []string{
			strconv.Itoa(cf.Year),
			amount(cf.EffectiveGrossIncome),
			amount(cf.OperatingExpenses),
			amount(cf.NOI),
			amount(cf.DebtService),
			amount(cf.BeforeTaxCashflow),
			amount(cf.Depreciation),
			amount(cf.TaxableIncome),
			amount(cf.Taxes),
			amount(cf.AfterTaxCashflow),
			amount(cf.LoanBalance),
			ratio(cf.CashOnCashReturn),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write year %d: %w", cf.Year, err)
		}
	}

	irr := "N/A"
	if r.IRR != nil {
		irr = ratio(*r.IRR)
	}
	summary := [][]string{
		{},
		{"Metric", "Value"},
		{"Loan Amount", amount(r.LoanAmount)},
		{"Total Equity Invested", amount(r.TotalEquityInvested)},
		{"Total Cash Returned", amount(r.TotalCashReturned)},
		{"Net Profit", amount(r.NetProfit)},
		{"IRR", irr},
		{"Equity Multiple", ratio(r.EquityMultiple)},
		{"Average Cash on Cash", ratio(r.AverageCashOnCash)},
		{"Total Tax Savings", amount(r.TotalTaxSavings)},
		{"Net Sale Proceeds After Tax", amount(r.Sale.NetProceedsAfterTax)},
	}
	if err := cw.WriteAll(summary); err != nil {
		return fmt.Errorf("cannot write csv summary: %w", err)
	}
	return nil
}
