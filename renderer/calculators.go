package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/proforma"
)

// ScheduleMarkdown renders an amortization schedule. With yearly set, the
// payments are summarized one row per year of payments.
func ScheduleMarkdown(s proforma.AmortizationSchedule, currency string, yearly bool) string {
	var b strings.Builder
	m := func(v float64) proforma.Money { return proforma.M(v, currency) }
	loan := s.Loan

	fmt.Fprintf(&b, "# Amortization of %s\n\n", m(loan.Principal))
	fmt.Fprintf(&b, "%s over %g %s, %s payments.\n\n", proforma.Pct(loan.AnnualRate), loan.AmortizationYears, plural(int(loan.AmortizationYears), "year"), loan.Frequency)

	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Periodic Payment | %s |\n", m(s.PeriodicPayment))
	if loan.ExtraPayment > 0 {
		fmt.Fprintf(&b, "| Extra Payment | %s |\n", m(loan.ExtraPayment))
	}
	fmt.Fprintf(&b, "| Number of Payments | %d |\n", len(s.Payments))
	fmt.Fprintf(&b, "| Total Paid | %s |\n", m(s.TotalPaid))
	fmt.Fprintf(&b, "| Total Interest | %s |\n", m(s.TotalInterest))
	if !s.PayoffDate.IsZero() {
		fmt.Fprintf(&b, "| Payoff Date | %s |\n", s.PayoffDate)
	}
	if s.InterestSaved > 0 {
		fmt.Fprintf(&b, "| Interest Saved | %s |\n", m(s.InterestSaved))
	}
	fmt.Fprintln(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		if yearly {
			writeYearlySchedule(w, s, m)
		} else {
			writePaymentSchedule(w, s, m)
		}
		return len(s.Payments) > 0
	})
	return b.String()
}

func writePaymentSchedule(w io.Writer, s proforma.AmortizationSchedule, m func(float64) proforma.Money) {
	fmt.Fprint(w, "## Schedule\n\n")
	fmt.Fprintln(w, "| # | Date | Payment | Interest | Principal | Balance |")
	fmt.Fprintln(w, "|---:|:---|---:|---:|---:|---:|")
	for _, p := range s.Payments {
		fmt.Fprintf(w, "| %d | %s | %s | %s | %s | %s |\n", p.Number, p.Date, m(p.Payment), m(p.Interest), m(p.Principal), m(p.Balance))
	}
}

func writeYearlySchedule(w io.Writer, s proforma.AmortizationSchedule, m func(float64) proforma.Money) {
	perYear := s.Loan.Frequency.PerYear()
	fmt.Fprint(w, "## Yearly Schedule\n\n")
	fmt.Fprintln(w, "| Year | Payments | Interest | Principal | Balance |")
	fmt.Fprintln(w, "|---:|---:|---:|---:|---:|")
	for start := 0; start < len(s.Payments); start += perYear {
		year := s.Payments[start:min(start+perYear, len(s.Payments))]
		var paid, interest, principal float64
		for _, p := range year {
			paid += p.Payment
			interest += p.Interest
			principal += p.Principal
		}
		fmt.Fprintf(w, "| %d | %s | %s | %s | %s |\n", start/perYear+1, m(paid), m(interest), m(principal), m(year[len(year)-1].Balance))
	}
}

// DSCRMarkdown renders a DSCR analysis.
func DSCRMarkdown(noi float64, a proforma.DSCRAnalysis, currency string) string {
	var b strings.Builder
	m := func(v float64) proforma.Money { return proforma.M(v, currency) }

	fmt.Fprint(&b, "# Debt Service Coverage Ratio\n\n")
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Net Operating Income | %s |\n", m(noi))
	fmt.Fprintf(&b, "| Annual Debt Service | %s |\n", m(a.AnnualDebtService))
	fmt.Fprintf(&b, "| Monthly Payment | %s |\n", m(a.MonthlyPayment))
	fmt.Fprintf(&b, "| DSCR | **%s** |\n", proforma.Multiple(a.DSCR))
	fmt.Fprintf(&b, "| Risk Level | %s |\n", a.RiskLevel)
	healthy := "no"
	if a.IsHealthy {
		healthy = "yes"
	}
	fmt.Fprintf(&b, "| Meets Lender Requirements | %s |\n\n", healthy)
	fmt.Fprintf(&b, "%s\n", a.Interpretation)
	return b.String()
}

// MaxLoanMarkdown renders the sizing of a loan at a target DSCR.
func MaxLoanMarkdown(noi, targetDSCR, rate, years, loan, payment float64, currency string) string {
	var b strings.Builder
	m := func(v float64) proforma.Money { return proforma.M(v, currency) }

	fmt.Fprint(&b, "# Maximum Loan\n\n")
	fmt.Fprintf(&b, "Largest loan at %s over %g %s keeping the DSCR at %s.\n\n", proforma.Pct(rate), years, plural(int(years), "year"), proforma.Multiple(targetDSCR))
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Net Operating Income | %s |\n", m(noi))
	fmt.Fprintf(&b, "| Maximum Loan | **%s** |\n", m(loan))
	fmt.Fprintf(&b, "| Periodic Payment | %s |\n", m(payment))
	return b.String()
}

// CapRateMarkdown renders a cap rate analysis.
func CapRateMarkdown(noi float64, a proforma.CapRateAnalysis, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Capitalization Rate\n\n")
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Net Operating Income | %s |\n", proforma.M(noi, currency))
	fmt.Fprintf(&b, "| Property Value | %s |\n", proforma.M(a.Value, currency))
	fmt.Fprintf(&b, "| Cap Rate | **%s** |\n", proforma.Pct(a.CapRate))
	fmt.Fprintf(&b, "| Tier | %s |\n\n", a.Tier)
	fmt.Fprintf(&b, "%s\n", a.Interpretation)
	return b.String()
}

// NOIMarkdown renders a net operating income breakdown.
func NOIMarkdown(r proforma.NOIResult, currency string) string {
	var b strings.Builder
	m := func(v float64) proforma.Money { return proforma.M(v, currency) }

	fmt.Fprint(&b, "# Net Operating Income\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Gross Potential Income | %s |\n", m(r.GrossPotentialIncome))
	fmt.Fprintf(&b, "| Vacancy Loss | %s |\n", m(-r.VacancyLoss))
	fmt.Fprintf(&b, "| Effective Gross Income | %s |\n", m(r.EffectiveGrossIncome))
	fmt.Fprintf(&b, "| Operating Expenses | %s |\n", m(-r.OperatingExpenses))
	fmt.Fprintf(&b, "| **Net Operating Income** | **%s** |\n", m(r.NOI))
	fmt.Fprintf(&b, "| Expense Ratio | %s |\n", proforma.Pct(r.ExpenseRatio))
	return b.String()
}

// TVMMarkdown renders the solution of a time value of money problem.
func TVMMarkdown(in proforma.TVMInputs, value float64, currency string) string {
	var b strings.Builder
	m := func(v float64) proforma.Money { return proforma.M(v, currency) }

	fmt.Fprint(&b, "# Time Value of Money\n\n")
	fmt.Fprintln(&b, "| Variable | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	row := func(u proforma.TVMUnknown, label, v string) {
		if u == in.Solve {
			v = "**" + v + "**"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", label, v)
	}
	pv, fv, pmt, rate, n := in.PresentValue, in.FutureValue, in.Payment, in.Rate, in.Periods
	switch in.Solve {
	case proforma.SolveFutureValue:
		fv = value
	case proforma.SolvePresentValue:
		pv = value
	case proforma.SolvePayment:
		pmt = value
	case proforma.SolvePeriods:
		n = value
	case proforma.SolveRate:
		rate = value
	}
	row(proforma.SolvePresentValue, "Present Value", m(pv).String())
	row(proforma.SolveFutureValue, "Future Value", m(fv).String())
	row(proforma.SolvePayment, "Payment", m(pmt).String())
	row(proforma.SolveRate, "Rate per Period", proforma.Pct(rate).String())
	row(proforma.SolvePeriods, "Periods", fmt.Sprintf("%.2f", n))
	return b.String()
}

// IRRMarkdown renders the IRR of cashflows and their NPV at discountRate.
func IRRMarkdown(cashflows []float64, discountRate float64, currency string) string {
	var b strings.Builder
	m := func(v float64) proforma.Money { return proforma.M(v, currency) }

	fmt.Fprint(&b, "# Internal Rate of Return\n\n")
	fmt.Fprintln(&b, "| Period | Cashflow |")
	fmt.Fprintln(&b, "|---:|---:|")
	for t, cf := range cashflows {
		fmt.Fprintf(&b, "| %d | %s |\n", t, m(cf).SignedString())
	}
	fmt.Fprintln(&b)

	if irr, ok := proforma.IRR(cashflows); ok {
		fmt.Fprintf(&b, "IRR: **%s**\n\n", proforma.Pct(irr))
	} else {
		fmt.Fprint(&b, "IRR: **N/A** (the cashflows never change sign between -99% and +1000%)\n\n")
	}
	fmt.Fprintf(&b, "NPV at %s: %s\n", proforma.Pct(discountRate), m(proforma.NPV(discountRate, cashflows)))
	return b.String()
}

// CatalogMarkdown renders the list of calculators.
func CatalogMarkdown(c *proforma.Catalog) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Calculators\n\n")
	fmt.Fprintln(&b, "| Command | Name | Description |")
	fmt.Fprintln(&b, "|:---|:---|:---|")
	for _, calc := range c.All() {
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", calc.ID, calc.Name, calc.Description)
	}
	return b.String()
}

// ValidationMarkdown renders validation messages as a list, or nothing.
func ValidationMarkdown(msgs []string) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "**Invalid inputs:**\n\n")
		for _, msg := range msgs {
			fmt.Fprintf(w, "- %s\n", msg)
		}
		return len(msgs) > 0
	})
	return b.String()
}
