package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/date"
	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

// dscrCmd holds the flags for the 'dscr' subcommand.
type dscrCmd struct {
	noi         float64
	debtService float64
	loan        float64
	rate        float64
	years       float64
	term        float64
	json        bool
}

func (*dscrCmd) Name() string     { return "dscr" }
func (*dscrCmd) Synopsis() string { return "compute the debt service coverage ratio" }
func (*dscrCmd) Usage() string {
	return `pf dscr -noi <amount> (-debt-service <amount> | -loan <amount> -rate <percent> [-years <n>]) [-json]

  Computes how many times the net operating income covers the annual debt
  service, and the risk level lenders associate with it.

  The debt service is either given, or derived from the monthly payment of
  the loan.
`
}

func (c *dscrCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.noi, "noi", 0, "annual net operating income")
	f.Float64Var(&c.debtService, "debt-service", 0, "annual debt service, takes precedence over the loan")
	f.Float64Var(&c.loan, "loan", 0, "loan amount")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent")
	f.Float64Var(&c.years, "years", 30, "amortization period in years")
	f.Float64Var(&c.term, "term", 0, "loan term in years, optional")
	f.BoolVar(&c.json, "json", false, "print the analysis as JSON")
}

func (c *dscrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}

	in := proforma.DSCRInputs{NOI: c.noi}
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "debt-service" {
			ds := c.debtService
			in.AnnualDebtService = &ds
		}
	})
	if c.loan != 0 {
		in.Loan = &proforma.DSCRLoan{
			Amount:            c.loan,
			InterestRate:      percent(c.rate),
			AmortizationYears: c.years,
			TermYears:         c.term,
		}
	}
	if msgs := proforma.ValidateDSCRInputs(in); len(msgs) > 0 {
		return invalid(msgs)
	}

	a, err := proforma.AnalyzeDSCR(in)
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	if c.json {
		if err := printJSON(a, ""); err != nil {
			return failf(subcommands.ExitFailure, "Error: %v", err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.DSCRMarkdown(c.noi, a, cur))
	return subcommands.ExitSuccess
}

// maxLoanCmd holds the flags for the 'maxloan' subcommand.
type maxLoanCmd struct {
	noi       float64
	dscr      float64
	rate      float64
	years     float64
	frequency string
}

func (*maxLoanCmd) Name() string     { return "maxloan" }
func (*maxLoanCmd) Synopsis() string { return "size the largest loan at a target DSCR" }
func (*maxLoanCmd) Usage() string {
	return `pf maxloan -noi <amount> -rate <percent> [-dscr <ratio>] [-years <n>] [-frequency <f>]

  Computes the largest loan whose debt service keeps the debt service
  coverage ratio at the target, the way lenders size income property loans.
`
}

func (c *maxLoanCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.noi, "noi", 0, "annual net operating income")
	f.Float64Var(&c.dscr, "dscr", 1.25, "target debt service coverage ratio")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent")
	f.Float64Var(&c.years, "years", 30, "amortization period in years")
	f.StringVar(&c.frequency, "frequency", "monthly", "payment frequency")
}

func (c *maxLoanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	freq, err := date.ParseFrequency(c.frequency)
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}

	var msgs []string
	if c.noi <= 0 {
		msgs = append(msgs, "Net operating income must be greater than zero.")
	}
	if c.dscr <= 0 {
		msgs = append(msgs, "Target DSCR must be greater than zero.")
	}
	if c.rate < 0 {
		msgs = append(msgs, "Interest rate cannot be negative.")
	}
	if !(c.years > 0 && c.years <= proforma.MaxAmortizationYears) {
		msgs = append(msgs, fmt.Sprintf("Amortization period must be between 0 and %d years.", proforma.MaxAmortizationYears))
	}
	if len(msgs) > 0 {
		return invalid(msgs)
	}

	rate := percent(c.rate)
	loan := proforma.MaxLoanForDSCR(c.noi, c.dscr, rate, c.years, freq.PerYear())
	payment := proforma.PeriodicPayment(loan, rate, c.years, freq.PerYear())
	printMarkdown(renderer.MaxLoanMarkdown(c.noi, c.dscr, rate, c.years, loan, payment, cur))
	return subcommands.ExitSuccess
}
