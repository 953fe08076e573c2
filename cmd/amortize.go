package cmd

import (
	"context"
	"flag"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/date"
	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

// amortizeCmd holds the flags for the 'amortize' subcommand.
type amortizeCmd struct {
	principal float64
	rate      float64
	years     float64
	frequency string
	extra     float64
	start     string
	yearly    bool
	json      bool
}

func (*amortizeCmd) Name() string     { return "amortize" }
func (*amortizeCmd) Synopsis() string { return "print the amortization schedule of a loan" }
func (*amortizeCmd) Usage() string {
	return `pf amortize -principal <amount> -rate <percent> [-years <n>] [-frequency <f>] [-extra <amount>] [-start <date>] [-yearly] [-json]

  Computes the payment-by-payment repayment plan of a fully amortizing loan.
  The first payment is due one period after the start date.

  Frequencies are monthly, biweekly, weekly, quarterly and annually.
`
}

func (c *amortizeCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "principal", 0, "loan amount")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent, 6.5 for 6.5%")
	f.Float64Var(&c.years, "years", 30, "amortization period in years")
	f.StringVar(&c.frequency, "frequency", "monthly", "payment frequency")
	f.Float64Var(&c.extra, "extra", 0, "extra principal paid with every payment")
	f.StringVar(&c.start, "start", date.Today().String(), "loan start date, YYYY-MM-DD")
	f.BoolVar(&c.yearly, "yearly", false, "summarize the schedule one row per year")
	f.BoolVar(&c.json, "json", false, "print the schedule as JSON")
}

func (c *amortizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	freq, err := date.ParseFrequency(c.frequency)
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	start, err := date.Parse(c.start)
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error parsing start date: %v", err)
	}

	loan := proforma.Loan{
		Principal:         c.principal,
		AnnualRate:        percent(c.rate),
		AmortizationYears: c.years,
		Frequency:         freq,
		ExtraPayment:      c.extra,
	}
	if msgs := proforma.ValidateLoan(loan); len(msgs) > 0 {
		return invalid(msgs)
	}

	s := proforma.Schedule(loan, start)

	if c.json {
		if err := printJSON(s, ""); err != nil {
			return failf(subcommands.ExitFailure, "Error: %v", err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ScheduleMarkdown(s, cur, c.yearly))
	return subcommands.ExitSuccess
}
