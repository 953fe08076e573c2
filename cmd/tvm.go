package cmd

import (
	"context"
	"flag"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

type tvmCmd struct {
	solve string
	pv    float64
	fv    float64
	pmt   float64
	rate  float64
	n     float64
}

func (*tvmCmd) Name() string     { return "tvm" }
func (*tvmCmd) Synopsis() string { return "solve a time value of money problem" }
func (*tvmCmd) Usage() string {
	return `pf tvm -solve <fv|pv|pmt|n|rate> [-pv <amount>] [-fv <amount>] [-pmt <amount>] [-rate <percent>] [-n <periods>]

  Solves an ordinary annuity for one of its variables. The rate is per
  period and payments happen at the end of each period.
`
}

func (c *tvmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.solve, "solve", "fv", "variable to solve for: fv, pv, pmt, n or rate")
	f.Float64Var(&c.pv, "pv", 0, "present value")
	f.Float64Var(&c.fv, "fv", 0, "future value")
	f.Float64Var(&c.pmt, "pmt", 0, "payment at the end of every period")
	f.Float64Var(&c.rate, "rate", 0, "rate per period in percent")
	f.Float64Var(&c.n, "n", 0, "number of periods")
}

func (c *tvmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	solve, err := proforma.ParseTVMUnknown(c.solve)
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	in := proforma.TVMInputs{
		Solve:        solve,
		PresentValue: c.pv,
		FutureValue:  c.fv,
		Payment:      c.pmt,
		Rate:         percent(c.rate),
		Periods:      c.n,
	}
	if msgs := proforma.ValidateTVMInputs(in); len(msgs) > 0 {
		return invalid(msgs)
	}
	value, err := proforma.SolveTVM(in)
	if err != nil {
		return failf(subcommands.ExitFailure, "Error: %v", err)
	}
	printMarkdown(renderer.TVMMarkdown(in, value, cur))
	return subcommands.ExitSuccess
}
