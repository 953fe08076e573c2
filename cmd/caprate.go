package cmd

import (
	"context"
	"flag"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

type capRateCmd struct {
	noi   float64
	price float64
	cap   float64
	json  bool
}

func (*capRateCmd) Name() string     { return "caprate" }
func (*capRateCmd) Synopsis() string { return "compute a capitalization rate or the value it implies" }
func (*capRateCmd) Usage() string {
	return `pf caprate -noi <amount> (-price <amount> | -cap <percent>) [-json]

  With -price, computes the cap rate of a property and places it in a
  market tier. With -cap, computes the value of the property at that cap rate.
`
}

func (c *capRateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.noi, "noi", 0, "annual net operating income")
	f.Float64Var(&c.price, "price", 0, "property value or purchase price")
	f.Float64Var(&c.cap, "cap", 0, "cap rate in percent, to value the property")
	f.BoolVar(&c.json, "json", false, "print the analysis as JSON")
}

func (c *capRateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	price := c.price
	if price == 0 && c.cap > 0 {
		price = proforma.ValueFromCapRate(c.noi, percent(c.cap))
	}
	if msgs := proforma.ValidateCapRateInputs(c.noi, price); len(msgs) > 0 {
		return invalid(msgs)
	}

	a := proforma.AnalyzeCapRate(c.noi, price)
	if c.json {
		if err := printJSON(a, ""); err != nil {
			return failf(subcommands.ExitFailure, "Error: %v", err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.CapRateMarkdown(c.noi, a, cur))
	return subcommands.ExitSuccess
}
