package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

type irrCmd struct {
	cashflows string
	discount  float64
}

func (*irrCmd) Name() string     { return "irr" }
func (*irrCmd) Synopsis() string { return "compute the IRR and NPV of a series of cashflows" }
func (*irrCmd) Usage() string {
	return `pf irr -cashflows <cf0,cf1,...> [-discount <percent>]

  Computes the internal rate of return of cashflows happening at the end of
  each period, the first one today. Outflows are negative.
`
}

func (c *irrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cashflows, "cashflows", "", "comma separated cashflows, the first one is today")
	f.Float64Var(&c.discount, "discount", 10, "discount rate in percent for the NPV")
}

func (c *irrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	cashflows, err := parseCashflows(c.cashflows)
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	if len(cashflows) < 2 {
		return invalid([]string{"At least two cashflows are required."})
	}
	printMarkdown(renderer.IRRMarkdown(cashflows, percent(c.discount), cur))
	return subcommands.ExitSuccess
}

// parseCashflows parses a comma separated list of amounts.
func parseCashflows(s string) ([]float64, error) {
	var cashflows []float64
	for i, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("cashflow #%d %q is not a number", i+1, field)
		}
		cashflows = append(cashflows, v)
	}
	return cashflows, nil
}
