package cmd

import (
	"context"
	"flag"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

type noiCmd struct {
	in           proforma.NOIInputs
	vacancy      float64
	expenseRatio float64
	json         bool
}

func (*noiCmd) Name() string     { return "noi" }
func (*noiCmd) Synopsis() string { return "compute the net operating income of a year" }
func (*noiCmd) Usage() string {
	return `pf noi -rent <amount> [-other <amount>] [-vacancy <percent>] (-expense-ratio <percent> | expense flags) [-json]

  Computes the effective gross income, the operating expenses and the net
  operating income of one year of operation.

  Expenses are either itemized, or a ratio of the effective gross income.
`
}

func (c *noiCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.in.PotentialRentalIncome, "rent", 0, "annual potential rental income")
	f.Float64Var(&c.in.OtherIncome, "other", 0, "annual other income")
	f.Float64Var(&c.vacancy, "vacancy", 0, "vacancy rate in percent of the potential rent")
	f.Float64Var(&c.expenseRatio, "expense-ratio", 0, "operating expenses in percent of the effective gross income, replaces the itemized expenses")
	f.Float64Var(&c.in.OperatingExpenses, "opex", 0, "general operating expenses")
	f.Float64Var(&c.in.PropertyTaxes, "taxes", 0, "property taxes")
	f.Float64Var(&c.in.Insurance, "insurance", 0, "insurance")
	f.Float64Var(&c.in.Maintenance, "maintenance", 0, "maintenance and repairs")
	f.Float64Var(&c.in.PropertyManagement, "management", 0, "property management fees")
	f.Float64Var(&c.in.Utilities, "utilities", 0, "utilities")
	f.Float64Var(&c.in.OtherExpenses, "other-expenses", 0, "other expenses")
	f.BoolVar(&c.json, "json", false, "print the breakdown as JSON")
}

func (c *noiCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	in := c.in
	in.VacancyRate = percent(c.vacancy)
	in.ExpenseRate = percent(c.expenseRatio)
	if msgs := proforma.ValidateNOIInputs(in); len(msgs) > 0 {
		return invalid(msgs)
	}

	r := proforma.CalculateNOI(in)
	if c.json {
		if err := printJSON(r, ""); err != nil {
			return failf(subcommands.ExitFailure, "Error: %v", err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.NOIMarkdown(r, cur))
	return subcommands.ExitSuccess
}
