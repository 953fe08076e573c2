package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

type calculatorsCmd struct{}

func (*calculatorsCmd) Name() string     { return "calculators" }
func (*calculatorsCmd) Synopsis() string { return "list the available calculators" }
func (*calculatorsCmd) Usage() string {
	return `pf calculators

  Lists the calculators, each one is a pf subcommand.
`
}

func (*calculatorsCmd) SetFlags(f *flag.FlagSet) {}

func (*calculatorsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.CatalogMarkdown(proforma.DefaultCatalog()))
	return subcommands.ExitSuccess
}

// percent converts a flag value in percent into a fraction.
func percent(v float64) float64 { return v / 100 }

// invalid reports validation messages and returns a usage error.
func invalid(msgs []string) subcommands.ExitStatus {
	fmt.Fprint(os.Stderr, renderer.ValidationMarkdown(msgs))
	return subcommands.ExitUsageError
}
