package cmd

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

// proformaCmd holds the flags for the 'proforma' subcommand.
type proformaCmd struct {
	file  string
	name  string
	csv   bool
	json  bool
	query string
}

func (*proformaCmd) Name() string     { return "proforma" }
func (*proformaCmd) Synopsis() string { return "compute the pro-forma of a property investment" }
func (*proformaCmd) Usage() string {
	return `pf proforma [-f <file>] [-name <name>] [-csv | -json [-q <jsonpath>]]

  Projects the annual cashflows of the property described in the assumptions
  file, the sale at the end of the hold period, and the investment metrics
  (IRR, equity multiple, cash on cash).

  The report is printed as markdown, or as CSV or JSON for further processing.
  See 'pf topic assumptions' for the file format.
`
}

func (c *proformaCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "assumptions file, defaults to the -assumptions-file global flag")
	f.StringVar(&c.name, "name", "", "property name in the report title, defaults to the file name")
	f.BoolVar(&c.csv, "csv", false, "print the annual cashflows and metrics as CSV")
	f.BoolVar(&c.json, "json", false, "print the results as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON results, implies -json")
}

func (c *proformaCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.csv && (c.json || c.query != "") {
		return failf(subcommands.ExitUsageError, "Error: -csv cannot be combined with -json or -q")
	}
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	path := c.file
	if path == "" {
		path = *assumptionsFile
	}
	a, err := DecodeAssumptions(path)
	if err != nil {
		return failf(subcommands.ExitFailure, "Error loading assumptions: %v", err)
	}
	for _, msg := range proforma.ValidateAssumptions(a) {
		log.Printf("warning: %s", msg)
	}

	r := proforma.Calculate(a)

	switch {
	case c.csv:
		if err := proforma.EncodeCSV(stdout, r, cur); err != nil {
			return failf(subcommands.ExitFailure, "Error writing CSV: %v", err)
		}
	case c.json || c.query != "":
		if err := printJSON(r, c.query); err != nil {
			return failf(subcommands.ExitFailure, "Error: %v", err)
		}
	default:
		name := c.name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		printMarkdown(renderer.RenderProForma(renderer.NewProForma(name, a, r, cur)))
	}
	return subcommands.ExitSuccess
}
