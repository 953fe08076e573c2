package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/proforma"
	"github.com/google/subcommands"
)

type templateCmd struct {
	output string
	force  bool
}

func (*templateCmd) Name() string     { return "template" }
func (*templateCmd) Synopsis() string { return "write a sample assumptions file" }
func (*templateCmd) Usage() string {
	return `pf template [-o <file>] [-force]

  Writes a sample five year leveraged deal to start modeling from.
  The file is YAML when its name ends with .yaml or .yml, JSON otherwise.
`
}

func (c *templateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file, defaults to the -assumptions-file global flag")
	f.BoolVar(&c.force, "force", false, "overwrite an existing file")
}

func (c *templateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := c.output
	if path == "" {
		path = *assumptionsFile
	}
	if _, err := os.Stat(path); err == nil && !c.force {
		return failf(subcommands.ExitFailure, "Error: %q already exists, use -force to overwrite it", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return failf(subcommands.ExitFailure, "Error: %v", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return failf(subcommands.ExitFailure, "Error creating %q: %v", path, err)
	}
	defer out.Close()

	if err := proforma.EncodeAssumptions(out, proforma.SampleAssumptions(), proforma.FormatOf(path)); err != nil {
		return failf(subcommands.ExitFailure, "Error writing %q: %v", path, err)
	}
	fmt.Fprintf(stdout, "Sample assumptions written to %s\n", path)
	return subcommands.ExitSuccess
}
