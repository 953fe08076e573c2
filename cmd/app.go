// Package cmd implements the pf command line application: the pro-forma
// report and the standalone real-estate calculators.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/proforma"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var assumptionsFile = flag.String("assumptions-file", "deal.json", "Path to the property assumptions file (JSON or YAML)")
var defaultCurrency = flag.String("currency", proforma.DefaultCurrency, "Currency used to format amounts")
var rawMarkdown = flag.Bool("raw", false, "print markdown as is, without terminal rendering")

// Verbose enables the log output.
var Verbose = flag.Bool("v", false, "verbose, print logs to stderr")

// stdout is where subcommands print their report.
var stdout io.Writer = os.Stdout

// DecodeAssumptions decodes the property assumptions from path, or from the
// app assumptions file when path is empty.
func DecodeAssumptions(path string) (proforma.PropertyAssumptions, error) {
	if path == "" {
		path = *assumptionsFile
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return proforma.PropertyAssumptions{}, fmt.Errorf("assumptions file %q does not exist, create one with 'pf template': %w", path, err)
	}
	if err != nil {
		return proforma.PropertyAssumptions{}, err
	}
	defer f.Close()

	a, err := proforma.DecodeAssumptions(f, proforma.FormatOf(path))
	if err != nil {
		return a, fmt.Errorf("cannot read %q: %w", path, err)
	}
	log.Printf("loaded assumptions from %q", path)
	return a, nil
}

// currency returns the validated app currency.
func currency() (string, error) {
	cur := *defaultCurrency
	if err := proforma.ValidateCurrency(cur); err != nil {
		return "", err
	}
	return cur, nil
}

// printMarkdown renders md for the terminal and prints it.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Printf("cannot render markdown, printing it raw: %v", err)
		out = md
	}
	fmt.Fprint(stdout, out)
}

// failf reports an error to the user and returns status.
func failf(status subcommands.ExitStatus, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return status
}
