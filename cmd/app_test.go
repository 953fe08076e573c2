package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// run executes c with args and returns what it printed, markdown left raw.
func run(t *testing.T, c subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var out bytes.Buffer
	oldStdout, oldRaw := stdout, *rawMarkdown
	stdout, *rawMarkdown = &out, true
	defer func() { stdout, *rawMarkdown = oldStdout, oldRaw }()

	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: cannot parse %q: %v", c.Name(), args, err)
	}
	status := c.Execute(context.Background(), f)
	return out.String(), status
}

// newDeal writes the sample assumptions in a temporary file named name.
func newDeal(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if _, status := run(t, &templateCmd{}, "-o", path); status != subcommands.ExitSuccess {
		t.Fatalf("template -o %s = %v, want success", path, status)
	}
	return path
}

func TestTemplateCmd(t *testing.T) {
	path := newDeal(t, "deal.json")
	if _, status := run(t, &templateCmd{}, "-o", path); status != subcommands.ExitFailure {
		t.Errorf("template over an existing file = %v, want failure", status)
	}
	if _, status := run(t, &templateCmd{}, "-o", path, "-force"); status != subcommands.ExitSuccess {
		t.Errorf("template -force = %v, want success", status)
	}
}

func TestProFormaCmd(t *testing.T) {
	for _, name := range []string{"deal.json", "deal.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := newDeal(t, name)

			out, status := run(t, &proformaCmd{}, "-f", path)
			if status != subcommands.ExitSuccess {
				t.Fatalf("proforma = %v, want success", status)
			}
			for _, want := range []string{"# deal\n", "70.00% LTV loan", "## Annual Cashflows", "## Sale at the End of Year 5"} {
				if !strings.Contains(out, want) {
					t.Errorf("proforma output does not contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestProFormaCmd_Formats(t *testing.T) {
	path := newDeal(t, "deal.json")

	out, status := run(t, &proformaCmd{}, "-f", path, "-name", "Main Street")
	if status != subcommands.ExitSuccess || !strings.HasPrefix(out, "# Main Street\n") {
		t.Errorf("proforma -name = %v:\n%s", status, out)
	}

	out, status = run(t, &proformaCmd{}, "-f", path, "-csv")
	if status != subcommands.ExitSuccess || !strings.HasPrefix(out, "Year,Effective Gross Income,") {
		t.Errorf("proforma -csv = %v:\n%s", status, out)
	}

	out, status = run(t, &proformaCmd{}, "-f", path, "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("proforma -json = %v, want success", status)
	}
	var results map[string]any
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("proforma -json is not json: %v\n%s", err, out)
	}
	if flows, _ := results["annualCashflows"].([]any); len(flows) != 5 {
		t.Errorf("proforma -json has %d annual cashflows, want 5", len(flows))
	}
	if _, ok := results["irr"].(float64); !ok {
		t.Errorf("proforma -json irr = %v, want a number", results["irr"])
	}

	out, status = run(t, &proformaCmd{}, "-f", path, "-q", "$.loanAmount")
	if status != subcommands.ExitSuccess || strings.TrimSpace(out) != "700000" {
		t.Errorf("proforma -q $.loanAmount = %v, %q, want 700000", status, out)
	}

	if _, status := run(t, &proformaCmd{}, "-f", path, "-csv", "-json"); status != subcommands.ExitUsageError {
		t.Errorf("proforma -csv -json = %v, want a usage error", status)
	}
	if _, status := run(t, &proformaCmd{}, "-f", filepath.Join(t.TempDir(), "missing.json")); status != subcommands.ExitFailure {
		t.Errorf("proforma on a missing file = %v, want failure", status)
	}
}

func TestCalculatorCmds(t *testing.T) {
	tests := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want string // substring of the output
	}{
		{"amortize", &amortizeCmd{}, []string{"-principal", "100000", "-rate", "6", "-years", "1", "-start", "2025-01-01"}, "| 12 | 2026-01-01 |"},
		{"amortize yearly", &amortizeCmd{}, []string{"-principal", "100000", "-rate", "6", "-years", "2", "-start", "2025-01-01", "-yearly"}, "## Yearly Schedule"},
		{"amortize json", &amortizeCmd{}, []string{"-principal", "1000", "-rate", "0", "-years", "1", "-frequency", "quarterly", "-start", "2025-01-01", "-json"}, `"frequency": "quarterly"`},
		{"dscr", &dscrCmd{}, []string{"-noi", "150000", "-debt-service", "100000"}, "| DSCR | **1.50x** |"},
		{"dscr no debt", &dscrCmd{}, []string{"-noi", "150000", "-debt-service", "0"}, "**∞**"},
		{"dscr json", &dscrCmd{}, []string{"-noi", "150000", "-debt-service", "0", "-json"}, `"dscr": null`},
		{"dscr loan", &dscrCmd{}, []string{"-noi", "100000", "-loan", "1000000", "-rate", "6"}, "| Risk Level | Moderate |"},
		{"maxloan", &maxLoanCmd{}, []string{"-noi", "120000", "-dscr", "1.2", "-rate", "0", "-years", "10"}, "**$1,000,000.00**"},
		{"caprate", &capRateCmd{}, []string{"-noi", "50000", "-price", "1000000"}, "| Cap Rate | **5.00%** |"},
		{"caprate value", &capRateCmd{}, []string{"-noi", "50000", "-cap", "5"}, "| Property Value | $1,000,000.00 |"},
		{"noi", &noiCmd{}, []string{"-rent", "100000", "-vacancy", "5", "-expense-ratio", "40"}, "**$57,000.00**"},
		{"noi itemized", &noiCmd{}, []string{"-rent", "100000", "-taxes", "10000", "-insurance", "2000"}, "**$88,000.00**"},
		{"tvm", &tvmCmd{}, []string{"-solve", "fv", "-pv", "1000", "-rate", "5", "-n", "10"}, "**$1,628.89**"},
		{"irr", &irrCmd{}, []string{"-cashflows", "-1000, 1100"}, "IRR: **10.00%**"},
		{"calculators", &calculatorsCmd{}, nil, "| `amortize` |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, status := run(t, tt.cmd, tt.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("%s %q = %v, want success", tt.cmd.Name(), tt.args, status)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s %q output does not contain %q:\n%s", tt.cmd.Name(), tt.args, tt.want, out)
			}
		})
	}
}

func TestCalculatorCmds_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  subcommands.Command
		args []string
	}{
		{"amortize no principal", &amortizeCmd{}, []string{"-rate", "6"}},
		{"amortize bad frequency", &amortizeCmd{}, []string{"-principal", "1000", "-frequency", "hourly"}},
		{"amortize bad date", &amortizeCmd{}, []string{"-principal", "1000", "-start", "yesterday-ish"}},
		{"amortize infinite years", &amortizeCmd{}, []string{"-principal", "1000", "-years", "inf"}},
		{"amortize too many years", &amortizeCmd{}, []string{"-principal", "1000", "-years", "1e9"}},
		{"maxloan infinite years", &maxLoanCmd{}, []string{"-noi", "100000", "-rate", "6", "-years", "inf"}},
		{"dscr no debt service", &dscrCmd{}, []string{"-noi", "100000"}},
		{"dscr no noi", &dscrCmd{}, []string{"-debt-service", "1000"}},
		{"maxloan no noi", &maxLoanCmd{}, []string{"-rate", "6"}},
		{"caprate no price", &capRateCmd{}, []string{"-noi", "50000"}},
		{"noi negative", &noiCmd{}, []string{"-rent", "-1"}},
		{"tvm unknown", &tvmCmd{}, []string{"-solve", "magic"}},
		{"tvm no periods", &tvmCmd{}, []string{"-solve", "fv", "-pv", "1000"}},
		{"irr not a number", &irrCmd{}, []string{"-cashflows", "-1000,abc"}},
		{"irr single", &irrCmd{}, []string{"-cashflows", "-1000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, status := run(t, tt.cmd, tt.args...); status != subcommands.ExitUsageError {
				t.Errorf("%s %q = %v, want a usage error", tt.cmd.Name(), tt.args, status)
			}
		})
	}
}

func TestWatchCmd_Once(t *testing.T) {
	path := newDeal(t, "deal.json")
	out, status := run(t, &watchCmd{}, "-f", path, "-once", "-interval", "10ms", "-delay", "1ms")
	if status != subcommands.ExitSuccess {
		t.Fatalf("watch -once = %v, want success", status)
	}
	if !strings.Contains(out, "## Annual Cashflows") {
		t.Errorf("watch -once output does not contain the report:\n%s", out)
	}
}

func TestParseCashflows(t *testing.T) {
	got, err := parseCashflows(" -100, 50,,60 ")
	if err != nil {
		t.Fatalf("parseCashflows() error = %v", err)
	}
	want := []float64{-100, 50, 60}
	if len(got) != len(want) {
		t.Fatalf("parseCashflows() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseCashflows()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
