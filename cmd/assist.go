package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/proforma/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand talking with the deal assistant.
type AssistCmd struct{}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string { return "Discuss the deal with an assistant backed by Gemini." }

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `pf assist [<question>...]

  Start an interactive session with an assistant about the deal in the
  assumptions file. The Gemini API key is read from GEMINI_API_KEY, a .env
  file in the current directory is loaded first.
`
}

// SetFlags sets the flags for the command.
func (*AssistCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	researcher := agent.NewResearcher()
	analyst := agent.NewAnalyst(*assumptionsFile, cur)
	a := agent.New(os.Stdout, os.Stdin, researcher, analyst)
	if !*rawMarkdown {
		a.Render = func(md string) string {
			out, err := glamour.Render(md, "auto")
			if err != nil {
				return md
			}
			return out
		}
	}

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
