// Package agent implements `pf assist`: a conversation about the user's deal
// where a facilitator model consults a market researcher and an analyst
// running the pf calculators.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// prompt is printed before each user input.
const prompt = "assist> "

// exits are the inputs ending the conversation.
var exits = []string{"bye", "exit", "quit"}

// Agent runs the conversation between the user and the facilitator.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Render formats the answers before they are printed, nil prints them as is.
	Render func(markdown string) string
}

// New returns an Agent writing to w and reading the user's input from r.
// Chat sessions are created on Start.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start creates the chat sessions of the experts and the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range append(slices.Clone(a.Experts), a.Facilitator) {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return nil
}

// Run answers prompts first, then the user's input until one of the exit
// words or the end of the input. Sessions are started if needed.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.w, "Welcome to pf assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		input, err := a.next(&prompts)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		if slices.Contains(exits, strings.ToLower(input)) {
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, a.render(answer))
	}
}

// next returns the next pending prompt, echoed as if typed, or the next line
// of user input.
func (a *Agent) next(prompts *[]string) (string, error) {
	if len(*prompts) > 0 {
		input := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		if input != "" {
			fmt.Fprintln(a.w, input)
		}
		return input, nil
	}
	line, err := a.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *Agent) render(md string) string {
	if a.Render == nil {
		return md
	}
	return a.Render(md)
}
