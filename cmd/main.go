package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

// Commands lists every pf subcommand, a main package registers them all.
var Commands = []subcommands.Command{
	&proformaCmd{},
	&templateCmd{},
	&watchCmd{},

	&amortizeCmd{},
	&dscrCmd{},
	&maxLoanCmd{},
	&capRateCmd{},
	&noiCmd{},
	&tvmCmd{},
	&irrCmd{},
	&calculatorsCmd{},

	&topicCmd{},
	&AssistCmd{},
}

// printJSON prints v as indented JSON. When query is set, only the values
// selected by this JSONPath expression are printed.
func printJSON(v any, query string) error {
	if query != "" {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("cannot encode json: %w", err)
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("cannot decode json: %w", err)
		}
		if v, err = jsonpath.Get(query, doc); err != nil {
			return fmt.Errorf("invalid query %q: %w", query, err)
		}
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode json: %w", err)
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}
