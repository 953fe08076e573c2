package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/proforma"
	"github.com/etnz/proforma/recalc"
	"github.com/etnz/proforma/renderer"
	"github.com/google/subcommands"
)

// watchCmd recomputes the pro-forma every time the assumptions file changes.
type watchCmd struct {
	file     string
	interval time.Duration
	delay    time.Duration
	once     bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "recompute the pro-forma when the assumptions file changes" }
func (*watchCmd) Usage() string {
	return `pf watch [-f <file>] [-interval <duration>] [-delay <duration>] [-once]

  Watches the assumptions file and prints the pro-forma report again every
  time it is saved. Saves in quick succession are debounced: only the last
  one is computed.

  Stop with Ctrl+C.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "assumptions file, defaults to the -assumptions-file global flag")
	f.DurationVar(&c.interval, "interval", time.Second, "how often the file is checked for changes")
	f.DurationVar(&c.delay, "delay", recalc.DefaultDelay, "how long edits must settle before recomputing")
	f.BoolVar(&c.once, "once", false, "exit after the first report")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := currency()
	if err != nil {
		return failf(subcommands.ExitUsageError, "Error: %v", err)
	}
	if c.interval <= 0 {
		return failf(subcommands.ExitUsageError, "Error: -interval must be positive")
	}
	path := c.file
	if path == "" {
		path = *assumptionsFile
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rc := recalc.New(c.delay, recalc.Calculate, log.Default())
	defer rc.Close()

	results := make(chan recalc.Result)
	submitted := make(map[uint64]proforma.PropertyAssumptions)
	var modTime time.Time
	var printed uint64

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		if info, err := os.Stat(path); err != nil {
			log.Printf("cannot stat %q: %v", path, err)
		} else if !info.ModTime().Equal(modTime) {
			modTime = info.ModTime()
			a, err := DecodeAssumptions(path)
			if err != nil {
				if c.once {
					return failf(subcommands.ExitFailure, "Error loading assumptions: %v", err)
				}
				fmt.Fprintf(os.Stderr, "Error loading assumptions: %v\n", err)
			} else if g, err := rc.Submit(a); err == nil {
				submitted[g] = a
				go func() {
					res, err := rc.Wait(ctx)
					if err != nil {
						return
					}
					select {
					case results <- res:
					case <-ctx.Done():
					}
				}()
			}
		}

		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case res := <-results:
			if res.Generation <= printed {
				continue
			}
			printed = res.Generation
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "Error computing the pro-forma: %v\n", res.Err)
				continue
			}
			a := submitted[res.Generation]
			for g := range submitted {
				if g <= res.Generation {
					delete(submitted, g)
				}
			}
			printMarkdown(renderer.RenderProForma(renderer.NewProForma(name, a, res.Results, cur)))
			if c.once {
				return subcommands.ExitSuccess
			}
		case <-ticker.C:
		}
	}
}
