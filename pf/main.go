package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/etnz/proforma/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, cannot load .env: %v", err)
	}
	cmd.SetFlagsFromEnv()

	completion().Complete("pf")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}

	if name := flag.Arg(0); name != "" && !registered(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered reports whether name is a built-in subcommand.
func registered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// completion describes the pf command line for shell completion.
func completion() *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, sub := range cmd.Commands {
		set := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(set)
		c.Sub[sub.Name()] = &complete.Command{Flags: flagPredictors(set)}
	}
	return c
}

// flagPredictors predicts file names for file flags, nothing for the others.
func flagPredictors(set *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	set.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "f", "o", "assumptions-file":
			flags[f.Name] = predict.Files("*")
		case "frequency":
			flags[f.Name] = predict.Set{"monthly", "biweekly", "weekly", "quarterly", "annually"}
		case "solve":
			flags[f.Name] = predict.Set{"fv", "pv", "pmt", "n", "rate"}
		default:
			flags[f.Name] = predict.Nothing
		}
	})
	return flags
}
