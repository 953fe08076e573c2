package cmd

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
)

// Environment variables carrying the global flags.
const (
	EnvAssumptionsFile = "PF_ASSUMPTIONS_FILE"
	EnvCurrency        = "PF_CURRENCY"
	EnvVerbose         = "PF_VERBOSE"
)

// EnvFlags maps the global flags to their environment variable. pf reads
// them as flag defaults and passes them on to its extensions.
var EnvFlags = map[string]string{
	"assumptions-file": EnvAssumptionsFile,
	"currency":         EnvCurrency,
	"v":                EnvVerbose,
}

// SetFlagsFromEnv sets the global flags from their environment variable,
// before the command line is parsed.
func SetFlagsFromEnv() {
	for name, env := range EnvFlags {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if err := flag.Set(name, v); err != nil {
			log.Printf("ignoring %s=%q: %v", env, v, err)
		}
	}
}

// RunExtension runs the pf-<subcommand> binary found in the PATH with args
// and the global flags in its environment.
//
// found is false when there is no such binary, code is the extension's exit
// code.
func RunExtension(subcommand string, args []string) (found bool, code int) {
	name := "pf-" + subcommand
	path, err := exec.LookPath(name)
	if err != nil {
		log.Printf("no extension %q: %v", name, err)
		return false, 0
	}

	ext := exec.Command(path, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, os.Stdout, os.Stderr
	ext.Env = os.Environ()
	for flagName, env := range EnvFlags {
		ext.Env = append(ext.Env, env+"="+flag.Lookup(flagName).Value.String())
	}

	err = ext.Run()
	var exit *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		return true, exit.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error running extension %q: %v\n", name, err)
		return true, 1
	}
}
