// ABOUTME: CLI flag parsing using spf13/pflag
// ABOUTME: Supports --version, --debug, --verbose, --log-file, --read-timeout

package main

import (
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/mauromedda/bim-go/internal/config"
)

type cliArgs struct {
	version     bool
	debug       bool
	verbose     bool
	logFile     string
	readTimeout time.Duration

	// set records which value flags appeared on the command line.
	set map[string]bool
}

func parseFlags(argv []string, usage io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := pflag.NewFlagSet("bim", pflag.ContinueOnError)
	fs.SetOutput(usage)
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.debug, "debug", false, "Report the detected window size and exit")
	fs.BoolVarP(&args.verbose, "verbose", "v", false, "Log at debug level")
	fs.StringVar(&args.logFile, "log-file", "", "Write logs to this file (overrides "+config.EnvLogFile+")")
	fs.DurationVar(&args.readTimeout, "read-timeout", config.DefaultReadTimeout, "Key read timeout (overrides "+config.EnvReadTimeout+")")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}

	args.set = make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) { args.set[f.Name] = true })
	return args, nil
}

// overrides turns the flags that were given into config overrides.
func (a cliArgs) overrides() config.Overrides {
	o := config.Overrides{Verbose: a.verbose}
	if a.set["read-timeout"] {
		o.ReadTimeout = &a.readTimeout
	}
	if a.set["log-file"] {
		o.LogFile = &a.logFile
	}
	return o
}
