// ABOUTME: CLI entry point for bim with terminal restore on every exit path
// ABOUTME: Parses flags, loads settings, opens the terminal session and runs the editor loop

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/mauromedda/bim-go/internal/config"
	"github.com/mauromedda/bim-go/internal/editor"
	"github.com/mauromedda/bim-go/internal/log"
	"github.com/mauromedda/bim-go/pkg/tui"
	"github.com/mauromedda/bim-go/pkg/tui/terminal"
)

var version = "0.0.1"

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin, stdout, stderr *os.File) int {
	args, err := parseFlags(argv, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		report(stderr, useColor(stderr), err)
		return exitUsage
	}

	if args.version {
		fmt.Fprintf(stdout, "bim %s\n", version)
		return exitOK
	}

	settings, err := config.Load(args.overrides())
	if err != nil {
		report(stderr, useColor(stderr), err)
		return exitUsage
	}

	closeLog, err := setupLogging(settings)
	if err != nil {
		report(stderr, useColor(stderr), err)
		return exitFatal
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), terminal.TerminationSignals()...)
	defer stop()

	if args.debug {
		err = debugRun(settings, stdin, stdout)
	} else {
		err = edit(ctx, settings, stdin, stdout)
	}
	if err != nil {
		log.Error("%v", err)
		report(stderr, useColor(stderr), err)
		return exitFatal
	}
	return exitOK
}

// edit runs the editor until quit. The session is closed before edit
// returns, so any error can be reported on a restored terminal.
func edit(ctx context.Context, settings config.Settings, stdin, stdout *os.File) error {
	s, err := terminal.Open(stdin, stdout, settings.ReadTimeout)
	if err != nil {
		return err
	}
	defer s.Close()
	defer terminal.RestoreOnPanic(s)

	if err := s.EnableRaw(); err != nil {
		return err
	}
	size, _, err := s.Probe()
	if err != nil {
		return err
	}

	resize, stopResize := terminal.NotifyResize()
	defer stopResize()

	ed := editor.New(editor.Config{
		Keys:     s.Keys(),
		Renderer: tui.NewRenderer(s, banner()),
		Size:     size,
		Resize:   resize,
		Reprobe:  s.Probe,
		Closer:   s,
	})
	return ed.Run(ctx)
}

// debugRun probes the window in raw mode and prints the result after the
// terminal has been restored.
func debugRun(settings config.Settings, stdin, stdout *os.File) error {
	s, err := terminal.Open(stdin, stdout, settings.ReadTimeout)
	if err != nil {
		return err
	}
	size, method, err := probeOnce(s)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, debugReport(size, method))
	return nil
}

func probeOnce(s *terminal.Session) (terminal.Size, string, error) {
	defer terminal.RestoreOnPanic(s)
	if err := s.EnableRaw(); err != nil {
		return terminal.Size{}, "", err
	}
	return s.Probe()
}

func debugReport(size terminal.Size, method string) string {
	return fmt.Sprintf("%s (%s)", size, method)
}

func banner() string {
	return "bim editor -- version " + version
}

// setupLogging applies the log level and opens the log file, if any.
func setupLogging(s config.Settings) (func(), error) {
	log.SetLevel(s.LogLevel)
	if s.LogFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := log.OpenFile(s.LogFile)
	if err != nil {
		return nil, err
	}
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}

func useColor(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// report prints a fatal error. Cancellation by signal gets a short message.
func report(w io.Writer, color bool, err error) {
	prefix := "bim: "
	if color {
		prefix = aurora.Red(prefix).Bold().String()
	}
	msg := err.Error()
	if errors.Is(err, context.Canceled) {
		msg = "terminated by signal"
	}
	fmt.Fprintf(w, "%s%s\n", prefix, msg)
}
