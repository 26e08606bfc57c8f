// Package main is the entry point for selex, a multi-selection region
// transformer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/selex/internal/app"
	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/transform"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks command-line mistakes; the usage text was already printed.
var errUsage = errors.New("usage error")

type cliOptions struct {
	app.Options

	file        string
	mode        string
	pattern     string
	hasPattern  bool
	script      string
	interactive bool
	showVersion bool
	showHelp    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "selex %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	var m transform.Mode
	if opts.mode != "" {
		if m, err = transform.ParseMode(opts.mode); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	if err := loadDocument(&opts, stdin); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts.Input = stdin
	opts.Output = stdout
	opts.ErrOutput = stderr

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if opts.script != "" {
		if err := application.RunScript(ctx, opts.script); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	var result *handler.Result
	if opts.mode != "" {
		res := application.Execute(ctx, m, opts.pattern, opts.hasPattern)
		result = &res
	}

	if opts.interactive {
		if err := application.WatchConfig(); err != nil {
			application.Logger().Warn("config watch disabled: %v", err)
		}
		if result != nil {
			if err := application.Report(stdout, result); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
		}
		if err := app.NewREPL(application).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := application.Report(stdout, result); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if result != nil && result.IsError() {
		return 1
	}
	return 0
}

// loadDocument fills in the document text from -file, or from stdin when
// neither -text nor -file is given outside the REPL.
func loadDocument(opts *cliOptions, stdin io.Reader) error {
	switch {
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return err
		}
		opts.Text = string(data)
	case opts.Text == "" && !opts.interactive:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		opts.Text = string(data)
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("selex", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.file, "file", "", "Read the document from a file")
	fs.StringVar(&opts.file, "f", "", "Read the document from a file (shorthand)")
	fs.StringVar(&opts.Text, "text", "", "Document text")
	fs.StringVar(&opts.Regions, "regions", "", "Initial regions as anchor:active offset pairs, e.g. 0:5,8:12")
	fs.StringVar(&opts.Regions, "r", "", "Initial regions (shorthand)")
	fs.StringVar(&opts.mode, "mode", "", "Transformation to apply (select, split, lines, edges, clear, clear-main, keep, drop)")
	fs.StringVar(&opts.mode, "m", "", "Transformation to apply (shorthand)")
	fs.Func("pattern", "Pattern for select, split, keep and drop (prompts when omitted)", func(s string) error {
		opts.pattern = s
		opts.hasPattern = true
		return nil
	})
	fs.Func("p", "Pattern (shorthand)", func(s string) error {
		opts.pattern = s
		opts.hasPattern = true
		return nil
	})
	fs.StringVar(&opts.script, "script", "", "Run a Lua script against the session")
	fs.StringVar(&opts.script, "s", "", "Run a Lua script (shorthand)")
	fs.BoolVar(&opts.interactive, "interactive", false, "Start the command loop")
	fs.BoolVar(&opts.interactive, "i", false, "Start the command loop (shorthand)")
	fs.StringVar(&opts.Format, "format", "", "Output format (text, json, yaml)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "selex - multi-selection region transformer\n\n")
		fmt.Fprintf(stderr, "Usage: selex [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  selex -text 'abc123def456' -r 0:12 -m select -p '\\d+'\n")
		fmt.Fprintf(stderr, "  selex -f notes.txt -r 0:120 -m lines -format json\n")
		fmt.Fprintf(stderr, "  selex -f notes.txt -s tidy.lua\n")
		fmt.Fprintf(stderr, "  selex -f notes.txt -i\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.showHelp {
		fs.Usage()
		return opts, flag.ErrHelp
	}

	switch fs.NArg() {
	case 0:
	case 1:
		if opts.file != "" {
			fmt.Fprintf(stderr, "Error: both -file and a file argument given\n")
			return opts, errUsage
		}
		opts.file = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: only one document may be given\n")
		return opts, errUsage
	}

	if opts.file != "" && opts.Text != "" {
		fmt.Fprintf(stderr, "Error: -text and -file are mutually exclusive\n")
		return opts, errUsage
	}
	if opts.hasPattern && opts.mode == "" {
		fmt.Fprintf(stderr, "Error: -pattern requires -mode\n")
		return opts, errUsage
	}

	return opts, nil
}
