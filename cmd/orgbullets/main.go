// Package main is the entry point for the orgbullets viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/orgbullets/internal/app"
	"github.com/dshills/orgbullets/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, dumpConfig := parseFlags()

	if dumpConfig {
		return runDumpConfig(opts.ConfigPath)
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runDumpConfig prints the effective configuration as JSON.
func runDumpConfig(configPath string) int {
	var opts config.Options
	if configPath != "" {
		var err error
		opts, err = config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	out, err := config.Dump(opts.Resolve())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(out)
	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var dumpConfig bool
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.json or .lua)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.DurationVar(&opts.Debounce, "debounce", 0, "Change coalescing interval (0 uses the built-in default)")
	flag.BoolVar(&dumpConfig, "dump-config", false, "Print the effective configuration and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orgbullets - decorative bullet overlays for outline files\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orgbullets [options] file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  orgbullets notes.org              View a file\n")
		fmt.Fprintf(os.Stderr, "  orgbullets -c conf.lua notes.org  View with a Lua config\n")
		fmt.Fprintf(os.Stderr, "  orgbullets -dump-config           Print effective config\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("orgbullets %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		opts.Path = flag.Arg(0)
	}
	return opts, dumpConfig
}
