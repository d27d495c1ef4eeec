package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ysh86/pngme/commands"
	"github.com/ysh86/pngme/internal/config"
	"github.com/ysh86/pngme/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	inv, err := parseArgs(args, out)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		fmt.Fprintln(errOut, "run 'pngme --help' for usage")
		return 2
	}
	if inv == nil {
		return 0
	}

	cfg, err := config.Load(inv.configPath)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return 1
	}
	if inv.logLevel != "" {
		cfg.LogLevel = inv.logLevel
	}
	if inv.noColor {
		cfg.Color = log.ColorNever
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return 2
	}
	if err := log.Setup(level, errOut, cfg.Color); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return 2
	}

	req := inv.request
	if p, ok := req.(commands.Print); ok && !inv.verboseSet {
		p.Verbose = cfg.Verbose
		req = p
	}

	if err := commands.Run(req, out); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return 1
	}
	return 0
}
