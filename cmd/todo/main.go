package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/idilsaglam/sqltodo/internal/cli"
	"github.com/idilsaglam/sqltodo/internal/config"
	"github.com/idilsaglam/sqltodo/internal/logging"
	"github.com/idilsaglam/sqltodo/internal/store/sqlitestore"
	"github.com/idilsaglam/sqltodo/internal/tui"
	"github.com/idilsaglam/sqltodo/internal/ui"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// run wires config, logging, output and storage, then hands the remaining
// args to the CLI runner. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv config.Env) int {
	// Root flags (apply to every subcommand)
	var flags config.Flags
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags.Bind(fs)

	if err := fs.Parse(args); err != nil {
		p := defaultPrinter(stdout, stderr)
		if errors.Is(err, flag.ErrHelp) {
			cli.PrintHelp(p)
			return cli.ExitOK
		}
		p.Fail(err.Error())
		fmt.Fprintln(stderr)
		cli.PrintHelp(p)
		return cli.ExitUsage
	}

	cfg, err := config.Load(fs, flags, getenv)
	if err != nil {
		defaultPrinter(stdout, stderr).Fail("config: " + err.Error())
		return cli.ExitError
	}

	logger, err := logging.New(stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		defaultPrinter(stdout, stderr).Fail("logging: " + err.Error())
		return cli.ExitError
	}
	logger.Debug("config loaded", "file", cfg.File, "db", cfg.DBPath, "theme", cfg.Theme)

	theme, _ := ui.ThemeByName(cfg.Theme)
	mode, _ := ui.ParseColorMode(cfg.Color)
	p := ui.NewPrinter(stdout, stderr, theme, mode)

	return cli.Run(ctx, fs.Args(), cli.Options{
		UI:  p,
		Log: logger,
		Open: func(ctx context.Context) (cli.Store, error) {
			path, err := cfg.DatabasePath()
			if err != nil {
				return nil, err
			}
			s, err := sqlitestore.Open(ctx, path, sqlitestore.WithLogger(logger))
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		Browse: func(ctx context.Context, repo cli.Repository, p *ui.Printer) error {
			return tui.Run(ctx, repo, p)
		},
	})
}

func defaultPrinter(stdout, stderr io.Writer) *ui.Printer {
	theme, _ := ui.ThemeByName(config.DefaultTheme)
	return ui.NewPrinter(stdout, stderr, theme, ui.ColorAuto)
}
