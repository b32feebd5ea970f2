// Package main is the entry point for the hotkeys terminal tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dshills/hotkeys/internal/app"
	"github.com/dshills/hotkeys/internal/backend"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "hotkeys: %v\n", err)
		return 1
	}
	return 0
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "hotkeys",
		Usage:     "bind keyboard shortcuts to actions",
		Version:   fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit codes are handled by run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file",
				Sources: cli.EnvVars("HOTKEYS_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			checkCommand(),
			keysCommand(),
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "dispatch terminal key presses to the loaded keymaps",
		ArgsUsage: "[keymap or script files...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "scope",
				Usage: "initial scope",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := baseOptions(cmd)
			opts.Scope = cmd.String("scope")
			splitFiles(cmd.Args().Slice(), &opts)

			application, err := app.New(opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			term, err := backend.NewTerminal()
			if err != nil {
				return fmt.Errorf("create terminal: %w", err)
			}
			application.SetBackend(term)
			return application.Run(ctx)
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "load keymaps and scripts and report problems",
		ArgsUsage: "[keymap or script files...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "list",
				Usage: "print the resulting bindings",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := baseOptions(cmd)
			opts.Logger = logging.Discard()
			splitFiles(cmd.Args().Slice(), &opts)

			application, err := app.New(opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			out := cmd.Root().Writer
			if cmd.Bool("list") {
				for _, line := range application.KeyList() {
					fmt.Fprintln(out, line)
				}
			}

			errs := application.Check()
			for _, err := range errs {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
			if len(errs) > 0 {
				return cli.Exit(fmt.Sprintf("%d problem(s)", len(errs)), 1)
			}
			fmt.Fprintf(out, "ok: %d bindings\n", len(application.Engine().Bindings()))
			return nil
		},
	}
}

func keysCommand() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "show how shortcuts resolve to key codes",
		ArgsUsage: "<shortcut spec>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.Exit("keys: at least one shortcut spec is required", 2)
			}
			out := cmd.Root().Writer
			for _, spec := range cmd.Args().Slice() {
				for _, sc := range key.ParseSpec(spec) {
					fmt.Fprintln(out, describe(sc))
				}
			}
			return nil
		},
	}
}

// describe renders a parsed shortcut as "text: code name [mods]".
func describe(sc key.Shortcut) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d %s", sc.Text, int(sc.Code), sc.Code)
	if len(sc.Mods) > 0 {
		names := make([]string, 0, len(sc.Mods))
		for _, m := range sc.Mods {
			names = append(names, m.String())
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(names, "+"))
	}
	return b.String()
}

func baseOptions(cmd *cli.Command) app.Options {
	return app.Options{
		ConfigPath: cmd.String("config"),
		LogLevel:   cmd.String("log-level"),
		Version:    version,
	}
}

// splitFiles sorts file arguments into keymaps and Lua scripts.
func splitFiles(files []string, opts *app.Options) {
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".lua") {
			opts.Scripts = append(opts.Scripts, f)
		} else {
			opts.Keymaps = append(opts.Keymaps, f)
		}
	}
}
