package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/sokinpui/mdv/cli"
	"github.com/sokinpui/mdv/internal/config"
	"github.com/sokinpui/mdv/internal/highlight"
	"github.com/sokinpui/mdv/internal/tui"
	"github.com/sokinpui/mdv/internal/ui"
	"github.com/sokinpui/mdv/internal/watch"
	"github.com/sokinpui/mdv/mdv"
)

func main() {
	cfg, err := cli.ParseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		ui.Error("Error: %v", err)
		var detailed *mdv.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "%s\n", detailed.Stack)
		}
		os.Exit(1)
	}
}

func run(cfg *cli.Config) error {
	conf, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return err
	}

	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd())
	if conf.Display.NoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger, closeLog, err := newLogger(cfg, stdoutTTY)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	var h highlight.Highlighter = highlight.Plain{}
	if stdoutTTY && !conf.Display.NoColor {
		h = highlight.NewChroma(conf.Display.Style)
	}

	width := 0
	if stdoutTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	app, err := mdv.New(cfg, mdv.Options{
		Config:      conf,
		Logger:      logger,
		Highlighter: h,
		Width:       width,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Piped output has no terminal to drive the viewer.
	if !app.Interactive() || !stdoutTTY {
		summary, err := app.Execute()
		if err != nil {
			return err
		}
		if cfg.Verbose {
			ui.PrintSummary(summary)
		} else if summary.Message != "" {
			ui.Info("%s", summary.Message)
		}
		return nil
	}

	return runViewer(app, cfg, h, logger)
}

func runViewer(app *mdv.App, cfg *cli.Config, h highlight.Highlighter, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := tui.Options{
		Title:       title(cfg),
		Limits:      app.Limits(),
		Highlighter: h,
	}

	if cfg.Watch {
		paths, err := app.WatchPaths()
		if err != nil {
			return err
		}
		w, err := watch.New(paths, watch.DefaultDebounce, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		go w.Run(ctx)
		opts.Changes = w.Changes()
	}

	p := tea.NewProgram(tui.New(app, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// newLogger writes to --log-file when given. Without one, print modes log
// to stderr with --verbose and the viewer does not log at all.
func newLogger(cfg *cli.Config, stdoutTTY bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closeLog := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	case cfg.Verbose && (cfg.Print || cfg.Dump != "" || !stdoutTTY):
		w = os.Stderr
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}

func title(cfg *cli.Config) string {
	switch {
	case cfg.Compare:
		return fmt.Sprintf("mdv  %s → %s", filepath.Base(cfg.Args[0]), filepath.Base(cfg.Args[1]))
	case len(cfg.Args) == 1 && cfg.Args[0] != "-":
		return "mdv  " + filepath.Base(cfg.Args[0])
	default:
		return "mdv"
	}
}
