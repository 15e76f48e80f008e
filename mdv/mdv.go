package mdv

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"sync/atomic"

	"github.com/sokinpui/mdv/cli"
	"github.com/sokinpui/mdv/internal/config"
	"github.com/sokinpui/mdv/internal/differ"
	"github.com/sokinpui/mdv/internal/fs"
	"github.com/sokinpui/mdv/internal/highlight"
	"github.com/sokinpui/mdv/internal/parser"
	"github.com/sokinpui/mdv/internal/perf"
	"github.com/sokinpui/mdv/internal/render"
	"github.com/sokinpui/mdv/internal/source"
	"github.com/sokinpui/mdv/internal/state"
	"github.com/sokinpui/mdv/internal/ui"
	"github.com/sokinpui/mdv/model"
)

// Options carries what the application needs besides the flags.
type Options struct {
	Config      config.Config
	Logger      *slog.Logger
	Highlighter highlight.Highlighter
	// Width clips printed lines. 0 disables clipping.
	Width int
	// Out receives printed diffs and dumps. Defaults to stdout.
	Out io.Writer
}

// App orchestrates the entire application logic.
type App struct {
	cfg            *cli.Config
	opts           Options
	limits         perf.Limits
	logger         *slog.Logger
	pathResolver   *fs.PathResolver
	sourceProvider *source.SourceProvider

	// compact is toggled from the viewer while Load runs in the background.
	compact atomic.Bool
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Highlighter == nil {
		opts.Highlighter = highlight.Plain{}
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Config == (config.Config{}) {
		opts.Config = config.Default()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pathResolver, err := fs.NewPathResolver(cfg.LookupDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}

	app := &App{
		cfg:            cfg,
		opts:           opts,
		limits:         opts.Config.PerfLimits(),
		logger:         opts.Logger,
		pathResolver:   pathResolver,
		sourceProvider: source.New(pathResolver, opts.Logger),
	}
	app.compact.Store(opts.Config.Display.Compact && !cfg.Full)
	return app, nil
}

// Compact reports whether compared manifests show only the lines around
// changes.
func (a *App) Compact() bool { return a.compact.Load() }

// SetCompact switches compared manifests between context around changes
// and whole documents. It takes effect on the next Load.
func (a *App) SetCompact(compact bool) { a.compact.Store(compact) }

// Limits returns the thresholds in effect.
func (a *App) Limits() perf.Limits { return a.limits }

// Interactive reports whether the run should start the viewer.
func (a *App) Interactive() bool {
	return !a.cfg.Print && a.cfg.Dump == ""
}

// Execute runs the non-interactive modes: dump and print.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch {
	case a.cfg.Dump != "":
		return a.dumpManifest()
	default:
		return a.printDiffs()
	}
}

// Load reads the configured input and returns its file diffs.
func (a *App) Load() ([]model.FileDiff, error) {
	if a.cfg.Compare {
		diff, err := a.compareManifests(a.cfg.Args[0], a.cfg.Args[1])
		if err != nil {
			return nil, err
		}
		return []model.FileDiff{diff}, nil
	}

	var path string
	if len(a.cfg.Args) > 0 {
		path = a.cfg.Args[0]
	}
	input, err := a.sourceProvider.GetContent(path)
	if err != nil {
		return nil, err
	}

	var diffs []model.FileDiff
	if a.cfg.Markdown {
		diffs, err = parser.ParseMarkdown(input.Content)
	} else {
		diffs, err = parser.ParseUnified(input.Content)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input.Name, err)
	}
	a.logger.Info("loaded diff", "source", input.Name, "files", len(diffs))
	return diffs, nil
}

// WatchPaths returns the files the viewer should reload on.
func (a *App) WatchPaths() ([]string, error) {
	paths := make([]string, 0, len(a.cfg.Args))
	for _, arg := range a.cfg.Args {
		abs, err := a.pathResolver.Resolve(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

func (a *App) compareManifests(oldPath, newPath string) (model.FileDiff, error) {
	_, oldContent, err := a.pathResolver.ReadFile(oldPath)
	if err != nil {
		return model.FileDiff{}, err
	}
	_, newContent, err := a.pathResolver.ReadFile(newPath)
	if err != nil {
		return model.FileDiff{}, err
	}

	opts := differ.Options{
		Context:           a.cfg.Context,
		HideManagedFields: a.opts.Config.Display.HideManagedFields && !a.cfg.ShowManagedFields,
	}
	switch {
	case !a.Compact():
		opts.Context = -1
	case opts.Context < 0:
		opts.Context = a.opts.Config.Display.Context
	}
	diff, err := differ.Manifests(
		differ.Document{Name: oldPath, Content: oldContent},
		differ.Document{Name: newPath, Content: newContent},
		opts, a.limits)
	if err != nil {
		return model.FileDiff{}, err
	}
	a.logger.Info("compared manifests", "old", oldPath, "new", newPath, "hunks", len(diff.Hunks))
	return diff, nil
}

// printDiffs writes every file section, as first shown in the viewer, to Out.
func (a *App) printDiffs() (model.Summary, error) {
	diffs, err := a.Load()
	if errors.Is(err, source.ErrEmpty) {
		return model.Summary{Message: "Source is empty. Nothing to show."}, nil
	}
	if err != nil {
		return model.Summary{}, err
	}
	if len(diffs) == 0 {
		return model.Summary{Message: "No changes found."}, nil
	}

	var summary model.Summary
	for i, c := range state.New(a.limits).Sync(diffs) {
		if i > 0 {
			fmt.Fprintln(a.opts.Out)
		}
		lines := render.Section(c, a.opts.Highlighter, render.Options{Width: a.opts.Width})
		fmt.Fprintln(a.opts.Out, strings.Join(lines, "\n"))

		path := c.Diff().DisplayPath()
		summary.Files = append(summary.Files, path)
		if c.Visible().HasMore {
			summary.Large = append(summary.Large, path)
		}
	}
	return summary, nil
}

// dumpManifest prints a manifest, truncated when it is too large.
func (a *App) dumpManifest() (model.Summary, error) {
	input, err := a.sourceProvider.GetContent(a.cfg.Dump)
	if err != nil {
		return model.Summary{}, err
	}

	dump := a.limits.TruncateSerializedDump(input.Content)
	if dump.Info.HasWarning() {
		ui.Warning("%s", dump.Info.WarningMessage)
	}
	if _, err := io.WriteString(a.opts.Out, dump.Content); err != nil {
		return model.Summary{}, fmt.Errorf("failed to write dump: %w", err)
	}
	if !strings.HasSuffix(dump.Content, "\n") {
		fmt.Fprintln(a.opts.Out)
	}
	a.logger.Debug("dumped manifest", "path", input.Name, "bytes", dump.Info.Size, "truncated", dump.Truncated)

	summary := model.Summary{Files: []string{input.Name}}
	if dump.Info.IsLarge {
		summary.Large = summary.Files
	}
	if dump.Truncated {
		summary.Truncated = summary.Files
	}
	return summary, nil
}
