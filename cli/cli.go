package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Compare           bool
	Dump              string
	Markdown          bool
	Print             bool
	Watch             bool
	Context           int
	Full              bool
	ShowManagedFields bool
	ConfigPath        string
	LogFile           string
	Verbose           bool
	LookupDirs        []string
	// Args are the positional arguments: the diff file, or OLD NEW with --compare.
	Args []string
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("mdv", pflag.ContinueOnError)

	// Define flags
	flags.BoolVarP(&cfg.Compare, "compare", "c", false, "Diff two manifest files: mdv -c OLD NEW.")
	flags.StringVarP(&cfg.Dump, "dump", "d", "", "Print a manifest file, truncated if it is too large to display.")
	flags.BoolVarP(&cfg.Markdown, "markdown", "m", false, "Read diffs from ```diff blocks in markdown input.")
	flags.BoolVarP(&cfg.Print, "print", "p", false, "Print the visible diff instead of starting the viewer.")
	flags.BoolVarP(&cfg.Watch, "watch", "w", false, "Reload the viewer when input files change.")
	flags.IntVarP(&cfg.Context, "context", "U", -1, "Context lines around changes with --compare (default from config).")
	flags.BoolVarP(&cfg.Full, "full", "F", false, "Show whole documents with --compare.")
	flags.BoolVar(&cfg.ShowManagedFields, "show-managed-fields", false, "Keep metadata.managedFields when comparing manifests.")
	flags.StringVar(&cfg.ConfigPath, "config", "", "Config file (default: ~/.config/mdv/config.toml).")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Write logs to this file.")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging.")
	flags.StringSliceVarP(&cfg.LookupDirs, "lookup-dir", "l", []string{}, "Directories to look for input files in (default: current directory).")

	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mdv [flags] [FILE | -c OLD NEW]")
		fmt.Fprintln(os.Stderr, "\nView large manifest diffs from a file, stdin (pipe) or the clipboard.")
		fmt.Fprintln(os.Stderr, "\nExample: git diff | mdv")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = flags.Args()

	// Validate mode combinations
	if cfg.Compare && cfg.Dump != "" {
		return nil, fmt.Errorf("error: --compare and --dump are mutually exclusive")
	}
	if cfg.Compare && len(cfg.Args) != 2 {
		return nil, fmt.Errorf("error: --compare needs exactly two files, got %d", len(cfg.Args))
	}
	if !cfg.Compare && len(cfg.Args) > 1 {
		return nil, fmt.Errorf("error: expected at most one input file, got %d", len(cfg.Args))
	}
	if cfg.Watch && cfg.Print {
		return nil, fmt.Errorf("error: --watch and --print are mutually exclusive")
	}
	if cfg.Watch && !cfg.Compare && (len(cfg.Args) == 0 || cfg.Args[0] == "-") {
		return nil, fmt.Errorf("error: --watch needs input files")
	}

	return cfg, nil
}
