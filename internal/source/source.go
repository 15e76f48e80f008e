package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/sokinpui/mdv/internal/fs"
)

// ErrEmpty is returned when the chosen source has no content.
var ErrEmpty = errors.New("source is empty")

// Input is content read from one place.
type Input struct {
	// Name is the file path, "stdin" or "clipboard".
	Name    string
	Content string
}

// SourceProvider determines and retrieves the source content.
type SourceProvider struct {
	resolver *fs.PathResolver
	stdin    *os.File
	logger   *slog.Logger

	readClipboard func() (string, error)
}

// New creates a new SourceProvider.
func New(resolver *fs.PathResolver, logger *slog.Logger) *SourceProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceProvider{
		resolver:      resolver,
		stdin:         os.Stdin,
		logger:        logger,
		readClipboard: clipboard.ReadAll,
	}
}

// GetContent reads path when given ("-" means stdin). Otherwise it reads
// stdin if it is piped, and falls back to the clipboard.
func (sp *SourceProvider) GetContent(path string) (Input, error) {
	switch {
	case path == "-":
		return sp.fromStdin()
	case path != "":
		return sp.FromFile(path)
	case sp.isPiped():
		return sp.fromStdin()
	default:
		return sp.fromClipboard()
	}
}

// FromFile reads a file through the path resolver.
func (sp *SourceProvider) FromFile(path string) (Input, error) {
	abs, content, err := sp.resolver.ReadFile(path)
	if err != nil {
		return Input{}, err
	}
	sp.logger.Debug("read file", "path", abs, "bytes", len(content))
	return Input{Name: abs, Content: content}, nil
}

func (sp *SourceProvider) isPiped() bool {
	fd := sp.stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func (sp *SourceProvider) fromStdin() (Input, error) {
	content, err := io.ReadAll(sp.stdin)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read from stdin: %w", err)
	}
	sp.logger.Debug("read stdin", "bytes", len(content))
	if strings.TrimSpace(string(content)) == "" {
		return Input{}, fmt.Errorf("stdin: %w", ErrEmpty)
	}
	return Input{Name: "stdin", Content: string(content)}, nil
}

func (sp *SourceProvider) fromClipboard() (Input, error) {
	content, err := sp.readClipboard()
	if err != nil {
		return Input{}, fmt.Errorf("failed to read from clipboard: %w", err)
	}
	sp.logger.Debug("read clipboard", "bytes", len(content))
	if strings.TrimSpace(content) == "" {
		return Input{}, fmt.Errorf("clipboard: %w", ErrEmpty)
	}
	return Input{Name: "clipboard", Content: content}, nil
}
