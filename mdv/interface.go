package mdv

import (
	"strings"

	"github.com/sokinpui/mdv/internal/highlight"
	"github.com/sokinpui/mdv/internal/parser"
	"github.com/sokinpui/mdv/internal/perf"
	"github.com/sokinpui/mdv/internal/render"
	"github.com/sokinpui/mdv/internal/state"
	"github.com/sokinpui/mdv/model"
)

// Limits are the thresholds that decide when content is large.
type Limits = perf.Limits

// PerformanceInfo is the result of AnalyzePerformance.
type PerformanceInfo = perf.Info

// DefaultLimits returns the built-in thresholds.
func DefaultLimits() Limits { return perf.DefaultLimits() }

// Config for using mdv as a library.
type Config struct {
	// Read diffs from ```diff blocks instead of raw unified diff text.
	Markdown bool
	// Clip rendered lines to this width. 0 disables clipping.
	Width int
	// Highlight changed lines with this chroma style. Empty disables highlighting.
	Style string
	// Thresholds to use. The zero value means DefaultLimits.
	Limits Limits
}

func (c Config) limits() Limits {
	if c.Limits == (Limits{}) {
		return DefaultLimits()
	}
	return c.Limits
}

// AnalyzePerformance reports the size of content and whether it should be
// handled as large.
func AnalyzePerformance(content string, config Config) PerformanceInfo {
	return config.limits().Analyze(content)
}

// Parse reads file diffs from content.
func Parse(content string, config Config) ([]model.FileDiff, error) {
	if config.Markdown {
		return parser.ParseMarkdown(content)
	}
	return parser.ParseUnified(content)
}

// Render returns the diffs as the viewer first shows them: every file
// expanded, large files limited to their initial window.
func Render(diffs []model.FileDiff, config Config) string {
	var h highlight.Highlighter = highlight.Plain{}
	if config.Style != "" {
		h = highlight.NewChroma(config.Style)
	}

	sections := make([]string, 0, len(diffs))
	for _, c := range state.New(config.limits()).Sync(diffs) {
		lines := render.Section(c, h, render.Options{Width: config.Width})
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}
