package virtual

import (
	"strings"

	"github.com/sokinpui/mdv/internal/fs"
	"github.com/sokinpui/mdv/internal/perf"
	"github.com/sokinpui/mdv/model"
)

// Controller owns the view state of one file diff. It is not safe for
// concurrent use; each file gets its own Controller.
type Controller struct {
	diff   model.FileDiff
	limits perf.Limits
	window Window

	contentHash string
	info        perf.Info
}

// New creates a controller for diff with a fresh window.
func New(diff model.FileDiff, limits perf.Limits) *Controller {
	c := &Controller{
		limits: limits,
		window: NewWindow(limits.InitialChunks),
	}
	c.setDiff(diff)
	return c
}

// SetDiff replaces the diff. The window is reset when diff belongs to a
// different file and kept otherwise.
func (c *Controller) SetDiff(diff model.FileDiff) {
	if diff.ID() != c.diff.ID() {
		c.window = NewWindow(c.limits.InitialChunks)
	}
	c.setDiff(diff)
}

func (c *Controller) setDiff(diff model.FileDiff) {
	c.diff = diff
	content := Content(diff.Hunks)
	hash := fs.HashString(content)
	if hash == c.contentHash {
		return
	}
	c.contentHash = hash
	c.info = c.limits.Analyze(content)
}

func (c *Controller) Diff() model.FileDiff { return c.diff }

func (c *Controller) Window() Window { return c.window }

func (c *Controller) Limits() perf.Limits { return c.limits }

// Info is the size classification of the current diff.
func (c *Controller) Info() perf.Info { return c.info }

func (c *Controller) Collapsed() bool { return c.window.Collapsed() }

func (c *Controller) ToggleCollapse() { c.window.ToggleCollapse() }

// LoadMore reveals another chunk if the diff is large and has lines left
// to show. Window itself has no upper bound. This check keeps the window
// from growing past the diff once the load more label is hidden.
func (c *Controller) LoadMore() bool {
	if !c.Visible().HasMore {
		return false
	}
	return c.window.LoadMore(c.info.IsLarge)
}

// Visible recomputes the visible hunks from the current diff and window.
func (c *Controller) Visible() Visible {
	return ComputeVisibleLines(c.diff.Hunks, c.window.VisibleChunks()*c.limits.LinesPerChunk, c.info.IsLarge)
}

// Remaining is the number of change lines not yet revealed.
func (c *Controller) Remaining() int {
	return Remaining(c.diff.ChangeCount(), c.window.VisibleChunks(), c.limits.LinesPerChunk)
}

// Content is the text analysed for a set of hunks: each hunk header
// followed by its change lines.
func Content(hunks []model.DiffHunk) string {
	var b strings.Builder
	for i, h := range hunks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(h.Content)
		for _, ch := range h.Changes {
			b.WriteByte('\n')
			b.WriteString(ch.Content)
		}
	}
	return b.String()
}
