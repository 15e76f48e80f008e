// Package render turns the visible part of a file diff into text lines.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/sokinpui/mdv/internal/highlight"
	"github.com/sokinpui/mdv/internal/virtual"
	"github.com/sokinpui/mdv/model"
)

// --- Styles ---
var (
	fileStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	addStatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	delStatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	gutterStyle  = lipgloss.NewStyle().Faint(true)
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	delStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	moreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Options controls section rendering.
type Options struct {
	// Width clips lines to this many cells. 0 disables clipping.
	Width int
	// Selected marks the section as the current one.
	Selected bool
	// LoadMoreKey is shown next to the load more label.
	LoadMoreKey string
}

// Header renders the title line of a file section.
func Header(c *virtual.Controller, opts Options) string {
	diff := c.Diff()
	marker := "▾"
	if c.Collapsed() {
		marker = "▸"
	}
	cursor := " "
	if opts.Selected {
		cursor = ">"
	}

	added, removed := Stats(diff)
	line := fmt.Sprintf("%s %s %s  %s %s",
		cursor, marker, fileStyle.Render(diff.DisplayPath()),
		addStatStyle.Render(fmt.Sprintf("+%d", added)),
		delStatStyle.Render(fmt.Sprintf("-%d", removed)))
	if diff.Type != model.FileModify && diff.Type != "" {
		line += faintStyle.Render(fmt.Sprintf("  (%s)", diff.Type))
	}
	return clip(line, opts.Width)
}

// Section renders the header and, unless collapsed, the visible hunks of
// one file followed by the load more label when lines remain.
func Section(c *virtual.Controller, h highlight.Highlighter, opts Options) []string {
	lines := []string{Header(c, opts)}
	if c.Collapsed() {
		return lines
	}

	diff := c.Diff()
	info := c.Info()
	if info.HasWarning() {
		lines = append(lines, clip(warnStyle.Render("  ! "+info.WarningMessage), opts.Width))
	}
	if diff.Binary {
		return append(lines, faintStyle.Render("  Binary file not shown."))
	}
	if len(diff.Hunks) == 0 {
		return append(lines, faintStyle.Render("  No changes."))
	}

	visible := c.Visible()
	for _, hunk := range visible.Hunks {
		lines = append(lines, clip(hunkStyle.Render(hunk.Content), opts.Width))
		for _, ch := range hunk.Changes {
			lines = append(lines, clip(changeLine(diff.NewPath, ch, h), opts.Width))
		}
	}

	if visible.HasMore {
		lines = append(lines, LoadMore(c.Remaining(), opts.LoadMoreKey))
	}
	return lines
}

// LoadMore renders the label of the load more control.
func LoadMore(remaining int, key string) string {
	label := fmt.Sprintf("Load More (%d lines remaining)", remaining)
	if key != "" {
		label += faintStyle.Render(fmt.Sprintf("  [%s]", key))
	}
	return "  " + moreStyle.Render(label)
}

// Stats counts inserted and deleted lines across all hunks.
func Stats(diff model.FileDiff) (added, removed int) {
	for _, h := range diff.Hunks {
		for _, ch := range h.Changes {
			switch ch.Type {
			case model.ChangeInsert:
				added++
			case model.ChangeDelete:
				removed++
			}
		}
	}
	return added, removed
}

func changeLine(path string, ch model.Change, h highlight.Highlighter) string {
	gutter := gutterStyle.Render(fmt.Sprintf("%s %s", lineNum(ch.OldLine), lineNum(ch.NewLine)))
	text := h.Line(path, ch.Content)

	switch ch.Type {
	case model.ChangeInsert:
		return gutter + " " + addStyle.Render("+") + text
	case model.ChangeDelete:
		return gutter + " " + delStyle.Render("-") + text
	default:
		return gutter + "  " + text
	}
}

func lineNum(n int) string {
	if n == 0 {
		return strings.Repeat(" ", 5)
	}
	return fmt.Sprintf("%5d", n)
}

func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
