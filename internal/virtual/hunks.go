package virtual

import (
	"slices"

	"github.com/sokinpui/mdv/internal/perf"
	"github.com/sokinpui/mdv/model"
)

// Visible is the subset of hunks to render. Lines counts the change lines
// included, partial hunk included.
type Visible struct {
	Hunks   []model.DiffHunk
	HasMore bool
	Lines   int
}

// ComputeVisibleHunks returns the hunks that fit in visibleChunks chunks of
// perf.LinesPerChunk change lines each.
func ComputeVisibleHunks(hunks []model.DiffHunk, visibleChunks int, isLarge bool) Visible {
	return ComputeVisibleLines(hunks, visibleChunks*perf.LinesPerChunk, isLarge)
}

// ComputeVisibleLines walks hunks in order and keeps whole hunks while they
// fit in maxLines change lines. The first hunk that does not fit is cut to
// the remaining budget and ends the walk. Content that is not large is
// returned as is. The input is never modified.
func ComputeVisibleLines(hunks []model.DiffHunk, maxLines int, isLarge bool) Visible {
	if !isLarge {
		return Visible{Hunks: hunks, Lines: totalChanges(hunks)}
	}

	out := make([]model.DiffHunk, 0, len(hunks))
	included := 0
	for _, h := range hunks {
		if included+len(h.Changes) <= maxLines {
			out = append(out, h)
			included += len(h.Changes)
			continue
		}
		if remaining := maxLines - included; remaining > 0 {
			partial := h
			partial.Changes = slices.Clone(h.Changes[:remaining])
			out = append(out, partial)
			included += remaining
		}
		break
	}

	return Visible{
		Hunks:   out,
		HasMore: included < totalChanges(hunks),
		Lines:   included,
	}
}

// Remaining is the number of change lines beyond the window, floored at 0.
func Remaining(totalLines, visibleChunks, linesPerChunk int) int {
	return max(totalLines-visibleChunks*linesPerChunk, 0)
}

func totalChanges(hunks []model.DiffHunk) int {
	n := 0
	for _, h := range hunks {
		n += len(h.Changes)
	}
	return n
}
