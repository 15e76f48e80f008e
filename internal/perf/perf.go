// Package perf classifies diff content by size and bounds how much of it
// is materialised for display.
package perf

import (
	"fmt"
	"math"
	"strings"
)

const (
	// WarningThreshold is the size above which content is large.
	WarningThreshold = 50000
	// MaxSize is the size above which content needs truncation.
	MaxSize = 100000
	// MaxDiffLines caps a truncated dump.
	MaxDiffLines = 1000
	// MaxContextLines caps the unchanged-line context around hunks of large content.
	MaxContextLines = 50
	// LinesPerChunk is the number of change lines revealed per chunk.
	LinesPerChunk = 100
	// InitialChunks is the number of chunks visible when a file view is created.
	InitialChunks = 2
)

// TruncationMarker is appended as the last line of truncated content.
const TruncationMarker = "# ... (diff truncated for performance)"

// Limits carries the thresholds used by the analyzer and the windowing
// policy. The zero value is not usable; start from DefaultLimits.
type Limits struct {
	WarningThreshold int
	MaxSize          int
	MaxDiffLines     int
	MaxContextLines  int
	LinesPerChunk    int
	InitialChunks    int
}

// DefaultLimits returns the built-in thresholds.
func DefaultLimits() Limits {
	return Limits{
		WarningThreshold: WarningThreshold,
		MaxSize:          MaxSize,
		MaxDiffLines:     MaxDiffLines,
		MaxContextLines:  MaxContextLines,
		LinesPerChunk:    LinesPerChunk,
		InitialChunks:    InitialChunks,
	}
}

// Info is the size classification of a block of content.
type Info struct {
	Size            int
	LineCount       int
	IsLarge         bool
	NeedsTruncation bool
	WarningMessage  string
}

// HasWarning reports whether a warning banner should be shown.
func (i Info) HasWarning() bool {
	return i.WarningMessage != ""
}

// Analyze classifies content using the default limits.
func Analyze(content string) Info {
	return DefaultLimits().Analyze(content)
}

// Analyze classifies content by size. Size is the string length and the
// line count is the number of "\n"-separated segments, so a trailing
// newline counts as an extra empty line.
func (l Limits) Analyze(content string) Info {
	size := len(content)
	info := Info{
		Size:            size,
		LineCount:       strings.Count(content, "\n") + 1,
		IsLarge:         size > l.WarningThreshold,
		NeedsTruncation: size > l.MaxSize,
	}

	switch {
	case info.NeedsTruncation:
		info.WarningMessage = fmt.Sprintf(
			"This content is very large (%dKB, %d lines). Content has been truncated for performance.",
			roundKB(size), info.LineCount)
	case info.IsLarge:
		info.WarningMessage = fmt.Sprintf(
			"This content is large (%dKB, %d lines). Performance may be affected.",
			roundKB(size), info.LineCount)
	}
	return info
}

func roundKB(size int) int {
	return int(math.Round(float64(size) / 1024))
}
