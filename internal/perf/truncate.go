package perf

import "strings"

// TruncateLines keeps the first maxLines lines of content and appends
// TruncationMarker when anything was dropped. A negative maxLines is
// treated as zero.
func TruncateLines(content string, maxLines int) (string, bool) {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content, false
	}
	if maxLines < 0 {
		maxLines = 0
	}

	kept := make([]string, 0, maxLines+1)
	kept = append(kept, lines[:maxLines]...)
	kept = append(kept, TruncationMarker)
	return strings.Join(kept, "\n"), true
}

// CapContextLines limits the unchanged-line context requested around
// hunks once content is large.
func CapContextLines(requested, contentSize int) int {
	return DefaultLimits().CapContextLines(requested, contentSize)
}

func (l Limits) CapContextLines(requested, contentSize int) int {
	if contentSize > l.WarningThreshold {
		return min(requested, l.MaxContextLines)
	}
	return requested
}

// Dump is the result of TruncateSerializedDump. Info describes the content
// before truncation.
type Dump struct {
	Content   string
	Truncated bool
	Info      Info
}

// TruncateSerializedDump applies the default limits to a serialised document.
func TruncateSerializedDump(raw string) Dump {
	return DefaultLimits().TruncateSerializedDump(raw)
}

// TruncateSerializedDump analyses raw and, when it needs truncation, cuts
// it to MaxDiffLines lines plus the marker.
func (l Limits) TruncateSerializedDump(raw string) Dump {
	info := l.Analyze(raw)
	if !info.NeedsTruncation {
		return Dump{Content: raw, Info: info}
	}
	content, truncated := TruncateLines(raw, l.MaxDiffLines)
	return Dump{Content: content, Truncated: truncated, Info: info}
}
