package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@(.*)$`)

type rawHunk struct {
	header string
	body   []string
}

// RepairHunks rewrites the hunk headers of a diff so that their line
// counts match the hunk bodies. Start lines are kept when the header can
// be read; a bare "@@" continues after the previous hunk. Blank lines
// inside a hunk are read as empty context lines.
func RepairHunks(diff string) string {
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")

	var out []string
	var current *rawHunk
	oldNext, offset := 1, 0

	flush := func() {
		if current == nil {
			return
		}
		var header string
		header, oldNext, offset = repairHeader(current, oldNext, offset)
		out = append(out, header)
		out = append(out, current.body...)
		current = nil
	}

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "@@"):
			flush()
			current = &rawHunk{header: line}
		case current != nil && startsFile(lines, i):
			flush()
			out = append(out, line)
		case current != nil && line == "":
			current.body = append(current.body, " ")
		case current != nil && isBodyLine(line):
			current.body = append(current.body, line)
		default:
			flush()
			out = append(out, line)
		}
	}
	flush()
	return strings.Join(out, "\n") + "\n"
}

func repairHeader(h *rawHunk, oldNext, offset int) (string, int, int) {
	added, removed := 0, 0
	for _, line := range h.body {
		switch line[0] {
		case '+':
			added++
		case '-':
			removed++
		}
	}
	context := countContext(h.body)
	oldLines, newLines := context+removed, context+added

	oldStart, newStart, section := oldNext, oldNext+offset, ""
	if m := hunkHeaderRe.FindStringSubmatch(h.header); m != nil {
		oldStart, _ = strconv.Atoi(m[1])
		newStart, _ = strconv.Atoi(m[2])
		section = m[3]
	}

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@%s", oldStart, oldLines, newStart, newLines, section)
	return header, oldStart + oldLines, offset + newLines - oldLines
}

func countContext(body []string) int {
	n := 0
	for _, line := range body {
		if line[0] == ' ' {
			n++
		}
	}
	return n
}

func isBodyLine(line string) bool {
	switch line[0] {
	case '+', '-', ' ', '\\':
		return true
	}
	return false
}

// startsFile reports whether lines[i] begins the header of the next file.
func startsFile(lines []string, i int) bool {
	line := lines[i]
	if strings.HasPrefix(line, "diff ") {
		return true
	}
	return strings.HasPrefix(line, "--- ") && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ")
}
