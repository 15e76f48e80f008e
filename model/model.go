package model

// ChangeType tags a single diff line.
type ChangeType int

const (
	ChangeNormal ChangeType = iota
	ChangeInsert
	ChangeDelete
)

func (t ChangeType) String() string {
	switch t {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	default:
		return "normal"
	}
}

// Change is one line of a hunk. OldLine and NewLine are 0 when the line
// does not exist on that side.
type Change struct {
	Type    ChangeType
	OldLine int
	NewLine int
	Content string
}

// DiffHunk is a contiguous block of a diff. Content holds the raw hunk
// header, e.g. "@@ -1,3 +1,4 @@".
type DiffHunk struct {
	Content  string
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Changes  []Change
}

// FileType describes what happened to a file in a diff.
type FileType string

const (
	FileAdd    FileType = "add"
	FileDelete FileType = "delete"
	FileModify FileType = "modify"
	FileRename FileType = "rename"
	FileCopy   FileType = "copy"
)

// FileDiff is the diff of one file.
type FileDiff struct {
	OldPath string
	NewPath string
	Type    FileType
	Binary  bool
	Hunks   []DiffHunk
}

// ID identifies a file across reloads.
func (f FileDiff) ID() string {
	return f.OldPath + " -> " + f.NewPath
}

// DisplayPath is the path shown to the user.
func (f FileDiff) DisplayPath() string {
	switch {
	case f.Type == FileDelete || f.NewPath == "":
		return f.OldPath
	case f.OldPath != "" && f.OldPath != f.NewPath && (f.Type == FileRename || f.Type == FileCopy):
		return f.OldPath + " → " + f.NewPath
	default:
		return f.NewPath
	}
}

// ChangeCount is the total number of change lines across all hunks.
func (f FileDiff) ChangeCount() int {
	n := 0
	for _, h := range f.Hunks {
		n += len(h.Changes)
	}
	return n
}

// MergeFiles joins diffs that share an ID into one, keeping the first
// occurrence's position and appending later hunks in order. The input is
// not modified.
func MergeFiles(diffs []FileDiff) []FileDiff {
	out := make([]FileDiff, 0, len(diffs))
	index := make(map[string]int, len(diffs))
	for _, d := range diffs {
		i, seen := index[d.ID()]
		if !seen {
			index[d.ID()] = len(out)
			d.Hunks = append([]DiffHunk(nil), d.Hunks...)
			out = append(out, d)
			continue
		}
		out[i].Hunks = append(out[i].Hunks, d.Hunks...)
		out[i].Binary = out[i].Binary || d.Binary
	}
	return out
}

// Summary holds the results of an operation for display.
type Summary struct {
	Files     []string
	Large     []string
	Truncated []string
	Message   string
}
