// Package parser turns unified diff text into model.FileDiff values.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/sokinpui/mdv/model"
)

var (
	gitHeaderRe  = regexp.MustCompile(`(?m)^diff --git `)
	fileHeaderRe = regexp.MustCompile(`(?m)^(diff |--- )`)
)

// ParseUnified parses a git or plain unified diff that may span several
// files. Binary files are returned without hunks. Plain diffs have the
// a/ and b/ prefixes removed from their paths, as git diffs do.
func ParseUnified(content string) ([]model.FileDiff, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	plain := !gitHeaderRe.MatchString(content)
	diffs := make([]model.FileDiff, 0, len(files))
	for _, f := range files {
		diff := convertFile(f)
		if plain {
			diff.OldPath = trimSidePrefix(diff.OldPath)
			diff.NewPath = trimSidePrefix(diff.NewPath)
		}
		diffs = append(diffs, diff)
	}
	return diffs, nil
}

func trimSidePrefix(path string) string {
	for _, prefix := range []string{"a/", "b/"} {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			return rest
		}
	}
	return path
}

// ParseMarkdown parses every diff block found in markdown content. A block
// without file headers takes its path from the backticked path in the
// paragraph before it. Blocks whose hunk headers do not match their bodies
// are parsed again after RepairHunks. Blocks for the same file are merged.
func ParseMarkdown(markdown string) ([]model.FileDiff, error) {
	blocks, err := ExtractCodeBlocks([]byte(markdown))
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown: %w", err)
	}

	var diffs []model.FileDiff
	n := 0
	for _, block := range blocks {
		if !block.IsDiff() {
			continue
		}
		n++
		if strings.TrimSpace(block.Content) == "" {
			continue
		}

		content := block.Content
		if !fileHeaderRe.MatchString(content) {
			path := PathFromHint(block.Hint)
			if path == "" {
				return nil, fmt.Errorf("diff block %d: no file header and no `path` before the block", n)
			}
			content = fmt.Sprintf("--- a/%s\n+++ b/%s\n", path, path) + content
		}

		parsed, err := ParseUnified(content)
		if err != nil {
			var repairErr error
			if parsed, repairErr = ParseUnified(RepairHunks(content)); repairErr != nil {
				return nil, fmt.Errorf("diff block %d: %w", n, err)
			}
		}
		diffs = append(diffs, parsed...)
	}
	return model.MergeFiles(diffs), nil
}

func convertFile(f *gitdiff.File) model.FileDiff {
	diff := model.FileDiff{
		OldPath: f.OldName,
		NewPath: f.NewName,
		Type:    fileType(f),
		Binary:  f.IsBinary,
	}
	switch diff.Type {
	case model.FileAdd:
		diff.OldPath = "/dev/null"
	case model.FileDelete:
		diff.NewPath = "/dev/null"
	}

	for _, frag := range f.TextFragments {
		diff.Hunks = append(diff.Hunks, convertFragment(frag))
	}
	return diff
}

func fileType(f *gitdiff.File) model.FileType {
	switch {
	case f.IsNew:
		return model.FileAdd
	case f.IsDelete:
		return model.FileDelete
	case f.IsRename:
		return model.FileRename
	case f.IsCopy:
		return model.FileCopy
	default:
		return model.FileModify
	}
}

func convertFragment(frag *gitdiff.TextFragment) model.DiffHunk {
	hunk := model.DiffHunk{
		Content:  strings.TrimRight(frag.Header(), " \n"),
		OldStart: int(frag.OldPosition),
		OldLines: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewLines: int(frag.NewLines),
		Changes:  make([]model.Change, 0, len(frag.Lines)),
	}

	oldLine, newLine := hunk.OldStart, hunk.NewStart
	for _, line := range frag.Lines {
		ch := model.Change{Content: strings.TrimSuffix(line.Line, "\n")}
		switch line.Op {
		case gitdiff.OpAdd:
			ch.Type = model.ChangeInsert
			ch.NewLine = newLine
			newLine++
		case gitdiff.OpDelete:
			ch.Type = model.ChangeDelete
			ch.OldLine = oldLine
			oldLine++
		default:
			ch.Type = model.ChangeNormal
			ch.OldLine = oldLine
			ch.NewLine = newLine
			oldLine++
			newLine++
		}
		hunk.Changes = append(hunk.Changes, ch)
	}
	return hunk
}
