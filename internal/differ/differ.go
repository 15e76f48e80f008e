// Package differ computes diffs between two versions of a manifest.
package differ

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/sokinpui/mdv/internal/parser"
	"github.com/sokinpui/mdv/internal/perf"
	"github.com/sokinpui/mdv/model"
)

// Document is one version of a manifest.
type Document struct {
	Name    string
	Content string
}

// Options controls how manifests are compared.
type Options struct {
	// Context is the number of unchanged lines around each hunk. A
	// negative value shows the whole document.
	Context int
	// HideManagedFields drops metadata.managedFields before diffing.
	HideManagedFields bool
}

// Normalize re-encodes a YAML or JSON stream as YAML with sorted map keys
// and two-space indentation. Documents are separated by "---".
func Normalize(content string, hideManagedFields bool) (string, error) {
	dec := yaml.NewDecoder(strings.NewReader(content))

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)

	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if doc == nil {
			continue
		}
		if hideManagedFields {
			dropManagedFields(doc)
		}
		if err := enc.Encode(doc); err != nil {
			return "", err
		}
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Manifests diffs two documents after normalising them. The context
// width is capped by limits once the combined size is large. Identical
// documents yield a diff without hunks.
func Manifests(oldDoc, newDoc Document, opts Options, limits perf.Limits) (model.FileDiff, error) {
	oldText, err := Normalize(oldDoc.Content, opts.HideManagedFields)
	if err != nil {
		return model.FileDiff{}, fmt.Errorf("failed to normalize '%s': %w", oldDoc.Name, err)
	}
	newText, err := Normalize(newDoc.Content, opts.HideManagedFields)
	if err != nil {
		return model.FileDiff{}, fmt.Errorf("failed to normalize '%s': %w", newDoc.Name, err)
	}

	result := model.FileDiff{
		OldPath: oldDoc.Name,
		NewPath: newDoc.Name,
		Type:    fileType(oldText, newText, oldDoc.Name, newDoc.Name),
	}
	if oldText == newText {
		return result, nil
	}

	a, b := splitLines(oldText), splitLines(newText)
	context := opts.Context
	if context < 0 {
		context = max(len(a), len(b))
	}
	ud := difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "a/" + oldDoc.Name,
		ToFile:   "b/" + newDoc.Name,
		Context:  limits.CapContextLines(context, len(oldText)+len(newText)),
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return model.FileDiff{}, fmt.Errorf("failed to compute diff: %w", err)
	}

	files, err := parser.ParseUnified(text)
	if err != nil {
		return model.FileDiff{}, err
	}
	if len(files) == 1 {
		result.Hunks = files[0].Hunks
	}
	return result, nil
}

func dropManagedFields(doc any) {
	m, ok := doc.(map[string]any)
	if !ok {
		return
	}
	if meta, ok := m["metadata"].(map[string]any); ok {
		delete(meta, "managedFields")
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return difflib.SplitLines(strings.TrimSuffix(s, "\n"))
}

func fileType(oldText, newText, oldName, newName string) model.FileType {
	switch {
	case oldText == "" && newText != "":
		return model.FileAdd
	case oldText != "" && newText == "":
		return model.FileDelete
	case oldName != newName:
		return model.FileRename
	default:
		return model.FileModify
	}
}
