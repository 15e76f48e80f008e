package parser

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var pathInHintRegex = regexp.MustCompile("`([^`\n]+)`")

// CodeBlock represents a parsed code block from markdown content.
type CodeBlock struct {
	// Hint is the content of the paragraph immediately preceding the code block.
	Hint string
	// Lang is the language identifier of the code block (e.g., "yaml", "diff").
	Lang string
	// Content is the raw text inside the code block.
	Content string
}

// ExtractCodeBlocks uses a markdown AST to find all fenced code blocks
// and their preceding paragraph, which is treated as a hint.
func ExtractCodeBlocks(source []byte) ([]CodeBlock, error) {
	var blocks []CodeBlock
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		block := CodeBlock{Lang: string(fenced.Language(source))}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		block.Content = content.String()

		if prev := fenced.PreviousSibling(); prev != nil {
			if p, ok := prev.(*ast.Paragraph); ok {
				block.Hint = strings.TrimSpace(paragraphText(p, source))
			}
		}

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ExtractDiffBlocks returns the contents of every fenced block tagged
// "diff" or "patch".
func ExtractDiffBlocks(markdown string) ([]string, error) {
	blocks, err := ExtractCodeBlocks([]byte(markdown))
	if err != nil {
		return nil, err
	}

	var diffs []string
	for _, b := range blocks {
		if b.IsDiff() {
			diffs = append(diffs, b.Content)
		}
	}
	return diffs, nil
}

// IsDiff reports whether the block is tagged "diff" or "patch".
func (b CodeBlock) IsDiff() bool {
	switch strings.ToLower(b.Lang) {
	case "diff", "patch":
		return true
	}
	return false
}

// PathFromHint returns the first backticked path in a hint, e.g.
// "Change in `deploy.yaml`:". Backticked text with spaces is not a path.
func PathFromHint(hint string) string {
	match := pathInHintRegex.FindStringSubmatch(strings.TrimSpace(hint))
	if len(match) < 2 {
		return ""
	}
	path := strings.TrimSpace(match[1])
	if strings.Contains(path, " ") {
		return ""
	}
	return path
}

func paragraphText(p *ast.Paragraph, source []byte) string {
	var b strings.Builder
	lines := p.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return b.String()
}
