// Package highlight colours diff line text by the language of its file.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders one line of source text for a file.
type Highlighter interface {
	Line(path, text string) string
}

// Plain returns text unchanged.
type Plain struct{}

func (Plain) Line(_, text string) string { return text }

// Chroma highlights with a chroma lexer chosen by file name.
type Chroma struct {
	style     *chroma.Style
	formatter chroma.Formatter

	mu     sync.Mutex
	byPath map[string]chroma.Lexer
}

// NewChroma creates a terminal highlighter using the named chroma style.
// Unknown styles fall back to chroma's default.
func NewChroma(styleName string) *Chroma {
	return &Chroma{
		style:     styles.Get(styleName),
		formatter: formatters.Get("terminal256"),
		byPath:    make(map[string]chroma.Lexer),
	}
}

// Line highlights text. Files without a known lexer are returned as is.
func (c *Chroma) Line(path, text string) string {
	lexer := c.lexer(path)
	if lexer == nil || text == "" {
		return text
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var b strings.Builder
	if err := c.formatter.Format(&b, c.style, it); err != nil {
		return text
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *Chroma) lexer(path string) chroma.Lexer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.byPath[path]; ok {
		return l
	}
	l := lexers.Match(path)
	if l != nil {
		l = chroma.Coalesce(l)
	}
	c.byPath[path] = l
	return l
}
