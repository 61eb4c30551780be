package content

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one table of contents item.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

type Rendered struct {
	HTML string    `json:"html"`
	TOC  []Heading `json:"toc"`
}

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Render converts the entry body to HTML and collects its headings.
func Render(body string) (Rendered, error) {
	source := []byte(body)
	doc := markdownEngine.Parser().Parse(text.NewReader(source))

	toc := []Heading{}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		item := Heading{Level: h.Level, Text: headingText(h, source)}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				item.ID = string(b)
			}
		}
		toc = append(toc, item)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return Rendered{}, err
	}

	var out bytes.Buffer
	if err := markdownEngine.Renderer().Render(&out, source, doc); err != nil {
		return Rendered{}, err
	}
	return Rendered{HTML: out.String(), TOC: toc}, nil
}

func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
