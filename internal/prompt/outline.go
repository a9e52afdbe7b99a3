package prompt

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a markdown heading found in note content.
type Heading struct {
	Level int
	Text  string
}

// ExtractHeadings pulls the heading structure out of markdown content.
func ExtractHeadings(content string) []Heading {
	var headings []Heading

	md := goldmark.New()
	reader := text.NewReader([]byte(content))
	doc := md.Parser().Parse(reader)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				b.Write(textNode.Segment.Value([]byte(content)))
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			headings = append(headings, Heading{Level: heading.Level, Text: text})
		}
		return ast.WalkContinue, nil
	})

	return headings
}

// Outline renders the heading structure as an indented list for prompt
// context, or "" when the note has no headings.
func Outline(content string) string {
	headings := ExtractHeadings(content)
	if len(headings) == 0 {
		return ""
	}

	var b strings.Builder
	for _, h := range headings {
		b.WriteString(strings.Repeat("  ", h.Level-1))
		b.WriteString("- ")
		b.WriteString(h.Text)
		b.WriteString("\n")
	}
	return b.String()
}
