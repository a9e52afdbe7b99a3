package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// delimiter is the marker line that opens and closes a frontmatter block.
const delimiter = "---"

// Document is a note split into frontmatter and body.
type Document struct {
	// Frontmatter is nil when the note has no well-formed block.
	Frontmatter *Data

	// Body is the text after the closing delimiter, or the whole input
	// when no block was found.
	Body string

	// Raw is the literal unparsed block content (without delimiters).
	Raw string
}

// Bounds returns the closing delimiter line index of a frontmatter block,
// or ok=false if the content does not open with one.
func Bounds(lines []string) (endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			return i, true
		}
	}
	return -1, false
}

// Parse splits content into frontmatter and body.
//
// Malformed input never errors: a missing, unclosed, or unparseable block
// yields Frontmatter=nil with the entire input as Body. Callers depend on
// the body never being wrong, whatever the block looks like.
func Parse(content string) Document {
	lines := strings.Split(content, "\n")

	endLine, ok := Bounds(lines)
	if !ok {
		return Document{Body: content}
	}

	raw := strings.Join(lines[1:endLine], "\n")

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return Document{Body: content}
	}

	// An empty block (comments or whitespace only) still counts as
	// frontmatter; it just carries no properties.
	if len(node.Content) == 0 {
		return Document{
			Frontmatter: NewData(),
			Body:        strings.Join(lines[endLine+1:], "\n"),
			Raw:         raw,
		}
	}

	data, ok := dataFromNode(&node)
	if !ok {
		return Document{Body: content}
	}

	return Document{
		Frontmatter: data,
		Body:        strings.Join(lines[endLine+1:], "\n"),
		Raw:         raw,
	}
}

// ParseBlock parses bare block content (no delimiters) into Data.
// Returns ok=false for anything that is not a YAML mapping.
func ParseBlock(raw string) (*Data, bool) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return nil, false
	}
	if len(node.Content) == 0 {
		return NewData(), true
	}
	return dataFromNode(&node)
}

// BuildContent serializes frontmatter back into a full note.
// The body is appended verbatim; the result always ends with it.
func BuildContent(data *Data, body string) string {
	if data == nil || data.Len() == 0 {
		return body
	}

	encoded, err := yaml.Marshal(data)
	if err != nil {
		// Data only holds values yaml can encode; treat failure as empty.
		return body
	}

	var b strings.Builder
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.Write(encoded)
	if !strings.HasSuffix(string(encoded), "\n") {
		b.WriteString("\n")
	}
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.WriteString(body)
	return b.String()
}
