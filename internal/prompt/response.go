package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inkfell/quill/internal/frontmatter"
	"github.com/inkfell/quill/internal/wikilink"
)

// ExtractFenced returns the body of the first fenced code block with the
// given language tag ("" matches any). ok=false when no block exists.
func ExtractFenced(reply, lang string) (string, bool) {
	lines := strings.Split(reply, "\n")
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}
		tag := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
		if lang != "" && !strings.EqualFold(tag, lang) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.HasPrefix(strings.TrimSpace(lines[j]), "```") {
				return strings.Join(lines[i+1:j], "\n"), true
			}
		}
		return "", false
	}
	return "", false
}

// ParseFrontmatterReply parses a model reply into proposed frontmatter.
// The reply may be a fenced yaml block or bare YAML.
func ParseFrontmatterReply(reply string) (*frontmatter.Data, error) {
	body, ok := ExtractFenced(reply, "yaml")
	if !ok {
		if body, ok = ExtractFenced(reply, ""); !ok {
			body = reply
		}
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("model reply contained no frontmatter")
	}

	data, ok := frontmatter.ParseBlock(body)
	if !ok {
		return nil, fmt.Errorf("model reply is not a YAML mapping")
	}
	return data, nil
}

// ParseSpansReply parses a model reply into candidate wikilink spans.
// The reply may be a fenced json block or bare JSON.
func ParseSpansReply(reply string) ([]wikilink.Span, error) {
	body, ok := ExtractFenced(reply, "json")
	if !ok {
		if body, ok = ExtractFenced(reply, ""); !ok {
			body = reply
		}
	}

	var spans []wikilink.Span
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &spans); err != nil {
		return nil, fmt.Errorf("parse span reply: %w", err)
	}
	return spans, nil
}

// ParseTitleReply extracts a single-line title from a model reply,
// dropping surrounding quotes and heading markers.
func ParseTitleReply(reply string) string {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimLeft(line, "# ")
		line = strings.Trim(line, `"'`)
		return strings.TrimSpace(line)
	}
	return ""
}
