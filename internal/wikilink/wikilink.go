// Package wikilink locates linkable title mentions in note content and
// applies them as [[bracket]] insertions.
//
// Wikilink grammar:
//   [[target]]
//   [[target|display text]]
//
// Spans are half-open byte ranges into a specific content buffer. Every
// mutation path re-verifies the recorded text against the buffer before
// touching it, and whole-document changes are checked with a strip
// round-trip so prose can never be silently rewritten.
package wikilink

import (
	"regexp"
	"strings"
)

// Span is a candidate link: a half-open [Start, End) byte range and the
// literal text found there. Alias, when set, becomes the link target while
// Text stays the displayed portion.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	Alias string `json:"alias,omitempty"`
}

// re matches [[target]] or [[target|display]].
// The target cannot contain [ or ] so nested brackets never match.
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// ParseExact parses a string that is exactly a wikilink literal.
func ParseExact(s string) (target string, display string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		return "", "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
	parts := strings.SplitN(inner, "|", 2)
	target = strings.TrimSpace(parts[0])
	if target == "" {
		return "", "", false
	}
	if len(parts) == 2 {
		display = strings.TrimSpace(parts[1])
	}
	return target, display, true
}

// Strip removes all wikilink syntax, reducing [[a]] to a and [[a|b]] to b.
// No trimming happens: the reduced text is the literal inner bytes, which
// is what the strip round-trip validation depends on.
func Strip(content string) string {
	return re.ReplaceAllStringFunc(content, func(link string) string {
		m := re.FindStringSubmatchIndex(link)
		if m == nil {
			return link
		}
		// Display portion when present, otherwise the target.
		if len(m) >= 6 && m[4] >= 0 {
			return link[m[4]:m[5]]
		}
		return link[m[2]:m[3]]
	})
}

// Targets returns the target of every wikilink in content, in order.
func Targets(content string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		target := strings.TrimSpace(m[1])
		if target != "" {
			out = append(out, target)
		}
	}
	return out
}

// linkRanges returns the byte ranges of every existing wikilink in content.
func linkRanges(content string) [][2]int {
	matches := re.FindAllStringIndex(content, -1)
	out := make([][2]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, [2]int{m[0], m[1]})
	}
	return out
}
