package wikilink

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FindTitleMatches scans content for case-insensitive occurrences of the
// given titles and returns them as spans, sorted by start offset.
//
// Titles are tried longest first so "John Smith" claims its range before
// "John" can partially match inside it; accepted spans are exclusive and
// never overlap. Matches must sit on word boundaries, and a span's Text is
// the literal substring from the document, keeping its original casing.
// Titles shorter than two characters are ignored.
func FindTitleMatches(content string, titles []string) []Span {
	ordered := make([]string, len(titles))
	copy(ordered, titles)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	lower := strings.ToLower(content)
	var spans []Span

	for _, title := range ordered {
		if len(title) < 2 {
			continue
		}
		needle := strings.ToLower(title)

		for from := 0; ; {
			i := strings.Index(lower[from:], needle)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(needle)
			from = start + 1

			// Lowercasing is length-preserving for the inputs we care
			// about, but guard against the exceptions.
			if end > len(content) {
				break
			}
			if overlapsAny(spans, start, end) {
				continue
			}
			if !onWordBoundary(content, start, end) {
				continue
			}
			spans = append(spans, Span{Start: start, End: end, Text: content[start:end]})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return spans
}

func overlapsAny(spans []Span, start, end int) bool {
	for _, s := range spans {
		if start < s.End && end > s.Start {
			return true
		}
	}
	return false
}

// onWordBoundary reports whether both edges of [start, end) sit against a
// non-word character or the string boundary, preventing partial-word
// matches like "John" inside "Johnson".
func onWordBoundary(content string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(content[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(content) {
		r, _ := utf8.DecodeRuneInString(content[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FilterFirstMentions keeps only the earliest span for each distinct text,
// compared case-insensitively.
func FilterFirstMentions(spans []Span) []Span {
	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	seen := make(map[string]bool, len(ordered))
	out := make([]Span, 0, len(ordered))
	for _, s := range ordered {
		key := strings.ToLower(s.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// FilterToExistingNotes retains only spans whose text matches one of the
// known titles, case-insensitively. Used to validate externally supplied
// spans against ground truth.
func FilterToExistingNotes(spans []Span, titles []string) []Span {
	known := make(map[string]bool, len(titles))
	for _, t := range titles {
		known[strings.ToLower(t)] = true
	}

	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if known[strings.ToLower(s.Text)] {
			out = append(out, s)
		}
	}
	return out
}

// ApplySpans inserts wikilink brackets around each span.
//
// Spans are applied in descending start order so earlier insertions never
// shift the offsets of spans still pending. A span whose recorded text no
// longer matches the buffer is skipped outright; wrapping the wrong text
// is never acceptable.
func ApplySpans(content string, spans []Span) string {
	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	for _, s := range ordered {
		if s.Start < 0 || s.End > len(content) || s.Start >= s.End {
			continue
		}
		if content[s.Start:s.End] != s.Text {
			continue
		}

		var link string
		if s.Alias != "" {
			link = "[[" + s.Alias + "|" + s.Text + "]]"
		} else {
			link = "[[" + s.Text + "]]"
		}
		content = content[:s.Start] + link + content[s.End:]
	}
	return content
}

// ValidateChanges proves that modified differs from original only by added
// wikilink syntax: stripping all links from both must leave identical text.
func ValidateChanges(original, modified string) bool {
	return Strip(original) == Strip(modified)
}
