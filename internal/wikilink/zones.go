package wikilink

import (
	"strings"

	"github.com/inkfell/quill/internal/frontmatter"
)

// InExcludedZone reports whether any part of [start, end) falls inside a
// region where link brackets must never be inserted: the frontmatter
// block, an existing wikilink, or a code region (fenced or inline).
//
// Zones are scanned fresh from content on each call so the answer is
// correct for whatever buffer the caller holds.
func InExcludedZone(content string, start, end int) bool {
	for _, zone := range excludedZones(content) {
		if start < zone[1] && end > zone[0] {
			return true
		}
	}
	return false
}

func excludedZones(content string) [][2]int {
	var zones [][2]int

	lines := strings.Split(content, "\n")

	// Frontmatter block, including both delimiter lines.
	if endLine, ok := frontmatter.Bounds(lines); ok {
		offset := 0
		for i := 0; i <= endLine; i++ {
			offset += len(lines[i]) + 1
		}
		if offset > len(content) {
			offset = len(content)
		}
		zones = append(zones, [2]int{0, offset})
	}

	zones = append(zones, linkRanges(content)...)
	zones = append(zones, codeZones(content, lines)...)
	return zones
}

// codeZones returns fenced code blocks (including fence lines) and inline
// code spans as byte ranges.
func codeZones(content string, lines []string) [][2]int {
	var zones [][2]int

	var fence fenceState
	fenceStart := -1
	offset := 0

	for _, line := range lines {
		lineStart := offset
		offset += len(line) + 1

		if fence.update(line) {
			if fence.inFence {
				fenceStart = lineStart
			} else {
				zoneEnd := offset - 1
				if zoneEnd > len(content) {
					zoneEnd = len(content)
				}
				zones = append(zones, [2]int{fenceStart, zoneEnd})
				fenceStart = -1
			}
			continue
		}

		if !fence.inFence {
			for _, span := range inlineCodeRanges(line) {
				zones = append(zones, [2]int{lineStart + span[0], lineStart + span[1]})
			}
		}
	}

	// Unclosed fence runs to end of content.
	if fence.inFence && fenceStart >= 0 {
		zones = append(zones, [2]int{fenceStart, len(content)})
	}

	return zones
}

// fenceState tracks whether scanning is inside a fenced code block.
type fenceState struct {
	inFence  bool
	fenceCh  byte
	fenceLen int
}

// update consumes one line and reports whether it is a fence marker.
func (fs *fenceState) update(line string) bool {
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, ">") {
		s = strings.TrimLeft(strings.TrimPrefix(s, ">"), " \t")
	}

	ch, n, ok := parseFenceMarker(s)
	if !ok {
		return false
	}

	if !fs.inFence {
		fs.inFence = true
		fs.fenceCh = ch
		fs.fenceLen = n
		return true
	}

	// A closing marker must use the same character and at least the
	// opening length.
	if fs.fenceCh == ch && n >= fs.fenceLen {
		fs.inFence = false
		fs.fenceCh = 0
		fs.fenceLen = 0
		return true
	}

	return false
}

func parseFenceMarker(line string) (ch byte, n int, ok bool) {
	if len(line) < 3 {
		return 0, 0, false
	}
	ch = line[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	i := 0
	for i < len(line) && line[i] == ch {
		i++
	}
	if i < 3 {
		return 0, 0, false
	}
	return ch, i, true
}

// inlineCodeRanges finds backtick-delimited code spans in a single line,
// matching runs of equal backtick counts (`code` and ``code with ` ``).
func inlineCodeRanges(line string) [][2]int {
	var spans [][2]int

	i := 0
	for i < len(line) {
		if line[i] != '`' {
			i++
			continue
		}

		start := i
		openLen := 0
		for i < len(line) && line[i] == '`' {
			openLen++
			i++
		}

		closed := false
		for j := i; j < len(line); j++ {
			if line[j] != '`' {
				continue
			}
			closeLen := 0
			k := j
			for k < len(line) && line[k] == '`' {
				closeLen++
				k++
			}
			if closeLen == openLen {
				spans = append(spans, [2]int{start, k})
				i = k
				closed = true
				break
			}
			j = k - 1
		}

		if !closed {
			// Unmatched opener: leave it and keep scanning.
			continue
		}
	}

	return spans
}
