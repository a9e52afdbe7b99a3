package wikilink

import (
	"errors"
	"fmt"
)

// Strategy selects how candidate spans are found.
type Strategy string

const (
	// StrategyExisting finds mentions of known note titles lexically,
	// with no external calls.
	StrategyExisting Strategy = "existing-only"

	// StrategyAllEntities delegates span identification to an external
	// callback (typically model-backed) and validates its output.
	StrategyAllEntities Strategy = "all-entities"
)

// Mode selects which mentions of an entity get linked.
type Mode string

const (
	ModeFirst Mode = "first"
	ModeAll   Mode = "all"
)

// ErrUnsafeChange is returned when the strip round-trip check fails,
// meaning the pending output would alter prose. The operation must be
// abandoned whole; partial application is never acceptable.
var ErrUnsafeChange = errors.New("wiki-link changes would modify note content")

// IdentifyFunc produces candidate spans for content, given the known note
// titles. Its output is untrusted and is filtered and re-verified before
// application.
type IdentifyFunc func(content string, titles []string) ([]Span, error)

// GenerateOptions configures a single link-generation pass.
type GenerateOptions struct {
	Content  string
	Titles   []string
	Strategy Strategy
	Mode     Mode

	// Identify is required for StrategyAllEntities.
	Identify IdentifyFunc
}

// Generate runs the full linking pipeline: find spans, drop those in
// excluded zones, apply the mention-mode filter, insert brackets, and
// prove via round-trip that nothing but link syntax was added.
//
// The mode filter runs after zone exclusion on purpose: a first mention
// sitting inside a code block must not suppress linking of a later
// mention in prose.
func Generate(opts GenerateOptions) (string, error) {
	var spans []Span

	switch opts.Strategy {
	case StrategyAllEntities:
		if opts.Identify == nil {
			return "", fmt.Errorf("strategy %q requires an identify callback", opts.Strategy)
		}
		found, err := opts.Identify(opts.Content, opts.Titles)
		if err != nil {
			return "", err
		}
		spans = FilterToExistingNotes(found, opts.Titles)
	case StrategyExisting, "":
		spans = FindTitleMatches(opts.Content, opts.Titles)
	default:
		return "", fmt.Errorf("unknown link strategy %q", opts.Strategy)
	}

	kept := spans[:0:0]
	for _, s := range spans {
		if InExcludedZone(opts.Content, s.Start, s.End) {
			continue
		}
		kept = append(kept, s)
	}

	if opts.Mode == ModeFirst {
		kept = FilterFirstMentions(kept)
	}

	modified := ApplySpans(opts.Content, kept)

	if !ValidateChanges(opts.Content, modified) {
		return "", fmt.Errorf("%w: stripped output does not match input", ErrUnsafeChange)
	}

	return modified, nil
}
