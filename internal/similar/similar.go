// Package similar ranks vault notes against a target note to find the
// best frontmatter examples.
//
// The ranking is deliberately lexical and structural, not semantic: the
// goal is to find notes whose authors already solved the same
// metadata-schema problem, so structural overlap and property richness
// beat topical relevance.
package similar

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/inkfell/quill/internal/frontmatter"
)

// Scoring weights. Tunable policy constants, fixed within a ranking pass.
const (
	scoreHasMetadata       = 10.0
	scoreSameFolder        = 30.0
	scoreFolderPrefix      = 15.0
	scorePerSharedTag      = 10.0
	scoreLinkConnection    = 25.0
	scorePropertySuperset  = 50.0
	scorePerExtraProperty  = 5.0
	scorePerSharedProperty = 3.0
	scorePropertyCountCap  = 10.0
	scoreRecentWeek        = 15.0
	scoreRecentMonth       = 5.0
)

// DefaultLimit is how many examples a ranking pass returns when the
// caller does not say otherwise.
const DefaultLimit = 5

// Note is an immutable snapshot of a corpus note's metadata, used as a
// ranking and schema-derivation input.
type Note struct {
	Path        string
	Frontmatter *frontmatter.Data
}

// Title returns the note title: the file stem of its path.
func (n Note) Title() string {
	return TitleOf(n.Path)
}

// TitleOf returns the title for a note path (base name without extension).
func TitleOf(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, ".md")
}

// Document is a note read in full from the store.
type Document struct {
	Content    string
	ModifiedAt time.Time
	CreatedAt  time.Time
}

// Store is the document-store collaborator.
type Store interface {
	// ListDocuments returns the paths of every note in the corpus.
	ListDocuments(ctx context.Context) ([]string, error)

	// ReadDocument reads one note in full.
	ReadDocument(ctx context.Context, path string) (Document, error)
}

// Snapshot is cached note metadata used for the fast scoring pass.
type Snapshot struct {
	Frontmatter *frontmatter.Data
	Tags        []string
	Links       []string
	ModifiedAt  time.Time
}

// Cache is the metadata-cache collaborator. A nil snapshot means the
// cache has nothing for that path.
type Cache interface {
	Snapshot(path string) *Snapshot
}

// Target describes the note being enhanced.
type Target struct {
	Path    string
	Content string
}

// Scored is a candidate with its ranking score.
type Scored struct {
	Path  string
	Score float64
}

// ScoreCandidates scores every corpus note with cached metadata against
// the target and returns them sorted by descending score. Candidates
// without any frontmatter are excluded outright. The sort is stable, so
// ties keep corpus encounter order.
func ScoreCandidates(ctx context.Context, store Store, cache Cache, target Target) ([]Scored, error) {
	paths, err := store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	targetDoc := frontmatter.Parse(target.Content)
	targetFolder := path.Dir(filepathToSlash(target.Path))
	targetTitle := TitleOf(target.Path)
	targetContentLower := strings.ToLower(target.Content)

	targetProps := map[string]bool{}
	targetTags := map[string]bool{}
	if targetDoc.Frontmatter != nil {
		for _, k := range targetDoc.Frontmatter.Keys() {
			targetProps[k] = true
		}
		for _, tag := range targetDoc.Frontmatter.Tags() {
			targetTags[strings.ToLower(tag)] = true
		}
	}

	now := time.Now()
	var scored []Scored

	for _, p := range paths {
		if p == target.Path {
			continue
		}
		snap := cache.Snapshot(p)
		if snap == nil || snap.Frontmatter == nil || snap.Frontmatter.Len() == 0 {
			// Only notes with existing structured data can teach the
			// vault's schema conventions.
			continue
		}

		score := scoreHasMetadata

		// A root-level target earns no prefix bonus: every note lives
		// under the root, so the bonus would be a constant offset that
		// cancels out of the ranking. Root siblings still score as
		// same-folder.
		folder := path.Dir(filepathToSlash(p))
		if folder == targetFolder {
			score += scoreSameFolder
		} else if targetFolder != "." && strings.HasPrefix(folder, targetFolder+"/") {
			score += scoreFolderPrefix
		}

		for _, tag := range snap.Tags {
			if targetTags[strings.ToLower(tag)] {
				score += scorePerSharedTag
			}
		}

		// Link connection, each direction scored independently.
		candidateTitle := TitleOf(p)
		if len(candidateTitle) > 0 && strings.Contains(targetContentLower, strings.ToLower(candidateTitle)) {
			score += scoreLinkConnection
		}
		for _, link := range snap.Links {
			if strings.EqualFold(link, targetTitle) || strings.EqualFold(TitleOf(link), targetTitle) {
				score += scoreLinkConnection
				break
			}
		}

		score += propertyOverlapScore(targetProps, snap.Frontmatter)

		richness := float64(snap.Frontmatter.Len())
		if richness > scorePropertyCountCap {
			richness = scorePropertyCountCap
		}
		score += richness

		if !snap.ModifiedAt.IsZero() {
			age := now.Sub(snap.ModifiedAt)
			switch {
			case age <= 7*24*time.Hour:
				score += scoreRecentWeek
			case age <= 30*24*time.Hour:
				score += scoreRecentMonth
			}
		}

		scored = append(scored, Scored{Path: p, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

// propertyOverlapScore rewards candidates whose property-name set is a
// strict superset of the target's, or failing that, partial overlap. The
// two paths are mutually exclusive; the superset check runs first.
func propertyOverlapScore(targetProps map[string]bool, candidate *frontmatter.Data) float64 {
	if len(targetProps) == 0 {
		return 0
	}

	candidateProps := map[string]bool{}
	for _, k := range candidate.Keys() {
		candidateProps[k] = true
	}

	missing := 0
	for prop := range targetProps {
		if !candidateProps[prop] {
			missing++
		}
	}

	if missing == 0 && len(candidateProps) > len(targetProps) {
		extra := len(candidateProps) - len(targetProps)
		return scorePropertySuperset + scorePerExtraProperty*float64(extra)
	}

	shared := len(targetProps) - missing
	return scorePerSharedProperty * float64(shared)
}

// FindSimilarNotes runs the full ranking pass: score candidates, take the
// top limit, then re-read each winner to get its authoritative parsed
// frontmatter. A candidate that fails to read or turns out empty is
// skipped with a warning; one bad note never fails the batch.
//
// An empty result is an explicit outcome, not an error; callers decide
// whether to proceed without examples.
func FindSimilarNotes(ctx context.Context, store Store, cache Cache, target Target, limit int) ([]Note, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	scored, err := ScoreCandidates(ctx, store, cache, target)
	if err != nil {
		return nil, err
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	notes := make([]Note, 0, len(scored))
	for _, cand := range scored {
		doc, err := store.ReadDocument(ctx, cand.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", cand.Path, err)
			continue
		}
		parsed := frontmatter.Parse(doc.Content)
		if parsed.Frontmatter == nil || parsed.Frontmatter.Len() == 0 {
			continue
		}
		notes = append(notes, Note{Path: cand.Path, Frontmatter: parsed.Frontmatter})
	}
	return notes, nil
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
