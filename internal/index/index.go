// Package index maintains the SQLite metadata cache used for the fast
// scoring pass. A miss or stale entry degrades to a full parse by the
// caller; the cache never has to be right, only cheap.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/inkfell/quill/internal/frontmatter"
	"github.com/inkfell/quill/internal/similar"
	"github.com/inkfell/quill/internal/vault"
	"github.com/inkfell/quill/internal/wikilink"
)

const schemaVersion = 1

// Index is the metadata cache handle.
type Index struct {
	db *sql.DB
}

// Open opens or creates the cache database inside the vault data
// directory, recreating it on schema mismatch.
func Open(v *vault.Vault) (*Index, error) {
	dbPath, err := v.DataPath("index.db")
	if err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	ix := &Index{db: db}
	if err := ix.initialize(); err != nil {
		db.Close()
		// Incompatible or corrupt cache: rebuild from scratch.
		if rmErr := os.Remove(dbPath); rmErr != nil {
			return nil, err
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("reopen index: %w", err)
		}
		ix = &Index{db: db}
		if err := ix.initialize(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return ix, nil
}

// Close closes the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func (ix *Index) initialize() error {
	if _, err := ix.db.Exec(`
		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS notes (
			path        TEXT PRIMARY KEY,
			mtime       INTEGER NOT NULL,
			frontmatter TEXT,
			tags        TEXT NOT NULL DEFAULT '[]',
			links       TEXT NOT NULL DEFAULT '[]'
		);
	`); err != nil {
		return fmt.Errorf("initialize index schema: %w", err)
	}

	var stored string
	err := ix.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		_, err = ix.db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`,
			fmt.Sprintf("%d", schemaVersion))
		return err
	case err != nil:
		return err
	case stored != fmt.Sprintf("%d", schemaVersion):
		return fmt.Errorf("index schema version %s is incompatible", stored)
	}
	return nil
}

// inlineTagRe matches #tags in body text.
var inlineTagRe = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

// Sync refreshes the cache from the vault, re-parsing notes whose mtime
// changed and dropping rows for deleted notes. A note that fails to read
// mid-sync is skipped with a warning.
func (ix *Index) Sync(ctx context.Context, v *vault.Vault) (updated, removed int, err error) {
	known := map[string]int64{}
	rows, err := ix.db.Query(`SELECT path, mtime FROM notes`)
	if err != nil {
		return 0, 0, err
	}
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			rows.Close()
			return 0, 0, err
		}
		known[path] = mtime
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}

	seen := map[string]bool{}
	walkErr := v.Walk(ctx, func(info vault.NoteInfo) error {
		seen[info.Path] = true
		if mtime, ok := known[info.Path]; ok && mtime == info.ModifiedAt.Unix() {
			return nil
		}

		doc, err := v.ReadDocument(ctx, info.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: index skip %s: %v\n", info.Path, err)
			return nil
		}
		if err := ix.upsert(info.Path, info.ModifiedAt, doc.Content); err != nil {
			return err
		}
		updated++
		return nil
	})
	if walkErr != nil {
		return updated, removed, walkErr
	}

	for path := range known {
		if seen[path] {
			continue
		}
		if _, err := ix.db.Exec(`DELETE FROM notes WHERE path = ?`, path); err != nil {
			return updated, removed, err
		}
		removed++
	}
	return updated, removed, nil
}

func (ix *Index) upsert(path string, modifiedAt time.Time, content string) error {
	doc := frontmatter.Parse(content)

	var raw interface{}
	tagSet := map[string]bool{}
	if doc.Frontmatter != nil && doc.Frontmatter.Len() > 0 {
		raw = doc.Raw
		for _, tag := range doc.Frontmatter.Tags() {
			tagSet[tag] = true
		}
	}
	for _, m := range inlineTagRe.FindAllStringSubmatch(doc.Body, -1) {
		tagSet[m[1]] = true
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	links := wikilink.Targets(doc.Body)
	if links == nil {
		links = []string{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return err
	}

	_, err = ix.db.Exec(`
		INSERT INTO notes (path, mtime, frontmatter, tags, links)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			frontmatter = excluded.frontmatter,
			tags = excluded.tags,
			links = excluded.links
	`, path, modifiedAt.Unix(), raw, string(tagsJSON), string(linksJSON))
	return err
}

// Snapshot returns cached metadata for a note, or nil when the cache has
// nothing usable. Errors degrade to nil; the caller falls back to a full
// read.
func (ix *Index) Snapshot(path string) *similar.Snapshot {
	var raw sql.NullString
	var mtime int64
	var tagsJSON, linksJSON string

	err := ix.db.QueryRow(
		`SELECT frontmatter, mtime, tags, links FROM notes WHERE path = ?`, path,
	).Scan(&raw, &mtime, &tagsJSON, &linksJSON)
	if err != nil {
		return nil
	}

	snap := &similar.Snapshot{ModifiedAt: time.Unix(mtime, 0)}
	if raw.Valid && strings.TrimSpace(raw.String) != "" {
		if data, ok := frontmatter.ParseBlock(raw.String); ok {
			snap.Frontmatter = data
		}
	}
	_ = json.Unmarshal([]byte(tagsJSON), &snap.Tags)
	_ = json.Unmarshal([]byte(linksJSON), &snap.Links)
	return snap
}

// AllTags returns every distinct tag in the cache, sorted.
func (ix *Index) AllTags() ([]string, error) {
	rows, err := ix.db.Query(`SELECT tags FROM notes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := map[string]bool{}
	for rows.Next() {
		var tagsJSON string
		if err := rows.Scan(&tagsJSON); err != nil {
			return nil, err
		}
		var tags []string
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			continue
		}
		for _, tag := range tags {
			set[tag] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out, nil
}
