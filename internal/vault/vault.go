// Package vault reads and writes the markdown note corpus on disk.
package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inkfell/quill/internal/atomicfile"
	"github.com/inkfell/quill/internal/frontmatter"
)

// DataDir is the vault-local directory quill keeps its state in.
const DataDir = ".quill"

// Vault is a directory of markdown notes.
type Vault struct {
	root string
}

// Open validates the vault directory and returns a handle.
func Open(root string) (*Vault, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("vault not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Vault{root: abs}, nil
}

// Root returns the absolute vault root.
func (v *Vault) Root() string {
	return v.root
}

// Document is a note read in full.
type Document struct {
	Content    string
	ModifiedAt time.Time
	CreatedAt  time.Time
}

// NoteInfo identifies a note found while walking the vault.
type NoteInfo struct {
	// Path is the slash-separated path relative to the vault root.
	Path       string
	ModifiedAt time.Time
}

// Walk visits every markdown note in the vault. It skips the .quill data
// directory and hidden directories.
func (v *Vault) Walk(ctx context.Context, handler func(info NoteInfo) error) error {
	return filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil //nolint:nilerr
		}
		if d.IsDir() {
			name := d.Name()
			if name == DataDir || (strings.HasPrefix(name, ".") && path != v.root) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}
		rel, err := filepath.Rel(v.root, path)
		if err != nil {
			return nil //nolint:nilerr
		}

		return handler(NoteInfo{
			Path:       filepath.ToSlash(rel),
			ModifiedAt: info.ModTime(),
		})
	})
}

// ListDocuments returns the relative paths of all notes, sorted.
func (v *Vault) ListDocuments(ctx context.Context) ([]string, error) {
	var paths []string
	err := v.Walk(ctx, func(info NoteInfo) error {
		paths = append(paths, info.Path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadDocument reads one note in full.
func (v *Vault) ReadDocument(ctx context.Context, rel string) (Document, error) {
	if ctx.Err() != nil {
		return Document{}, ctx.Err()
	}
	full := filepath.Join(v.root, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		return Document{}, fmt.Errorf("read note %s: %w", rel, err)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return Document{}, fmt.Errorf("read note %s: %w", rel, err)
	}

	return Document{
		Content:    string(data),
		ModifiedAt: info.ModTime(),
		// Creation time is not portably available; modification time is
		// the best cross-platform stand-in.
		CreatedAt: info.ModTime(),
	}, nil
}

// WriteDocument writes a note atomically, creating parent directories as
// needed.
func (v *Vault) WriteDocument(rel string, content string) error {
	full := filepath.Join(v.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("write note %s: %w", rel, err)
	}
	if err := atomicfile.WriteFile(full, []byte(content), 0); err != nil {
		return fmt.Errorf("write note %s: %w", rel, err)
	}
	return nil
}

// Rename moves a note to a new vault-relative path, creating parent
// directories as needed. It fails if the destination already exists.
func (v *Vault) Rename(oldRel, newRel string) error {
	oldPath := filepath.Join(v.root, filepath.FromSlash(oldRel))
	newPath := filepath.Join(v.root, filepath.FromSlash(newRel))
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("rename note %s: %s already exists", oldRel, newRel)
	}
	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return fmt.Errorf("rename note %s: %w", oldRel, err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename note %s: %w", oldRel, err)
	}
	return nil
}

// Titles returns every note's titles: the file stem, plus the frontmatter
// title property when it names something different. Duplicates are
// dropped case-insensitively, first spelling wins.
func (v *Vault) Titles(ctx context.Context) ([]string, error) {
	paths, err := v.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(paths))
	titles := make([]string, 0, len(paths))
	add := func(t string) {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			return
		}
		seen[key] = true
		titles = append(titles, t)
	}
	for _, p := range paths {
		add(strings.TrimSuffix(filepath.Base(p), ".md"))
		doc, err := v.ReadDocument(ctx, p)
		if err != nil {
			continue
		}
		if fm := frontmatter.Parse(doc.Content).Frontmatter; fm != nil {
			if val, ok := fm.Get("title"); ok {
				if s, ok := val.AsString(); ok {
					add(s)
				}
			}
		}
	}
	return titles, nil
}

// DataPath returns the path of a file inside the vault data directory,
// creating the directory on first use.
func (v *Vault) DataPath(name string) (string, error) {
	dir := filepath.Join(v.root, DataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
