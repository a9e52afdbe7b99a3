package index

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/inkfell/quill/internal/vault"
)

func newSyncedIndex(t *testing.T, files map[string]string) (*Index, *vault.Vault) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	v, err := vault.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	ix, err := Open(v)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ix.Close() })

	if _, _, err := ix.Sync(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	return ix, v
}

func TestSyncAndSnapshot(t *testing.T) {
	ix, _ := newSyncedIndex(t, map[string]string{
		"note.md": "---\ntitle: Note\ntags:\n  - go\n---\nBody with #inline tag and [[other]].",
		"bare.md": "no frontmatter",
	})

	snap := ix.Snapshot("note.md")
	if snap == nil {
		t.Fatal("expected snapshot")
	}
	if snap.Frontmatter == nil || snap.Frontmatter.Len() != 2 {
		t.Fatalf("frontmatter = %+v", snap.Frontmatter)
	}
	if !reflect.DeepEqual(snap.Tags, []string{"go", "inline"}) {
		t.Fatalf("tags = %v", snap.Tags)
	}
	if !reflect.DeepEqual(snap.Links, []string{"other"}) {
		t.Fatalf("links = %v", snap.Links)
	}
	if snap.ModifiedAt.IsZero() {
		t.Fatal("expected modified time")
	}

	bare := ix.Snapshot("bare.md")
	if bare == nil {
		t.Fatal("expected snapshot for bare note")
	}
	if bare.Frontmatter != nil {
		t.Fatalf("expected nil frontmatter, got %+v", bare.Frontmatter)
	}

	if ix.Snapshot("missing.md") != nil {
		t.Fatal("expected nil snapshot for unknown path")
	}
}

func TestSyncCountsAndRemoval(t *testing.T) {
	ix, v := newSyncedIndex(t, map[string]string{
		"a.md": "---\ntitle: A\n---\n",
		"b.md": "---\ntitle: B\n---\n",
	})

	// Unchanged second sync touches nothing.
	updated, removed, err := ix.Sync(context.Background(), v)
	if err != nil {
		t.Fatal(err)
	}
	if updated != 0 || removed != 0 {
		t.Fatalf("updated=%d removed=%d", updated, removed)
	}

	// Modify one note and delete the other.
	full := filepath.Join(v.Root(), "a.md")
	if err := os.WriteFile(full, []byte("---\ntitle: A2\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(full, future, future); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(v.Root(), "b.md")); err != nil {
		t.Fatal(err)
	}

	updated, removed, err = ix.Sync(context.Background(), v)
	if err != nil {
		t.Fatal(err)
	}
	if updated != 1 || removed != 1 {
		t.Fatalf("updated=%d removed=%d", updated, removed)
	}

	if ix.Snapshot("b.md") != nil {
		t.Fatal("expected deleted note to leave the cache")
	}
	snap := ix.Snapshot("a.md")
	if v, _ := snap.Frontmatter.Get("title"); func() string { s, _ := v.AsString(); return s }() != "A2" {
		t.Fatalf("snapshot not refreshed: %v", v.Raw())
	}
}

func TestAllTags(t *testing.T) {
	ix, _ := newSyncedIndex(t, map[string]string{
		"a.md": "---\ntags:\n  - zulu\n  - alpha\n---\n",
		"b.md": "Body with #alpha and #mike.",
	})

	tags, err := ix.AllTags()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tags, []string{"alpha", "mike", "zulu"}) {
		t.Fatalf("tags = %v", tags)
	}
}
