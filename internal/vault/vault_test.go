package vault

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestVault(t *testing.T, files map[string]string) *Vault {
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
	v, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestListDocuments(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"a.md":              "A",
		"sub/b.md":          "B",
		".quill/index.db":   "not a note",
		".hidden/secret.md": "skipped",
		"readme.txt":        "not markdown",
	})

	paths, err := v.ListDocuments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, []string{"a.md", "sub/b.md"}) {
		t.Fatalf("paths = %v", paths)
	}
}

func TestReadDocument(t *testing.T) {
	v := newTestVault(t, map[string]string{"note.md": "hello"})

	doc, err := v.ReadDocument(context.Background(), "note.md")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Content != "hello" {
		t.Fatalf("content = %q", doc.Content)
	}
	if doc.ModifiedAt.IsZero() {
		t.Fatal("expected modified time")
	}

	if _, err := v.ReadDocument(context.Background(), "missing.md"); err == nil {
		t.Fatal("expected error for missing note")
	}
}

func TestWriteDocument(t *testing.T) {
	v := newTestVault(t, nil)

	if err := v.WriteDocument("new/dir/note.md", "content"); err != nil {
		t.Fatal(err)
	}
	doc, err := v.ReadDocument(context.Background(), "new/dir/note.md")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Content != "content" {
		t.Fatalf("content = %q", doc.Content)
	}
}

func TestTitles(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"Alice.md":        "",
		"people/Bob.md":   "",
		"projects/zed.md": "",
	})

	titles, err := v.Titles(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(titles, []string{"Alice", "Bob", "zed"}) {
		t.Fatalf("titles = %v", titles)
	}
}

func TestTitlesIncludesFrontmatterTitle(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"people/ada.md":  "---\ntitle: Ada Lovelace\n---\nbody\n",
		"people/alan.md": "---\ntitle: alan\n---\nbody\n", // matches the stem
	})

	titles, err := v.Titles(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ada", "Ada Lovelace", "alan"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
}

func TestOpenRejectsMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}
