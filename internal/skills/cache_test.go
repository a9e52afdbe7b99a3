package skills

import (
	"reflect"
	"testing"
)

func TestPutReportsChange(t *testing.T) {
	c := NewCache()

	if !c.Put("frontmatter", "guidance v1") {
		t.Fatal("first put should report a change")
	}
	if c.Put("frontmatter", "guidance v1") {
		t.Fatal("identical content should not report a change")
	}
	if !c.Put("frontmatter", "guidance v2") {
		t.Fatal("new content should report a change")
	}

	text, ok := c.Get("frontmatter")
	if !ok || text != "guidance v2" {
		t.Fatalf("got %q, %v", text, ok)
	}
}

func TestLoadSnapshotRoundTrip(t *testing.T) {
	c := NewCache()
	c.Load(map[string]string{"a": "alpha", "b": "bravo"})

	if got := c.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("names = %v", got)
	}

	snap := c.Snapshot()
	if !reflect.DeepEqual(snap, map[string]string{"a": "alpha", "b": "bravo"}) {
		t.Fatalf("snapshot = %v", snap)
	}

	// Loaded content participates in hash invalidation.
	if c.Put("a", "alpha") {
		t.Fatal("reloading identical content should not report a change")
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to be deleted")
	}
}
