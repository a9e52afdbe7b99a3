package frontmatter

import (
	"strings"
	"testing"
)

func TestParseNoFrontmatter(t *testing.T) {
	content := "# Just a note\n\nNo metadata here."
	doc := Parse(content)
	if doc.Frontmatter != nil {
		t.Fatalf("expected nil frontmatter, got %v", doc.Frontmatter.Keys())
	}
	if doc.Body != content {
		t.Fatalf("body changed: %q", doc.Body)
	}
	if doc.Raw != "" {
		t.Fatalf("expected empty raw, got %q", doc.Raw)
	}
}

func TestParseBasic(t *testing.T) {
	content := "---\ntitle: Hello\ntags:\n  - a\n  - b\ncount: 3\ndraft: true\n---\nBody text\n"
	doc := Parse(content)
	if doc.Frontmatter == nil {
		t.Fatal("expected frontmatter")
	}

	if got := doc.Frontmatter.Keys(); strings.Join(got, ",") != "title,tags,count,draft" {
		t.Fatalf("key order = %v", got)
	}

	title, _ := doc.Frontmatter.Get("title")
	if s, ok := title.AsString(); !ok || s != "Hello" {
		t.Fatalf("title = %v", title.Raw())
	}
	count, _ := doc.Frontmatter.Get("count")
	if n, ok := count.AsNumber(); !ok || n != 3 {
		t.Fatalf("count = %v", count.Raw())
	}
	draft, _ := doc.Frontmatter.Get("draft")
	if b, ok := draft.AsBool(); !ok || !b {
		t.Fatalf("draft = %v", draft.Raw())
	}
	if got := doc.Frontmatter.Tags(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("tags = %v", got)
	}

	if doc.Body != "Body text\n" {
		t.Fatalf("body = %q", doc.Body)
	}
	if doc.Raw != "title: Hello\ntags:\n  - a\n  - b\ncount: 3\ndraft: true" {
		t.Fatalf("raw = %q", doc.Raw)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unclosed block", "---\ntitle: Hello\nno closing marker"},
		{"invalid yaml", "---\ntitle: [unclosed\n---\nbody"},
		{"scalar block", "---\njust a string\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.content)
			if doc.Frontmatter != nil {
				t.Fatalf("expected nil frontmatter")
			}
			if doc.Body != tt.content {
				t.Fatalf("body = %q, want full input", doc.Body)
			}
		})
	}
}

func TestParseEmptyBlock(t *testing.T) {
	doc := Parse("---\n---\nbody here")
	if doc.Frontmatter == nil {
		t.Fatal("empty block still counts as frontmatter")
	}
	if doc.Frontmatter.Len() != 0 {
		t.Fatalf("expected no properties, got %v", doc.Frontmatter.Keys())
	}
	if doc.Body != "body here" {
		t.Fatalf("body = %q", doc.Body)
	}
}

func TestRoundTrip(t *testing.T) {
	content := "---\ntitle: Round Trip\ntags:\n  - x\n  - y\nrating: 4.5\n---\n# Heading\n\nBody with trailing space \n"
	doc := Parse(content)
	rebuilt := BuildContent(doc.Frontmatter, doc.Body)
	doc2 := Parse(rebuilt)

	if doc2.Body != doc.Body {
		t.Fatalf("body not preserved:\n%q\nvs\n%q", doc2.Body, doc.Body)
	}
	if strings.Join(doc2.Frontmatter.Keys(), ",") != strings.Join(doc.Frontmatter.Keys(), ",") {
		t.Fatalf("keys not preserved: %v vs %v", doc2.Frontmatter.Keys(), doc.Frontmatter.Keys())
	}
	for _, k := range doc.Frontmatter.Keys() {
		v1, _ := doc.Frontmatter.Get(k)
		v2, _ := doc2.Frontmatter.Get(k)
		if v1.Key() != v2.Key() {
			t.Fatalf("value %s not preserved: %v vs %v", k, v1.Raw(), v2.Raw())
		}
	}
}

func TestBuildContentEndsWithBody(t *testing.T) {
	data := NewData()
	data.Set("title", String("T"))
	body := "\n\nleading blank lines preserved"
	out := BuildContent(data, body)
	if !strings.HasSuffix(out, body) {
		t.Fatalf("output does not end with body: %q", out)
	}
	if !strings.HasPrefix(out, "---\n") {
		t.Fatalf("output missing opening delimiter: %q", out)
	}
}

func TestBuildContentNilFrontmatter(t *testing.T) {
	if got := BuildContent(nil, "plain body"); got != "plain body" {
		t.Fatalf("got %q", got)
	}
}

func TestParseNestedValuesRoundTrip(t *testing.T) {
	content := "---\nauthor:\n  name: Ada\n  email: ada@example.com\ntitle: Notes\n---\nbody\n"
	doc := Parse(content)
	if doc.Frontmatter == nil {
		t.Fatal("expected frontmatter")
	}
	val, ok := doc.Frontmatter.Get("author")
	if !ok || !val.IsOpaque() {
		t.Fatalf("author = %#v, want opaque", val)
	}

	rebuilt := BuildContent(doc.Frontmatter, doc.Body)
	for _, want := range []string{"name: Ada", "email: ada@example.com"} {
		if !strings.Contains(rebuilt, want) {
			t.Errorf("rebuilt note lost %q:\n%s", want, rebuilt)
		}
	}

	again := Parse(rebuilt)
	v2, ok := again.Frontmatter.Get("author")
	if !ok || !v2.IsOpaque() {
		t.Fatalf("reparsed author = %#v, want opaque", v2)
	}
	if v2.Key() != val.Key() {
		t.Errorf("round trip changed author: %q vs %q", v2.Key(), val.Key())
	}
}
