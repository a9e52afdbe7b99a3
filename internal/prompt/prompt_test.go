package prompt

import (
	"reflect"
	"strings"
	"testing"

	"github.com/inkfell/quill/internal/similar"
	"github.com/inkfell/quill/internal/skills"
	"github.com/inkfell/quill/internal/wikilink"
)

func TestEnhancePrompt(t *testing.T) {
	b := &Builder{}
	examples := similar.Examples{
		Prompt:          "Example 1 (a.md):\ntitle: A\n",
		ValidProperties: []string{"title", "tags"},
	}

	p := b.Enhance("notes/t.md", "# Heading\n\nbody", examples)

	for _, want := range []string{"title, tags", "Example 1 (a.md)", "notes/t.md", "# Heading", "- Heading"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestSkillContentIncluded(t *testing.T) {
	cache := skills.NewCache()
	cache.Put("title", "Always use sentence case.")
	b := &Builder{Skills: cache}

	if p := b.Title("body"); !strings.Contains(p, "Always use sentence case.") {
		t.Fatalf("skill text missing:\n%s", p)
	}

	// Absent skill adds nothing.
	if p := b.Expand("body", "{{ai}}", ""); strings.Contains(p, "sentence case") {
		t.Fatalf("unexpected skill text:\n%s", p)
	}
}

func TestExtractFenced(t *testing.T) {
	reply := "Here you go:\n```yaml\ntitle: X\n```\ntrailing"

	body, ok := ExtractFenced(reply, "yaml")
	if !ok || body != "title: X" {
		t.Fatalf("body=%q ok=%v", body, ok)
	}

	if _, ok := ExtractFenced(reply, "json"); ok {
		t.Fatal("expected no json block")
	}

	if _, ok := ExtractFenced("```yaml\nunclosed", "yaml"); ok {
		t.Fatal("expected unclosed fence to fail")
	}
}

func TestParseFrontmatterReply(t *testing.T) {
	data, err := ParseFrontmatterReply("```yaml\ntitle: New\ntags:\n  - x\n```")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := data.Get("title"); func() string { s, _ := v.AsString(); return s }() != "New" {
		t.Fatalf("title = %v", v.Raw())
	}

	// Bare YAML works too.
	data, err = ParseFrontmatterReply("status: active")
	if err != nil {
		t.Fatal(err)
	}
	if !data.Has("status") {
		t.Fatal("missing status")
	}

	if _, err := ParseFrontmatterReply("not: [valid"); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
	if _, err := ParseFrontmatterReply("   "); err == nil {
		t.Fatal("expected error for empty reply")
	}
}

func TestParseSpansReply(t *testing.T) {
	spans, err := ParseSpansReply("```json\n[{\"start\":0,\"end\":5,\"text\":\"Alice\"}]\n```")
	if err != nil {
		t.Fatal(err)
	}
	want := []wikilink.Span{{Start: 0, End: 5, Text: "Alice"}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %+v", spans)
	}

	if _, err := ParseSpansReply("no json here"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseTitleReply(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A Good Title", "A Good Title"},
		{"\"Quoted Title\"", "Quoted Title"},
		{"# Heading Title", "Heading Title"},
		{"\n\nSecond Line First Nonempty", "Second Line First Nonempty"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseTitleReply(tt.in); got != tt.want {
			t.Fatalf("ParseTitleReply(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutline(t *testing.T) {
	content := "# Top\n\ntext\n\n## Nested\n\n### Deeper\n"
	got := Outline(content)
	want := "- Top\n  - Nested\n    - Deeper\n"
	if got != want {
		t.Fatalf("outline = %q, want %q", got, want)
	}

	if Outline("no headings") != "" {
		t.Fatal("expected empty outline")
	}
}
