package similar

import (
	"reflect"
	"strings"
	"testing"
)

func TestDerivePropertyOrderConsistentExamples(t *testing.T) {
	examples := []Note{
		{Path: "a.md", Frontmatter: fm("title", "A", "tags", "x", "status", "open")},
		{Path: "b.md", Frontmatter: fm("title", "B", "tags", "y", "status", "done")},
	}

	got := DerivePropertyOrder(examples)
	want := []string{"title", "tags", "status"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDerivePropertyOrderAveragesAcrossPartialExamples(t *testing.T) {
	// "created" only appears in the second example, at position 0, so its
	// average beats "title" (positions 0 and 1, average 0.5).
	examples := []Note{
		{Path: "a.md", Frontmatter: fm("title", "A", "tags", "x")},
		{Path: "b.md", Frontmatter: fm("created", "2026-01-01", "title", "B")},
	}

	got := DerivePropertyOrder(examples)
	want := []string{"created", "title", "tags"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDerivePropertyOrderTiesKeepEncounterOrder(t *testing.T) {
	// "alpha" and "beta" both average position 0; "alpha" was seen first.
	examples := []Note{
		{Path: "a.md", Frontmatter: fm("alpha", "1")},
		{Path: "b.md", Frontmatter: fm("beta", "2")},
	}

	got := DerivePropertyOrder(examples)
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDerivePropertyOrderSkipsNilFrontmatter(t *testing.T) {
	examples := []Note{
		{Path: "bare.md"},
		{Path: "a.md", Frontmatter: fm("title", "A")},
	}

	got := DerivePropertyOrder(examples)
	if !reflect.DeepEqual(got, []string{"title"}) {
		t.Errorf("order = %v", got)
	}
}

func TestDerivePropertyOrderDeterministic(t *testing.T) {
	examples := []Note{
		{Path: "a.md", Frontmatter: fm("title", "A", "tags", "x", "status", "open")},
		{Path: "b.md", Frontmatter: fm("status", "done", "title", "B")},
	}

	first := DerivePropertyOrder(examples)
	for i := 0; i < 5; i++ {
		if got := DerivePropertyOrder(examples); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: order = %v, want %v", i, got, first)
		}
	}
}

func TestFormatExamplesForPrompt(t *testing.T) {
	examples := []Note{
		{Path: "people/ada.md", Frontmatter: fm("title", "Ada", "tags", "person")},
		{Path: "people/alan.md", Frontmatter: fm("title", "Alan")},
	}

	got := FormatExamplesForPrompt(examples, []string{"person", "math"}, []string{"Ada", "Alan"})

	for _, want := range []string{
		"Example 1 (people/ada.md):",
		"Example 2 (people/alan.md):",
		"title: Ada",
		"Existing tags in this vault: person, math",
		"Existing note titles: Ada, Alan",
	} {
		if !strings.Contains(got.Prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, got.Prompt)
		}
	}

	want := []string{"title", "tags"}
	if !reflect.DeepEqual(got.ValidProperties, want) {
		t.Errorf("valid properties = %v, want %v", got.ValidProperties, want)
	}
	if !reflect.DeepEqual(got.PropertyOrder, want) {
		t.Errorf("property order = %v, want %v", got.PropertyOrder, want)
	}
}

func TestFormatExamplesForPromptOmitsEmptyVocabulary(t *testing.T) {
	got := FormatExamplesForPrompt([]Note{{Path: "a.md", Frontmatter: fm("title", "A")}}, nil, nil)
	if strings.Contains(got.Prompt, "Existing tags") || strings.Contains(got.Prompt, "Existing note titles") {
		t.Errorf("vocabulary lines should be omitted:\n%s", got.Prompt)
	}
}
