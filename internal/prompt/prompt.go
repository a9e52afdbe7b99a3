// Package prompt assembles prompts for the external model and parses
// its replies back into typed values.
package prompt

import (
	"fmt"
	"strings"

	"github.com/inkfell/quill/internal/similar"
)

// SkillSource supplies optional named guidance text appended to prompts.
// A nil SkillSource is fine.
type SkillSource interface {
	Get(name string) (string, bool)
}

// Builder assembles prompts, optionally enriched with skill content.
type Builder struct {
	Skills SkillSource
}

func (b *Builder) skill(name string) string {
	if b == nil || b.Skills == nil {
		return ""
	}
	text, ok := b.Skills.Get(name)
	if !ok || strings.TrimSpace(text) == "" {
		return ""
	}
	return "\n" + strings.TrimSpace(text) + "\n"
}

// Enhance builds the frontmatter-enhancement prompt from the target note
// and the schema derived from similar notes.
func (b *Builder) Enhance(path, content string, examples similar.Examples) string {
	var p strings.Builder

	p.WriteString("You are enhancing the YAML frontmatter of a markdown note.\n")
	p.WriteString("Propose frontmatter for the note below, following the conventions shown in the examples from the same vault.\n\n")

	p.WriteString("Rules:\n")
	p.WriteString("- Only use these property names: ")
	p.WriteString(strings.Join(examples.ValidProperties, ", "))
	p.WriteString("\n")
	p.WriteString("- Never invent property names that are not in that list.\n")
	p.WriteString("- Prefer existing vault tags and titles over new ones.\n")
	p.WriteString("- Reply with a single fenced yaml block containing only the proposed frontmatter.\n")
	p.WriteString(b.skill("frontmatter"))
	p.WriteString("\n")

	p.WriteString(examples.Prompt)
	p.WriteString("\n")

	fmt.Fprintf(&p, "Note to enhance (%s):\n", path)
	if outline := Outline(content); outline != "" {
		p.WriteString("Outline:\n")
		p.WriteString(outline)
	}
	p.WriteString("```markdown\n")
	p.WriteString(content)
	p.WriteString("\n```\n")

	return p.String()
}

// Title builds the title-generation prompt.
func (b *Builder) Title(content string) string {
	var p strings.Builder
	p.WriteString("Suggest a concise title for the following markdown note.\n")
	p.WriteString("Reply with the title only: no quotes, no heading markers, one line.\n")
	p.WriteString(b.skill("title"))
	p.WriteString("\n```markdown\n")
	p.WriteString(content)
	p.WriteString("\n```\n")
	return p.String()
}

// Expand builds the in-place content-generation prompt. The marker shows
// the model where its text will be inserted.
func (b *Builder) Expand(content, marker, instruction string) string {
	var p strings.Builder
	p.WriteString("Write markdown content to replace the marker ")
	p.WriteString(marker)
	p.WriteString(" in the note below.\n")
	if instruction != "" {
		p.WriteString("Instruction: ")
		p.WriteString(instruction)
		p.WriteString("\n")
	}
	p.WriteString("Reply with the replacement text only; it will be spliced in verbatim.\n")
	p.WriteString(b.skill("expand"))
	p.WriteString("\n```markdown\n")
	p.WriteString(content)
	p.WriteString("\n```\n")
	return p.String()
}

// IdentifyEntities builds the entity-identification prompt for the
// all-entities linking strategy. The reply format is a fenced json array
// of {start, end, text} spans using byte offsets into the content.
func (b *Builder) IdentifyEntities(content string, titles []string) string {
	var p strings.Builder
	p.WriteString("Identify mentions of the following note titles in the text below.\n")
	p.WriteString("Titles: ")
	p.WriteString(strings.Join(titles, ", "))
	p.WriteString("\n")
	p.WriteString("Reply with a fenced json block: an array of objects with start, end (byte offsets, end exclusive) and text (the exact substring at that range).\n")
	p.WriteString(b.skill("link"))
	p.WriteString("\n```\n")
	p.WriteString(content)
	p.WriteString("\n```\n")
	return p.String()
}

// SummaryEntry is one note shown to the weekly-summary prompt.
type SummaryEntry struct {
	Path    string
	Content string
}

// Summary builds the weekly-summary prompt over recently modified notes.
func (b *Builder) Summary(entries []SummaryEntry) string {
	var p strings.Builder
	p.WriteString("Summarize the past week of notes below as a short markdown digest: key themes, open threads, notable changes.\n")
	p.WriteString(b.skill("summary"))
	for _, e := range entries {
		fmt.Fprintf(&p, "\n--- %s ---\n", e.Path)
		p.WriteString(e.Content)
		p.WriteString("\n")
	}
	return p.String()
}
