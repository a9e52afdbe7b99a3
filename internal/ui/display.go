package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 120

// TermWidth returns the detected terminal width, or the fallback when
// stdout is not a terminal.
func TermWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return DefaultTermWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return DefaultTermWidth
}

// RenderChange renders a line-level before/after preview of a note edit.
// Unchanged lines print plain; removed lines get a "-" prefix, added
// lines a "+".
func RenderChange(before, after string) string {
	oldLines := strings.Split(before, "\n")
	newLines := strings.Split(after, "\n")
	oldSet := make(map[string]bool, len(oldLines))
	for _, l := range oldLines {
		oldSet[l] = true
	}
	newSet := make(map[string]bool, len(newLines))
	for _, l := range newLines {
		newSet[l] = true
	}

	var b strings.Builder
	for _, l := range oldLines {
		if !newSet[l] {
			b.WriteString(Removed.Render("- " + l))
			b.WriteString("\n")
		}
	}
	for _, l := range newLines {
		if oldSet[l] {
			b.WriteString("  " + l + "\n")
		} else {
			b.WriteString(Added.Render("+ " + l))
			b.WriteString("\n")
		}
	}
	return b.String()
}
