// Package ui holds terminal styling and output helpers.
package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: default text, an accent for paths and highlights, and a
// muted gray for secondary info. Success/error state uses unicode
// symbols, not color.

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths and highlights.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis.
	Bold = lipgloss.NewStyle().Bold(true)

	// Added and Removed styles for change previews.
	Added   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	Removed = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

var accentRe = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// ConfigureTheme applies a user accent color. Invalid values keep the
// default.
func ConfigureTheme(accent string) {
	accent = strings.TrimSpace(accent)
	if accent == "" || !accentRe.MatchString(accent) {
		return
	}
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
}
