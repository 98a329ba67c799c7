// Package tui provides the terminal screens of mediapost using Charm libraries
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Color palette
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"} // Violet
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"} // Amber

	ColorSuccess = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	ColorText   = lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#F1F5F9"}
	ColorSubtle = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	BodyStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// HighlightStyle marks the row under the cursor
	HighlightStyle = lipgloss.NewStyle().
			Reverse(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// helpLine renders key/description pairs as a single muted line
func helpLine(pairs ...string) string {
	helpStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorSubtle).Bold(true)

	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, keyStyle.Render(pairs[i])+" "+helpStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, helpStyle.Render("  |  "))
}

// fitScreen clips body to the terminal: each line is truncated to width-1
// cells and at most height-1 body lines are kept so footer always fits on
// the last row. Zero dimensions mean the size is not known yet.
func fitScreen(body []string, footer string, width, height int) string {
	if height > 0 && len(body) > height-1 {
		body = body[:height-1]
	}
	lines := append(append([]string{}, body...), footer)
	if width > 0 {
		for i, l := range lines {
			lines[i] = ansi.Truncate(l, width-1, "")
		}
	}
	return strings.Join(lines, "\n")
}
