// Package ui provides the terminal surface for qcscale: the QC file
// picker, the scale prompt, and styled report rendering.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors, shared by both themes.
var (
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorInfo    = lipgloss.Color("#2196F3")
)

// Theme is the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	IsDark     bool
}

// LightTheme returns colors for light terminals.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Muted:      lipgloss.Color("#6a7587"),
		Accent:     lipgloss.Color("#2e5aac"),
	}
}

// DarkTheme returns colors for dark terminals.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Muted:      lipgloss.Color("#8893a5"),
		Accent:     lipgloss.Color("#8BC34A"),
		IsDark:     true,
	}
}

// ResolveTheme maps a configured theme name to a Theme. "auto" consults
// COLORFGBG the way terminals advertise it; unknown names fall back to
// dark, the common terminal default.
func ResolveTheme(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		if bg := os.Getenv("COLORFGBG"); bg != "" {
			parts := strings.Split(bg, ";")
			if len(parts) > 0 && parts[len(parts)-1] == "15" {
				return LightTheme()
			}
		}
		return DarkTheme()
	}
}

// Styles bundles the lipgloss styles used across the surface.
type Styles struct {
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles derives the style set from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Body:    lipgloss.NewStyle().Foreground(t.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Success: lipgloss.NewStyle().Foreground(colorSuccess),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Info:    lipgloss.NewStyle().Foreground(colorInfo),
	}
}
