// Package ui is the interactive terminal view: plots drawn on braille
// canvases next to one slider per parameter.
package ui

import (
	"strings"

	"sliderplot/internal/canvas"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light mode
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#101F38")
	LightAccent     = lipgloss.Color("#1f77b4")
	LightMuted      = lipgloss.Color("#8a93a3")
	LightBorder     = lipgloss.Color("#dce0e5")

	// Dark mode
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#aec7e8")
	DarkAccent     = lipgloss.Color("#ff7f0e")
	DarkMuted      = lipgloss.Color("#6b7a90")
	DarkBorder     = lipgloss.Color("#2a3850")

	// Same in both modes
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#2ca02c")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeFor picks the dark or light theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	Header lipgloss.Style
	Footer lipgloss.Style
	Panel  lipgloss.Style

	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Focused lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style

	Divider lipgloss.Style
	Chart   canvas.Style
}

// NewStyles creates the styles for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Focused: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), false, true).
			BorderForeground(theme.Border),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), false, true).
			BorderForeground(theme.Accent),

		Success: lipgloss.NewStyle().
			Foreground(Success),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Chart: canvas.Style{
			Palette: canvas.Category20,
			Title:   lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
			Axis:    lipgloss.NewStyle().Foreground(theme.Muted),
			Label:   lipgloss.NewStyle().Foreground(theme.Foreground).Italic(true),
		},
	}
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", max(width, 0)))
}
