// Package report summarizes a session as markdown and renders it for the
// terminal.
package report

import (
	"fmt"
	"strings"

	"sliderplot/internal/session"
	"sliderplot/internal/widget"

	"github.com/charmbracelet/glamour"
)

// Markdown describes the session's parameters, output shape and surfaces.
func Markdown(title string, s *session.Session) string {
	var b strings.Builder
	if title == "" {
		title = "Sliderplot session"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Session `%s`\n\n", s.ID)

	b.WriteString("## Parameters\n\n")
	if len(s.Sliders()) == 0 {
		b.WriteString("The function takes no parameters.\n\n")
	} else {
		b.WriteString("| # | name | min | max | step | initial | source |\n")
		b.WriteString("|---|------|-----|-----|------|---------|--------|\n")
		params := s.Params()
		for i, sl := range s.Sliders() {
			source := "fallback"
			if params[i].Declared {
				source = "declared"
			}
			fmt.Fprintf(&b, "| %d | `%s` | %s | %s | %s | %s | %s |\n",
				i+1, sl.Name,
				widget.FormatValue(sl.Min), widget.FormatValue(sl.Max),
				widget.FormatValue(sl.Step()), sl.Format(), source)
		}
		b.WriteString("\n")
	}

	fig := s.Figure()
	b.WriteString("## Output\n\n")
	fmt.Fprintf(&b, "- Shape: **%s**\n", fig.Kind)
	fmt.Fprintf(&b, "- Surfaces: %d (%s)\n", len(fig.Surfaces), fig.Arrangement)
	fmt.Fprintf(&b, "- Lines: %d\n\n", len(fig.Lines()))

	b.WriteString("| surface | title | x axis | y axis | lines | points |\n")
	b.WriteString("|---------|-------|--------|--------|-------|--------|\n")
	for _, sf := range fig.Surfaces {
		points := make([]string, len(sf.Lines))
		for i, l := range sf.Lines {
			points[i] = fmt.Sprint(l.Len())
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %d | %s |\n",
			sf.Index+1, cell(sf.Title), cell(sf.XLabel), cell(sf.YLabel),
			len(sf.Lines), strings.Join(points, ", "))
	}
	return b.String()
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

// Render formats markdown for a terminal of the given width.
func Render(md string, width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}
