package canvas

import (
	"strings"

	"sliderplot/internal/figure"

	"github.com/charmbracelet/lipgloss"
)

// Category20 is the line palette. Line colors from the figure package are
// indices into it.
var Category20 = []lipgloss.Color{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// Style holds the chart chrome styles.
type Style struct {
	Palette []lipgloss.Color
	Title   lipgloss.Style
	Axis    lipgloss.Style
	Label   lipgloss.Style
}

// DefaultStyle returns unstyled chrome with the Category20 palette.
func DefaultStyle() Style {
	return Style{
		Palette: Category20,
		Title:   lipgloss.NewStyle().Bold(true),
		Axis:    lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle(),
	}
}

func (st Style) paint(color int, s string) string {
	if len(st.Palette) == 0 {
		return s
	}
	return lipgloss.NewStyle().Foreground(st.Palette[color%len(st.Palette)]).Render(s)
}

// Minimum plot area in cells.
const (
	minPlotCols = 4
	minPlotRows = 2
)

// Render draws a surface into a block of exactly height lines no wider
// than width cells: title, y label, plot with y ticks, x axis with ticks,
// x label and legend. Lines it cannot fit are dropped from the bottom up.
// Each cursor value inside the x range is marked with a dotted column.
func Render(s *figure.Surface, width, height int, st Style, cursor ...float64) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lim := s.Limits
	if !lim.Valid() {
		lim = figure.Limits{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	}

	var header []string
	if s.Title != "" {
		header = append(header, st.Title.Render(center(truncate(s.Title, width), width)))
	}
	if s.YLabel != "" {
		header = append(header, st.Label.Render(truncate(s.YLabel, width)))
	}
	legend := legendLine(s, width, st)

	// axis and tick labels are mandatory, the x label and legend are not
	fixed := len(header) + 2
	optional := 0
	if s.XLabel != "" {
		optional++
	}
	if legend != "" {
		optional++
	}
	plotRows := height - fixed - optional
	for plotRows < minPlotRows && optional > 0 {
		optional--
		plotRows++
	}
	if plotRows < minPlotRows {
		return placeholder("window too small", width, height)
	}

	yTicks, yStep := Ticks(lim.YMin, lim.YMax, max(plotRows/3, 2))
	yLabels := make(map[int]string, len(yTicks))
	margin := 0
	for _, v := range yTicks {
		row := round((lim.YMax-v)/(lim.YMax-lim.YMin)*float64(plotRows*4-1)) / 4
		label := FormatTick(v, yStep)
		if _, taken := yLabels[row]; taken {
			continue
		}
		yLabels[row] = label
		margin = max(margin, len(label))
	}
	plotCols := width - margin - 1
	if plotCols < minPlotCols {
		return placeholder("window too small", width, height)
	}

	c := New(plotCols, plotRows)
	vp := Viewport{XMin: lim.XMin, XMax: lim.XMax, YMin: lim.YMin, YMax: lim.YMax}
	dotW, dotH := c.DotSize()
	for _, cx := range cursor {
		if !finite(cx) || cx < lim.XMin || cx > lim.XMax {
			continue
		}
		col := round((cx - lim.XMin) / (lim.XMax - lim.XMin) * float64(dotW-1))
		for y := 0; y < dotH; y += 2 {
			c.Set(col, y, NoColor)
		}
	}
	for _, l := range s.Lines {
		x, y := l.Data()
		c.Series(vp, x, y, l.Color)
	}

	lines := append([]string(nil), header...)
	for row, body := range c.Rows(st.paint) {
		label, tick := yLabels[row]
		axis := "│"
		if tick {
			axis = "┤"
		}
		lines = append(lines, st.Axis.Render(padLeft(label, margin)+axis)+body)
	}

	xTicks, xStep := Ticks(lim.XMin, lim.XMax, max(plotCols/10, 2))
	axisRow := []rune(strings.Repeat("─", plotCols))
	labelRow := []rune(strings.Repeat(" ", plotCols))
	nextFree := 0
	for _, v := range xTicks {
		col := round((v-lim.XMin)/(lim.XMax-lim.XMin)*float64(plotCols*2-1)) / 2
		if col < 0 || col >= plotCols {
			continue
		}
		axisRow[col] = '┬'
		label := []rune(FormatTick(v, xStep))
		start := col - len(label)/2
		start = min(max(start, 0), plotCols-len(label))
		if start < nextFree || start < 0 {
			continue
		}
		copy(labelRow[start:], label)
		nextFree = start + len(label) + 1
	}
	lines = append(lines,
		st.Axis.Render(strings.Repeat(" ", margin)+"└"+string(axisRow)),
		st.Axis.Render(strings.Repeat(" ", margin+1)+string(labelRow)),
	)

	if optional > 0 && s.XLabel != "" {
		lines = append(lines, st.Label.Render(strings.Repeat(" ", margin+1)+center(truncate(s.XLabel, plotCols), plotCols)))
		optional--
	}
	if optional > 0 && legend != "" {
		lines = append(lines, legend)
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

// legendLine lists the labeled lines with a colored marker each, or returns
// "" when no line has a label.
func legendLine(s *figure.Surface, width int, st Style) string {
	var parts []string
	used := 0
	for _, l := range s.Lines {
		if l.Label == "" {
			continue
		}
		entry := "── " + l.Label
		n := len([]rune(entry))
		if used > 0 {
			n += 2
		}
		if used+n > width {
			break
		}
		used += n
		parts = append(parts, st.paint(l.Color, "──")+" "+l.Label)
	}
	return strings.Join(parts, "  ")
}

func placeholder(msg string, width, height int) string {
	lines := make([]string, height)
	lines[height/2] = center(truncate(msg, width), width)
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func center(s string, width int) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(width-len(s), 0)) + s
}
