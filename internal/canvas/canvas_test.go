package canvas

import (
	"math"
	"strings"
	"testing"

	"sliderplot/internal/figure"
	"sliderplot/internal/shape"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_SetMapsDotsToBraille(t *testing.T) {
	c := New(2, 1)
	c.Set(0, 0, 3)
	r, color := c.Cell(0, 0)
	assert.Equal(t, '⠁', r)
	assert.Equal(t, 3, color)

	c.Set(1, 3, 3)
	r, _ = c.Cell(0, 0)
	assert.Equal(t, rune(brailleBase|0x01|0x80), r)

	r, color = c.Cell(1, 0)
	assert.Equal(t, ' ', r)
	assert.Equal(t, NoColor, color)
}

func TestCanvas_SetOutsideIsIgnored(t *testing.T) {
	c := New(1, 1)
	c.Set(-1, 0, 0)
	c.Set(2, 0, 0)
	c.Set(0, 4, 0)
	assert.Equal(t, " ", c.String())
}

func TestCanvas_LineCoversEndpoints(t *testing.T) {
	c := New(4, 1)
	c.Line(0, 0, 7, 3, 1)
	for _, cell := range []int{0, 3} {
		r, color := c.Cell(cell, 0)
		assert.NotEqual(t, ' ', r, "cell %d", cell)
		assert.Equal(t, 1, color)
	}

	c.Clear()
	assert.Equal(t, "    ", c.String())
}

func TestCanvas_RowsGroupColorRuns(t *testing.T) {
	c := New(3, 1)
	c.Set(0, 0, 1)
	c.Set(2, 0, 1)
	c.Set(4, 0, 2)

	var runs []string
	c.Rows(func(color int, s string) string {
		runs = append(runs, s)
		return s
	})
	assert.Equal(t, []string{"⠁⠁", "⠁"}, runs)
}

func TestSeries_NonFinitePointsBreakTheLine(t *testing.T) {
	vp := Viewport{XMin: 0, XMax: 3, YMin: 0, YMax: 1}

	solid := New(4, 1)
	solid.Series(vp, []float64{0, 1, 2, 3}, []float64{0, 0, 0, 0}, 0)

	broken := New(4, 1)
	broken.Series(vp, []float64{0, 1, 2, 3}, []float64{0, math.NaN(), math.Inf(1), 0}, 0)

	assert.NotEqual(t, solid.String(), broken.String())
	r, _ := broken.Cell(2, 0)
	assert.Equal(t, ' ', r)
}

func TestSeries_InvalidViewportDrawsNothing(t *testing.T) {
	c := New(2, 1)
	c.Series(Viewport{XMin: 1, XMax: 1, YMin: 0, YMax: 1}, []float64{0, 1}, []float64{0, 1}, 0)
	assert.Equal(t, "  ", c.String())
}

func TestClipLine(t *testing.T) {
	x0, y0, x1, y1, ok := ClipLine(-5, 5, 15, 5, 0, 0, 10, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 5, 10, 5}, []float64{x0, y0, x1, y1})

	_, _, _, _, ok = ClipLine(-5, -5, -1, -1, 0, 0, 10, 10)
	assert.False(t, ok)

	x0, y0, x1, y1, ok = ClipLine(2, 2, 3, 3, 0, 0, 10, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{2, 2, 3, 3}, []float64{x0, y0, x1, y1})
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0.9, 1},
		{1.3, 2},
		{3, 5},
		{7, 10},
		{0.03, 0.05},
		{240, 500},
		{0, 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NiceStep(tt.raw), 1e-12, "raw=%v", tt.raw)
	}
}

func TestTicks(t *testing.T) {
	ticks, step := Ticks(0, 10, 5)
	assert.Equal(t, 2.0, step)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, ticks)

	ticks, _ = Ticks(-1, 1, 4)
	assert.Contains(t, ticks, 0.0)

	ticks, _ = Ticks(1, 1, 4)
	assert.Nil(t, ticks)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "0", FormatTick(0, 1))
	assert.Equal(t, "4", FormatTick(4, 2))
	assert.Equal(t, "0.5", FormatTick(0.5, 0.5))
	assert.Equal(t, "-0.25", FormatTick(-0.25, 0.05))
	assert.Equal(t, "2e+05", FormatTick(2e5, 1e5))
	assert.Equal(t, "", FormatTick(math.Inf(1), 1))
}

func buildSurface(t *testing.T, out shape.Output, opts figure.Options) *figure.Surface {
	t.Helper()
	fig := figure.Build(out, opts)
	require.NotEmpty(t, fig.Surfaces)
	return fig.Surfaces[0]
}

func TestRender_Layout(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 4, 9, 16}
	out := shape.Lines(shape.Line{X: x, Y: y, Label: "square"}, shape.Line{X: x, Y: x, Label: "id"})
	s := buildSurface(t, out, figure.Options{
		Titles:     []string{"Growth"},
		AxesLabels: []figure.AxisLabels{{X: "time", Y: "value"}},
	})

	got := Render(s, 40, 16, DefaultStyle())
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 16)
	for i, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 40, "line %d: %q", i, l)
	}
	assert.Contains(t, lines[0], "Growth")
	assert.Contains(t, lines[1], "value")
	assert.Contains(t, got, "└")
	assert.Contains(t, got, "time")
	assert.Contains(t, got, "square")
	assert.Contains(t, got, "id")
}

func TestRender_DropsOptionalRowsWhenShort(t *testing.T) {
	x := []float64{0, 1}
	s := buildSurface(t, shape.Lines(shape.Line{X: x, Y: x, Label: "a"}), figure.Options{
		AxesLabels: []figure.AxisLabels{{X: "time"}},
	})

	got := Render(s, 30, 4, DefaultStyle())
	assert.Len(t, strings.Split(got, "\n"), 4)
	assert.NotContains(t, got, "time")
}

func TestRender_TooSmall(t *testing.T) {
	s := buildSurface(t, shape.Series([]float64{1, 2, 3}), figure.Options{})
	got := Render(s, 3, 3, DefaultStyle())
	assert.Len(t, strings.Split(got, "\n"), 3)
	assert.Equal(t, "", Render(s, 0, 10, DefaultStyle()))
}

func TestRender_CursorColumn(t *testing.T) {
	s := buildSurface(t, shape.XY([]float64{0, 10}, []float64{0, 0}), figure.Options{})

	plain := Render(s, 30, 10, Style{})
	marked := Render(s, 30, 10, Style{}, 5)
	assert.NotEqual(t, plain, marked)
	// every other dot of one dot column, left or right half of the cell
	assert.True(t, strings.ContainsAny(marked, "⠅⠨"), marked)

	assert.Equal(t, plain, Render(s, 30, 10, Style{}, 42), "cursor outside the range")
	assert.Equal(t, plain, Render(s, 30, 10, Style{}, math.NaN()))
}
