// Package canvas rasterizes data series onto braille dots for terminal
// output. Each character cell holds a 2x4 dot matrix and one color.
package canvas

import "strings"

const brailleBase = 0x2800

// NoColor marks a cell nothing has been drawn on.
const NoColor = -1

// dotBits indexes the braille bit for [row][col] within a cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// PaintFunc styles a run of cells that share a color.
type PaintFunc func(color int, s string) string

// Canvas is a braille raster of cols x rows character cells.
type Canvas struct {
	cols, rows int
	dots       []rune
	colors     []int
}

// New returns an empty canvas. Negative sizes are treated as zero.
func New(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	c := &Canvas{
		cols:   cols,
		rows:   rows,
		dots:   make([]rune, cols*rows),
		colors: make([]int, cols*rows),
	}
	c.Clear()
	return c
}

// Size returns the size in character cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// DotSize returns the size in dots.
func (c *Canvas) DotSize() (w, h int) {
	return c.cols * 2, c.rows * 4
}

// Clear removes every dot.
func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
		c.colors[i] = NoColor
	}
}

// Set turns on the dot at (x, y) and colors its cell. Dots outside the
// canvas are ignored.
func (c *Canvas) Set(x, y, color int) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	i := (y/4)*c.cols + x/2
	c.dots[i] |= dotBits[y%4][x%2]
	c.colors[i] = color
}

// Cell returns the braille rune and color of a character cell. Empty cells
// are a space with NoColor.
func (c *Canvas) Cell(col, row int) (rune, int) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return ' ', NoColor
	}
	i := row*c.cols + col
	if c.dots[i] == 0 {
		return ' ', NoColor
	}
	return brailleBase + c.dots[i], c.colors[i]
}

// Line draws a Bresenham line between two dots, inclusive.
func (c *Canvas) Line(x0, y0, x1, y1, color int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rows renders every cell row. Runs of equally colored cells are passed to
// paint together; a nil paint returns the plain runes.
func (c *Canvas) Rows(paint PaintFunc) []string {
	out := make([]string, c.rows)
	var sb, run strings.Builder
	for row := 0; row < c.rows; row++ {
		sb.Reset()
		run.Reset()
		runColor := NoColor
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if paint != nil && runColor != NoColor {
				sb.WriteString(paint(runColor, run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			r, color := c.Cell(col, row)
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(r)
		}
		flush()
		out[row] = sb.String()
	}
	return out
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	return strings.Join(c.Rows(nil), "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
