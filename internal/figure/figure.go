// Package figure builds rendering surfaces from a classified output and owns
// the line buffers that recomputation overwrites in place.
package figure

import (
	"errors"
	"fmt"
	"math"

	"sliderplot/internal/shape"
)

// ErrShapeChanged is returned when a recomputed output does not carry the
// same number of lines as the figure was built with.
var ErrShapeChanged = errors.New("figure: output shape changed between calls")

// Arrangement places multiple surfaces next to each other or stacked.
type Arrangement string

const (
	Column Arrangement = "column"
	Row    Arrangement = "row"
)

// AxisLabels holds the x and y axis names of one surface. Empty names are
// left unset.
type AxisLabels struct {
	X string
	Y string
}

// Options are applied once at build time.
type Options struct {
	Titles      []string
	AxesLabels  []AxisLabels
	Arrangement Arrangement
}

// Figure is the set of surfaces for one session.
type Figure struct {
	Kind        shape.Kind
	Arrangement Arrangement
	Surfaces    []*Surface

	lines []*Line
}

// Surface is one plotting area and the lines drawn on it.
type Surface struct {
	Index  int
	Title  string
	XLabel string
	YLabel string
	Lines  []*Line

	// Limits is the range shown. Relim leaves it alone while manual is set.
	Limits Limits
	manual bool
}

// Limits is the data range shown on a surface.
type Limits struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Valid reports whether both ranges are finite and non-empty.
func (l Limits) Valid() bool {
	return finite(l.XMin) && finite(l.XMax) && finite(l.YMin) && finite(l.YMax) &&
		l.XMin < l.XMax && l.YMin < l.YMax
}

// Line is the handle of one rendered curve. Its buffers are overwritten on
// every update; the handle itself is never replaced.
type Line struct {
	ID      int
	Label   string
	Color   int
	Surface *Surface

	x       []float64
	y       []float64
	version int
}

// Data returns the current buffers. Callers must not modify them.
func (l *Line) Data() (x, y []float64) {
	return l.x, l.y
}

// Len returns the number of points in the buffers.
func (l *Line) Len() int {
	return len(l.x)
}

// Version increments on every SetData call.
func (l *Line) Version() int {
	return l.version
}

// SetData copies x and y into the line buffers, reusing their capacity.
func (l *Line) SetData(x, y []float64) {
	l.x = append(l.x[:0], x...)
	l.y = append(l.y[:0], y...)
	l.version++
}

// paletteSize must match the palette length used by renderers.
const paletteSize = 20

// colorIndex walks even palette slots first, then odd ones.
func colorIndex(i int) int {
	i %= paletteSize
	half := paletteSize / 2
	if i < half {
		return i * 2
	}
	return (i-half)*2 + 1
}

// Build creates one surface per output group and one line handle per pair.
func Build(out shape.Output, opts Options) *Figure {
	arr := opts.Arrangement
	if arr == "" {
		arr = Column
	}
	fig := &Figure{Kind: out.Kind, Arrangement: arr}

	id := 0
	for gi, group := range out.Groups {
		s := &Surface{Index: gi}
		if gi < len(opts.Titles) {
			s.Title = opts.Titles[gi]
		}
		if gi < len(opts.AxesLabels) {
			s.XLabel = opts.AxesLabels[gi].X
			s.YLabel = opts.AxesLabels[gi].Y
		}
		for li, data := range group {
			l := &Line{ID: id, Label: data.Label, Color: colorIndex(li), Surface: s}
			l.SetData(data.X, data.Y)
			s.Lines = append(s.Lines, l)
			fig.lines = append(fig.lines, l)
			id++
		}
		s.Relim()
		fig.Surfaces = append(fig.Surfaces, s)
	}
	return fig
}

// Lines returns every line handle in the order Output.Lines flattens them.
func (f *Figure) Lines() []*Line {
	return f.lines
}

// Apply overwrites every line buffer with the recomputed output and
// rescales each surface. Nothing is written when the line count differs.
func (f *Figure) Apply(out shape.Output) error {
	lines := out.Lines()
	if len(lines) != len(f.lines) {
		return fmt.Errorf("%w: built with %d lines, got %d", ErrShapeChanged, len(f.lines), len(lines))
	}
	for i, data := range lines {
		f.lines[i].SetData(data.X, data.Y)
	}
	for _, s := range f.Surfaces {
		s.Relim()
	}
	return nil
}

// Snapshot returns the current buffers as a typed output with the figure's
// layout, suitable for export.
func (f *Figure) Snapshot() shape.Output {
	out := shape.Output{Kind: f.Kind, Groups: make([][]shape.Line, len(f.Surfaces))}
	for i, s := range f.Surfaces {
		group := make([]shape.Line, len(s.Lines))
		for j, l := range s.Lines {
			x, y := l.Data()
			group[j] = shape.Line{
				X:     append([]float64(nil), x...),
				Y:     append([]float64(nil), y...),
				Label: l.Label,
			}
		}
		out.Groups[i] = group
	}
	return out
}

// Relim recomputes the data limits from the finite points of every line and
// pads degenerate ranges so they can be drawn. It does nothing after a zoom
// or pan until ResetView.
func (s *Surface) Relim() {
	if s.manual {
		return
	}
	lim := Limits{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	for _, l := range s.Lines {
		for i := range l.x {
			x, y := l.x[i], l.y[i]
			if !finite(x) || !finite(y) {
				continue
			}
			lim.XMin = math.Min(lim.XMin, x)
			lim.XMax = math.Max(lim.XMax, x)
			lim.YMin = math.Min(lim.YMin, y)
			lim.YMax = math.Max(lim.YMax, y)
		}
	}
	if math.IsInf(lim.XMin, 1) {
		s.Limits = Limits{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
		return
	}
	lim.XMin, lim.XMax = pad(lim.XMin, lim.XMax)
	lim.YMin, lim.YMax = pad(lim.YMin, lim.YMax)
	s.Limits = lim
}

// Manual reports whether the shown range was set by Zoom or Pan.
func (s *Surface) Manual() bool {
	return s.manual
}

// Zoom scales the shown range about its center. A factor below 1 zooms in.
func (s *Surface) Zoom(factor float64) {
	if !(factor > 0) || !s.Limits.Valid() {
		return
	}
	l := s.Limits
	cx, hx := (l.XMin+l.XMax)/2, (l.XMax-l.XMin)/2*factor
	cy, hy := (l.YMin+l.YMax)/2, (l.YMax-l.YMin)/2*factor
	next := Limits{XMin: cx - hx, XMax: cx + hx, YMin: cy - hy, YMax: cy + hy}
	if !next.Valid() {
		return
	}
	s.Limits = next
	s.manual = true
}

// Pan shifts the shown range by fractions of its width and height.
func (s *Surface) Pan(fx, fy float64) {
	if !s.Limits.Valid() {
		return
	}
	l := s.Limits
	dx, dy := (l.XMax-l.XMin)*fx, (l.YMax-l.YMin)*fy
	next := Limits{XMin: l.XMin + dx, XMax: l.XMax + dx, YMin: l.YMin + dy, YMax: l.YMax + dy}
	if !next.Valid() {
		return
	}
	s.Limits = next
	s.manual = true
}

// ResetView drops a zoom or pan and rescales to the data.
func (s *Surface) ResetView() {
	s.manual = false
	s.Relim()
}

// Nearest returns the finite point whose x is closest to x.
func (l *Line) Nearest(x float64) (px, py float64, ok bool) {
	best := math.Inf(1)
	for i := range l.x {
		if !finite(l.x[i]) || !finite(l.y[i]) {
			continue
		}
		if d := math.Abs(l.x[i] - x); d < best {
			best, px, py, ok = d, l.x[i], l.y[i], true
		}
	}
	return px, py, ok
}

func pad(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	d := math.Abs(lo) * 0.05
	if d == 0 {
		d = 0.5
	}
	return lo - d, hi + d
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
