// Package sliderplot plots the curves returned by a Go function and binds
// one interactive slider per function parameter.
//
//	view, err := sliderplot.Plot(func(amplitude, frequency float64) [][]float64 {
//		...
//		return [][]float64{x, y}
//	}, sliderplot.WithNames("amplitude", "frequency"))
//	if err != nil { ... }
//	err = view.Run(ctx)
//
// The function's result layout is inferred from its nesting depth: a single
// series, one (x, y) pair, several pairs on one plot, or groups of pairs on
// one plot each. The typed constructors Series, XY, Lines and Plots skip the
// inference.
package sliderplot

import (
	"context"
	"fmt"

	"sliderplot/internal/config"
	"sliderplot/internal/export"
	"sliderplot/internal/figure"
	"sliderplot/internal/report"
	"sliderplot/internal/session"
	"sliderplot/internal/shape"
	"sliderplot/internal/signature"
	"sliderplot/internal/ui"
	"sliderplot/internal/widget"
)

// Line is one curve; Output is a typed function result.
type (
	Line   = shape.Line
	Output = shape.Output
)

// Typed result constructors.
var (
	Series = shape.Series
	XY     = shape.XY
	Lines  = shape.Lines
	Plots  = shape.Plots
)

var (
	// ErrDivisionByZero may be returned by a plot function to skip an update
	// silently.
	ErrDivisionByZero = session.ErrDivisionByZero
	// ErrShapeChanged is returned when a recompute changes the line layout.
	ErrShapeChanged = figure.ErrShapeChanged
)

// View is a constructed figure with its sliders.
type View struct {
	sess     *session.Session
	settings settings
}

// Plot calls fn with its initial parameter values, builds the figure and
// one slider per parameter. fn is either a function with numeric parameters
// returning a value or (value, error), or a func([]float64) (any, error)
// together with WithNames.
func Plot(fn any, opts ...Option) (*View, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	call, names, err := adapt(fn, s.names)
	if err != nil {
		return nil, err
	}

	bounds := make([]session.Bound, len(s.bounds))
	for i, b := range s.bounds {
		bounds[i] = session.Bound{Min: b[0], Max: b[1]}
	}
	axes := make([]figure.AxisLabels, len(s.axesLabels))
	for i, a := range s.axesLabels {
		axes[i] = figure.AxisLabels{X: a[0], Y: a[1]}
	}

	sess, err := session.New(call, signature.Inspect(names, s.defaults), session.Options{
		Bounds: bounds,
		Figure: figure.Options{
			Titles:      s.titles,
			AxesLabels:  axes,
			Arrangement: figure.Arrangement(s.layout),
		},
	})
	if err != nil {
		return nil, err
	}
	return &View{sess: sess, settings: s}, nil
}

// Show builds the view and runs it.
func Show(ctx context.Context, fn any, opts ...Option) error {
	v, err := Plot(fn, opts...)
	if err != nil {
		return err
	}
	return v.Run(ctx)
}

func adapt(fn any, names []string) (session.Func, []string, error) {
	if call, ok := fn.(func([]float64) (any, error)); ok {
		if names == nil {
			return nil, nil, fmt.Errorf("%w: a func([]float64) (any, error) needs WithNames", signature.ErrBadParam)
		}
		return call, names, nil
	}
	call, sig, err := session.FromFunc(fn)
	if err != nil {
		return nil, nil, err
	}
	if names == nil {
		names = signature.PositionalNames(sig.Arity())
	}
	if len(names) != sig.Arity() {
		return nil, nil, fmt.Errorf("%w: %d names for %d parameters", signature.ErrBadParam, len(names), sig.Arity())
	}
	return call, names, nil
}

// Run displays the view on the terminal until the user quits. It returns
// immediately when the view was built with WithShow(false).
func (v *View) Run(ctx context.Context) error {
	if !v.settings.show {
		return nil
	}
	defaults := config.DefaultUIConfig()
	opts := ui.Options{
		PageTitle:        v.settings.pageTitle,
		Theme:            ui.ThemeFor(config.UIConfig{DarkMode: v.settings.dark}.IsDark()),
		SliderPanelRatio: defaults.SliderPanelRatio,
		ShowHelp:         defaults.ShowHelp,
	}
	return runView(ctx, v.sess, opts)
}

var runView = ui.Run

// Sliders returns the controls in parameter order.
func (v *View) Sliders() []*widget.Slider {
	return v.sess.Sliders()
}

// Slider returns the control of a named parameter.
func (v *View) Slider(name string) (*widget.Slider, bool) {
	for _, sl := range v.sess.Sliders() {
		if sl.Name == name {
			return sl, true
		}
	}
	return nil, false
}

// Set moves a named slider and recomputes.
func (v *View) Set(name string, value float64) error {
	sl, ok := v.Slider(name)
	if !ok {
		return fmt.Errorf("no parameter %q", name)
	}
	return sl.Set(value)
}

// Reset restores every slider to its initial value.
func (v *View) Reset() error {
	return v.sess.Reset()
}

// Output returns a copy of the current curves.
func (v *View) Output() Output {
	return v.sess.Figure().Snapshot()
}

// Figure returns the rendering surfaces.
func (v *View) Figure() *figure.Figure {
	return v.sess.Figure()
}

// Export writes the current figure to path as PNG or SVG, one file per
// surface.
func (v *View) Export(ctx context.Context, path string, width, height int) ([]string, error) {
	return export.Figure(ctx, v.sess.Figure(), path, export.Options{Width: width, Height: height})
}

// Report returns a markdown summary of the parameters and surfaces.
func (v *View) Report() string {
	return report.Markdown(v.settings.pageTitle, v.sess)
}
