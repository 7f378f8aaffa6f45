// Package session binds a plot function to one slider per parameter and
// keeps the figure's line buffers in sync with the slider values.
//
// A session is driven from a single event loop: slider notifications run to
// completion one at a time and nothing here is safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"slices"

	"sliderplot/internal/figure"
	"sliderplot/internal/logging"
	"sliderplot/internal/shape"
	"sliderplot/internal/signature"
	"sliderplot/internal/widget"

	"github.com/google/uuid"
)

// Default slider range for parameters without configured bounds.
const (
	DefaultMin = 0.0
	DefaultMax = 20.0
)

var (
	// ErrDivisionByZero marks a recompute that hit a singular parameter
	// combination. Such updates are skipped silently.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrPanic wraps a recovered panic from the plot function.
	ErrPanic = errors.New("plot function panicked")
	// ErrParamsChanged is returned when a rebind changes the parameter list.
	ErrParamsChanged = errors.New("session: parameters changed")
	// ErrRebindSingular is returned when a rebind can not be checked because
	// the new function divides by zero at the current slider values.
	ErrRebindSingular = errors.New("session: new function is singular at the current values")
)

// Func is a plot function called positionally with the slider values.
type Func func(args []float64) (any, error)

// Bound is a slider range.
type Bound struct {
	Min float64
	Max float64
}

// Options configure a session at construction time.
type Options struct {
	// Bounds are positional; parameters beyond them use [DefaultMin, DefaultMax]
	Bounds []Bound
	Figure figure.Options
}

// Stats counts what the notification path has done.
type Stats struct {
	Recomputes int
	Skipped    int
	Resets     int
}

// Session owns the function, its controls and the figure.
type Session struct {
	ID string

	fn      Func
	params  []signature.Param
	sliders []*widget.Slider
	reset   *widget.Button
	fig     *figure.Figure

	redraw []func()
	stats  Stats
	log    *logging.Logger
}

// New calls fn once with the initial parameter values, classifies the
// result and builds the figure and controls. A classification failure or
// any error from the initial call aborts construction.
func New(fn Func, params []signature.Param, opts Options) (*Session, error) {
	s := &Session{
		ID:     uuid.NewString(),
		fn:     fn,
		params: params,
		reset:  widget.NewButton("Reset"),
	}
	s.log = logging.Get(logging.CategorySession).With("session_id", s.ID)

	for i, p := range params {
		b := Bound{Min: DefaultMin, Max: DefaultMax}
		if i < len(opts.Bounds) {
			b = opts.Bounds[i]
		}
		sl := widget.NewSlider(p.Name, b.Min, b.Max, p.Initial)
		sl.OnChanged(s.changed)
		s.sliders = append(s.sliders, sl)
	}

	// the slider clamps out of range defaults, so the first call uses the
	// values Reset will restore
	raw, err := invoke(fn, s.Values())
	if err != nil {
		return nil, fmt.Errorf("initial call: %w", err)
	}
	out, err := shape.Classify(raw)
	if err != nil {
		return nil, fmt.Errorf("classify output: %w", err)
	}
	s.fig = figure.Build(out, opts.Figure)
	s.reset.OnClicked(s.resetAll)

	s.log.Info("session started: %d params, %s, %d surfaces, %d lines",
		len(params), out.Kind, len(s.fig.Surfaces), len(s.fig.Lines()))
	return s, nil
}

// Figure returns the figure built at construction.
func (s *Session) Figure() *figure.Figure {
	return s.fig
}

// Params returns the inspected parameters.
func (s *Session) Params() []signature.Param {
	return s.params
}

// Sliders returns one slider per parameter, in declaration order.
func (s *Session) Sliders() []*widget.Slider {
	return s.sliders
}

// ResetButton returns the control that restores the initial values.
func (s *Session) ResetButton() *widget.Button {
	return s.reset
}

// Stats returns the notification counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Values reads the current value of every slider.
func (s *Session) Values() []float64 {
	values := make([]float64, len(s.sliders))
	for i, sl := range s.sliders {
		values[i] = sl.Value()
	}
	return values
}

// OnRedraw registers a callback fired after line buffers were updated.
func (s *Session) OnRedraw(fn func()) {
	s.redraw = append(s.redraw, fn)
}

// Reset clicks the reset button.
func (s *Session) Reset() error {
	return s.reset.Click()
}

func (s *Session) changed(float64) error {
	return s.Update()
}

func (s *Session) resetAll() error {
	s.stats.Resets++
	s.log.Debug("reset to initial values")
	for _, sl := range s.sliders {
		if err := sl.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// Update recomputes the function with the current slider values and writes
// the result into the existing line handles. Division by zero leaves the
// buffers untouched and returns nil; every other failure is returned.
func (s *Session) Update() error {
	values := s.Values()
	raw, err := invoke(s.fn, values)
	if err != nil {
		if errors.Is(err, ErrDivisionByZero) {
			s.stats.Skipped++
			s.log.Debug("skipped update at %v: %v", values, err)
			return nil
		}
		return fmt.Errorf("plot function: %w", err)
	}
	out, err := shape.Classify(raw)
	if err != nil {
		return fmt.Errorf("classify output: %w", err)
	}
	if err := s.fig.Apply(out); err != nil {
		return err
	}
	s.stats.Recomputes++
	for _, fn := range s.redraw {
		fn()
	}
	return nil
}

// Rebind swaps the plot function, keeping the figure. The new function must
// take the same parameters and produce the same layout at the current
// slider values; otherwise the old function stays bound. A function that
// divides by zero there is rejected too, since its layout is unknown.
func (s *Session) Rebind(fn Func, names []string) error {
	current := make([]string, len(s.params))
	for i, p := range s.params {
		current[i] = p.Name
	}
	if !slices.Equal(current, names) {
		return fmt.Errorf("%w: have %v, got %v", ErrParamsChanged, current, names)
	}

	raw, err := invoke(fn, s.Values())
	if errors.Is(err, ErrDivisionByZero) {
		return fmt.Errorf("%w: %v", ErrRebindSingular, err)
	}
	if err != nil {
		return fmt.Errorf("plot function: %w", err)
	}
	out, err := shape.Classify(raw)
	if err != nil {
		return fmt.Errorf("classify output: %w", err)
	}
	if !out.SameLayout(s.fig.Snapshot()) {
		return fmt.Errorf("%w: %s %v, figure has %s %v",
			figure.ErrShapeChanged, out.Kind, out.Counts(), s.fig.Kind, s.fig.Snapshot().Counts())
	}

	s.fn = fn
	s.log.Info("rebound function")
	return s.Update()
}
