// Package widget holds the toolkit-neutral controls a session binds to:
// numeric range sliders and momentary buttons with change notifications.
package widget

import (
	"math"
	"strconv"
)

// StepsPerRange is the number of increments a slider's range is split into.
const StepsPerRange = 1000

// ChangeFunc is notified with the new value after a slider moves.
// A returned error stops the notification chain and is passed back to the
// caller that moved the slider.
type ChangeFunc func(value float64) error

// Slider is a bounded numeric control.
type Slider struct {
	Name string
	Min  float64
	Max  float64

	value     float64
	initial   float64
	observers []ChangeFunc
}

// NewSlider returns a slider positioned at initial. The initial value is
// clamped to the bounds like any other value.
func NewSlider(name string, min, max, initial float64) *Slider {
	s := &Slider{Name: name, Min: min, Max: max}
	s.initial = s.clamp(initial)
	s.value = s.initial
	return s
}

// Value returns the current value.
func (s *Slider) Value() float64 {
	return s.value
}

// Initial returns the value the slider was created with.
func (s *Slider) Initial() float64 {
	return s.initial
}

// Step returns the increment used by Nudge.
func (s *Slider) Step() float64 {
	step := (s.Max - s.Min) / StepsPerRange
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 1
	}
	return step
}

// Fraction returns the position of the value within the bounds, in [0, 1].
func (s *Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.value - s.Min) / (s.Max - s.Min)
}

// OnChanged registers a change notification.
func (s *Slider) OnChanged(fn ChangeFunc) {
	s.observers = append(s.observers, fn)
}

// Set moves the slider, clamped to its bounds, and notifies observers.
// Observers fire even when the clamped value equals the current one.
func (s *Slider) Set(v float64) error {
	if math.IsNaN(v) {
		return nil
	}
	s.value = s.clamp(v)
	for _, fn := range s.observers {
		if err := fn(s.value); err != nil {
			return err
		}
	}
	return nil
}

// Nudge moves the slider by n steps.
func (s *Slider) Nudge(n int) error {
	return s.Set(s.value + float64(n)*s.Step())
}

// Reset restores the initial value and notifies observers.
func (s *Slider) Reset() error {
	return s.Set(s.initial)
}

// Format renders the current value with four decimals, trailing zeros
// removed.
func (s *Slider) Format() string {
	return FormatValue(s.value)
}

// FormatValue renders v with up to four decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func (s *Slider) clamp(v float64) float64 {
	if s.Min <= s.Max {
		if v < s.Min {
			return s.Min
		}
		if v > s.Max {
			return s.Max
		}
	}
	return v
}

// ClickFunc is notified when a button is pressed.
type ClickFunc func() error

// Button is a momentary control.
type Button struct {
	Label    string
	handlers []ClickFunc
}

// NewButton returns a button with the given label.
func NewButton(label string) *Button {
	return &Button{Label: label}
}

// OnClicked registers a click notification.
func (b *Button) OnClicked(fn ClickFunc) {
	b.handlers = append(b.handlers, fn)
}

// Click fires every handler in registration order.
func (b *Button) Click() error {
	for _, fn := range b.handlers {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
