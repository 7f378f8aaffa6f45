package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlider_ClampsToBounds(t *testing.T) {
	s := NewSlider("amplitude", 0, 1, 0.5)
	var seen []float64
	s.OnChanged(func(v float64) error {
		seen = append(seen, v)
		return nil
	})

	require.NoError(t, s.Set(3))
	assert.Equal(t, 1.0, s.Value())
	require.NoError(t, s.Set(-3))
	assert.Equal(t, 0.0, s.Value())
	assert.Equal(t, []float64{1, 0}, seen)
}

func TestSlider_InitialClamped(t *testing.T) {
	s := NewSlider("k", 0, 20, 42)
	assert.Equal(t, 20.0, s.Initial())
	assert.Equal(t, 20.0, s.Value())
}

func TestSlider_NudgeUsesRangeStep(t *testing.T) {
	s := NewSlider("k", 0, 20, 1)
	assert.InDelta(t, 0.02, s.Step(), 1e-12)

	require.NoError(t, s.Nudge(10))
	assert.InDelta(t, 1.2, s.Value(), 1e-9)
	require.NoError(t, s.Nudge(-1000))
	assert.Equal(t, 0.0, s.Value())
}

func TestSlider_Reset(t *testing.T) {
	s := NewSlider("k", 0, 20, 3)
	calls := 0
	s.OnChanged(func(float64) error {
		calls++
		return nil
	})
	require.NoError(t, s.Set(7))
	require.NoError(t, s.Reset())
	assert.Equal(t, 3.0, s.Value())
	assert.Equal(t, 2, calls)
}

func TestSlider_ObserverErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	s := NewSlider("k", 0, 1, 0)
	second := false
	s.OnChanged(func(float64) error { return boom })
	s.OnChanged(func(float64) error {
		second = true
		return nil
	})

	assert.ErrorIs(t, s.Set(0.5), boom)
	assert.False(t, second)
	assert.Equal(t, 0.5, s.Value())
}

func TestSlider_FractionAndFormat(t *testing.T) {
	s := NewSlider("k", 10, 20, 12.5)
	assert.InDelta(t, 0.25, s.Fraction(), 1e-12)
	assert.Equal(t, "12.5", s.Format())
	assert.Equal(t, "3.1416", FormatValue(3.14159265))
	assert.Equal(t, "0", FormatValue(0))
}

func TestButton_Click(t *testing.T) {
	b := NewButton("Reset")
	order := []int{}
	b.OnClicked(func() error { order = append(order, 1); return nil })
	b.OnClicked(func() error { order = append(order, 2); return nil })

	require.NoError(t, b.Click())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, "Reset", b.Label)
}
