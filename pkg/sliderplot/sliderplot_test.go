package sliderplot

import (
	"context"
	"errors"
	"math"
	"testing"

	"sliderplot/internal/session"
	"sliderplot/internal/shape"
	"sliderplot/internal/signature"
	"sliderplot/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wave(amplitude, frequency float64) [][]float64 {
	x := make([]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = float64(i) / 10
		y[i] = amplitude * math.Sin(frequency*x[i])
	}
	return [][]float64{x, y}
}

func TestPlot_NamedParams(t *testing.T) {
	v, err := Plot(wave,
		WithNames("amplitude", "frequency"),
		WithDefaults(map[string]float64{"frequency": 2}),
		WithBounds([2]float64{0, 5}),
		WithTitles("Wave"),
		WithAxesLabels([2]string{"t", ""}),
		WithShow(false),
	)
	require.NoError(t, err)

	sliders := v.Sliders()
	require.Len(t, sliders, 2)
	assert.Equal(t, "amplitude", sliders[0].Name)
	assert.Equal(t, 1.0, sliders[0].Value())
	assert.Equal(t, 5.0, sliders[0].Max)
	assert.Equal(t, 2.0, sliders[1].Value())
	assert.Equal(t, session.DefaultMax, sliders[1].Max)

	surf := v.Figure().Surfaces[0]
	assert.Equal(t, "Wave", surf.Title)
	assert.Equal(t, "t", surf.XLabel)
	assert.Empty(t, surf.YLabel)
	assert.Equal(t, shape.XYPair, v.Output().Kind)
}

func TestPlot_PositionalNames(t *testing.T) {
	v, err := Plot(func(a, b, c float64) []float64 { return []float64{a, b, c} }, WithShow(false))
	require.NoError(t, err)
	var names []string
	for _, sl := range v.Sliders() {
		names = append(names, sl.Name)
	}
	assert.Equal(t, signature.PositionalNames(3), names)
}

func TestPlot_SetAndReset(t *testing.T) {
	v, err := Plot(wave, WithNames("amplitude", "frequency"), WithShow(false))
	require.NoError(t, err)

	require.NoError(t, v.Set("amplitude", 3))
	_, y := v.Figure().Lines()[0].Data()
	assert.InDelta(t, 3*math.Sin(1), y[10], 1e-9)

	assert.Error(t, v.Set("phase", 1))

	require.NoError(t, v.Reset())
	_, y = v.Figure().Lines()[0].Data()
	assert.InDelta(t, math.Sin(1), y[10], 1e-9)
}

func TestPlot_SliceFunc(t *testing.T) {
	fn := func(args []float64) (any, error) {
		return Plots(
			[]Line{{X: []float64{0, 1}, Y: []float64{0, args[0]}}},
			[]Line{{X: []float64{0, 1}, Y: []float64{0, args[1]}, Label: "b"}},
		), nil
	}
	v, err := Plot(fn, WithNames("a", "b"), WithLayout("row"), WithShow(false))
	require.NoError(t, err)
	assert.Len(t, v.Figure().Surfaces, 2)
	assert.Contains(t, v.Report(), "multi-plot")

	_, err = Plot(fn)
	assert.ErrorIs(t, err, signature.ErrBadParam)
}

func TestPlot_Errors(t *testing.T) {
	_, err := Plot(wave, WithNames("only"))
	assert.ErrorIs(t, err, signature.ErrBadParam)

	_, err = Plot(42)
	assert.ErrorIs(t, err, signature.ErrNotFunc)

	_, err = Plot(func(s string) []float64 { return nil })
	assert.ErrorIs(t, err, signature.ErrBadParam)

	boom := errors.New("boom")
	_, err = Plot(func(a float64) ([]float64, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestView_Run(t *testing.T) {
	called := 0
	runView = func(ctx context.Context, sess *session.Session, opts ui.Options, _ ...tea.ProgramOption) error {
		called++
		assert.Equal(t, "Waves", opts.PageTitle)
		assert.True(t, opts.Theme.IsDark)
		return nil
	}
	t.Cleanup(func() { runView = ui.Run })

	hidden, err := Plot(wave, WithNames("a", "f"), WithShow(false))
	require.NoError(t, err)
	require.NoError(t, hidden.Run(context.Background()))
	assert.Equal(t, 0, called)

	require.NoError(t, Show(context.Background(), wave,
		WithNames("a", "f"), WithPageTitle("Waves"), WithDarkMode(true)))
	assert.Equal(t, 1, called)
}
