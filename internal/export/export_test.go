package export

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"sliderplot/internal/figure"
	"sliderplot/internal/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func ramp(n int, k float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = k * float64(i)
	}
	return out
}

func TestPaths(t *testing.T) {
	assert.Equal(t, []string{"out/plot.png"}, Paths("out/plot.png", 1))
	assert.Equal(t, []string{"plot_1.svg", "plot_2.svg"}, Paths("plot.svg", 2))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, PNG, FormatFromPath("a/b.PNG"))
	assert.Equal(t, SVG, FormatFromPath("b.svg"))
	assert.Equal(t, Format(""), FormatFromPath("b.jpg"))
}

func TestFigure_WritesOneFilePerSurface(t *testing.T) {
	x := ramp(10, 1)
	fig := figure.Build(shape.Plots(
		[]shape.Line{{X: x, Y: x, Label: "id"}},
		[]shape.Line{{X: x, Y: ramp(10, 2)}, {X: x, Y: ramp(10, 3)}},
	), figure.Options{Titles: []string{"first", "second"}})

	path := filepath.Join(t.TempDir(), "nested", "plot.png")
	paths, err := Figure(context.Background(), fig, path, Options{Width: 320, Height: 200})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic), p)
	}
}

func TestSurface_SVG(t *testing.T) {
	x := ramp(5, 1)
	fig := figure.Build(shape.XY(x, ramp(5, 2)), figure.Options{
		AxesLabels: []figure.AxisLabels{{X: "time", Y: "value"}},
	})

	var buf bytes.Buffer
	require.NoError(t, Surface(&buf, fig.Surfaces[0], Options{Format: SVG, Width: 300, Height: 200}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestSurface_SkipsShortAndNonFiniteLines(t *testing.T) {
	nan := math.NaN()
	fig := figure.Build(shape.Lines(
		shape.Line{X: []float64{0, 1, 2}, Y: []float64{nan, 1, nan}},
		shape.Line{X: []float64{0, 1, 2}, Y: []float64{0, nan, 2}},
	), figure.Options{})

	var buf bytes.Buffer
	require.NoError(t, Surface(&buf, fig.Surfaces[0], Options{Width: 300, Height: 200}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestSurface_Errors(t *testing.T) {
	fig := figure.Build(shape.Series([]float64{1}), figure.Options{})

	err := Surface(&bytes.Buffer{}, fig.Surfaces[0], Options{})
	assert.ErrorIs(t, err, ErrEmptySurface)

	err = Surface(&bytes.Buffer{}, fig.Surfaces[0], Options{Format: "gif"})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Figure(context.Background(), fig, filepath.Join(t.TempDir(), "x.png"), Options{})
	assert.ErrorIs(t, err, ErrEmptySurface)
}
