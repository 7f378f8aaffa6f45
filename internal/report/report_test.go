package report

import (
	"testing"

	"sliderplot/internal/session"
	"sliderplot/internal/shape"
	"sliderplot/internal/signature"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	fn := func(args []float64) (any, error) {
		x := []float64{0, 1, 2}
		return shape.Plots(
			[]shape.Line{{X: x, Y: x}},
			[]shape.Line{{X: x, Y: x}, {X: x, Y: x}},
		), nil
	}
	params := signature.Inspect([]string{"gain", "offset"}, map[string]float64{"gain": 2})
	s, err := session.New(fn, params, session.Options{Bounds: []session.Bound{{Min: -1, Max: 1}}})
	require.NoError(t, err)
	return s
}

func TestMarkdown(t *testing.T) {
	md := Markdown("Demo", newSession(t))

	assert.Contains(t, md, "# Demo")
	assert.Contains(t, md, "| 1 | `gain` | -1 | 1 | 0.002 | 1 | declared |")
	assert.Contains(t, md, "| 2 | `offset` | 0 | 20 | 0.02 | 1 | fallback |")
	assert.Contains(t, md, "- Shape: **multi-plot**")
	assert.Contains(t, md, "- Surfaces: 2 (column)")
	assert.Contains(t, md, "| 2 | - | - | - | 2 | 3, 3 |")
}

func TestRender(t *testing.T) {
	out, err := Render(Markdown("", newSession(t)), 100, true)
	require.NoError(t, err)
	out = ansi.Strip(out)
	assert.Contains(t, out, "Sliderplot session")
	assert.Contains(t, out, "offset")
}
