package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"sliderplot/internal/figure"
	"sliderplot/internal/script"
	"sliderplot/internal/session"
	"sliderplot/internal/signature"
	"sliderplot/internal/widget"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTooHigh = errors.New("too high")

// line plots y = a*x + b and fails when a exceeds 15.
func line(args []float64) (any, error) {
	if args[0] > 15 {
		return nil, errTooHigh
	}
	x := []float64{0, 1, 2, 3}
	y := make([]float64, len(x))
	for i := range x {
		y[i] = args[0]*x[i] + args[1]
	}
	return [][]float64{x, y}, nil
}

func newModel(t *testing.T) Model {
	t.Helper()
	params := signature.Inspect([]string{"a", "b"}, map[string]float64{"a": 2})
	sess, err := session.New(line, params, session.Options{
		Bounds: []session.Bound{{Min: 0, Max: 20}, {Min: -10, Max: 10}},
		Figure: figure.Options{Titles: []string{"Linear"}},
	})
	require.NoError(t, err)
	return New(sess, Options{PageTitle: "Test page", ShowHelp: true, Theme: LightTheme()})
}

func press(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_FocusNavigation(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, 0, m.Focus())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.Focus())

	// reset button follows the last slider
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Focus())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.Focus(), "focus should wrap")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, m.Focus())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.Focus())
}

func TestModel_ArrowKeysStepTheSlider(t *testing.T) {
	m := newModel(t)
	sl := m.sess.Sliders()[0]
	step := sl.Step()

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.InDelta(t, 2+step, sl.Value(), 1e-12)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftRight})
	assert.InDelta(t, 2+11*step, sl.Value(), 1e-12)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.InDelta(t, 2, sl.Value(), 1e-12)

	_, y := m.sess.Figure().Lines()[0].Data()
	assert.InDelta(t, 7, y[3], 1e-9)
	assert.Equal(t, 4, m.sess.Stats().Recomputes)
}

func TestModel_HomeEndClampToBounds(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	sl := m.sess.Sliders()[1]

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, -10.0, sl.Value())

	_, _ = press(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 10.0, sl.Value())
}

func TestModel_EditValue(t *testing.T) {
	m := newModel(t)
	sl := m.sess.Sliders()[0]

	m, _ = press(m, runes("e"))
	require.True(t, m.editing)
	for _, r := range "3.5" {
		m, _ = press(m, runes(string(r)))
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	assert.Equal(t, 3.5, sl.Value())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.editing)
	m, _ = press(m, runes("x"))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 3.5, sl.Value())
	assert.Contains(t, m.Status(), "not a number")

	m, _ = press(m, runes("e"))
	m, _ = press(m, runes("9"))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Equal(t, 3.5, sl.Value())
}

func TestModel_Reset(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyHome})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnd})
	require.Equal(t, 0.0, m.sess.Sliders()[0].Value())
	require.Equal(t, 10.0, m.sess.Sliders()[1].Value())

	m, _ = press(m, runes("r"))
	assert.Equal(t, 2.0, m.sess.Sliders()[0].Value())
	assert.Equal(t, 1.0, m.sess.Sliders()[1].Value())
	assert.Equal(t, "reset to initial values", m.Status())

	// enter on the focused reset button presses it as well
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyHome})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 2, m.Focus())
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1.0, m.sess.Sliders()[1].Value())
	assert.Equal(t, 2, m.sess.Stats().Resets)
}

func TestModel_FatalErrorQuits(t *testing.T) {
	m := newModel(t)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnd})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.Err(), errTooHigh)
}

func TestModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m := newModel(t)
		m, cmd := press(m, msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.NoError(t, m.Err())
	}
}

func TestModel_Reload(t *testing.T) {
	m := newModel(t)

	m, _ = press(m, reloadMsg{Err: errors.New("syntax error")})
	assert.Contains(t, m.Status(), "reload failed")

	doubled := func(args []float64) (any, error) {
		return [][]float64{{0, 1, 2, 3}, {0, 2, 4, 6}}, nil
	}
	loaded := time.Date(2024, 3, 1, 9, 30, 5, 0, time.Local)
	m, _ = press(m, reloadMsg{Script: &script.Script{Path: "plot.go", Func: doubled, Names: []string{"a", "b"}, LoadedAt: loaded}})
	assert.Equal(t, "reloaded plot.go at 09:30:05", m.Status())
	_, y := m.sess.Figure().Lines()[0].Data()
	assert.Equal(t, 6.0, y[3])

	m, _ = press(m, reloadMsg{Script: &script.Script{Path: "plot.go", Func: doubled, Names: []string{"a"}}})
	assert.Contains(t, m.Status(), "reload rejected")
}

func TestModel_ReloadSingularIsRejected(t *testing.T) {
	m := newModel(t)
	singular := func(args []float64) (any, error) {
		return nil, session.ErrDivisionByZero
	}
	m, cmd := press(m, reloadMsg{Script: &script.Script{Path: "plot.go", Func: singular, Names: []string{"a", "b"}}})
	assert.Nil(t, cmd)
	assert.Contains(t, m.Status(), "reload rejected")
	assert.NoError(t, m.Err())

	// the old function still drives the plot
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	require.NoError(t, m.Err())
	_, y := m.sess.Figure().Lines()[0].Data()
	v := m.sess.Values()
	assert.Equal(t, 3*v[0]+v[1], y[3])
}

func TestModel_ZoomPanSurviveSliderMoves(t *testing.T) {
	m := newModel(t)
	s := m.sess.Figure().Surfaces[0]
	fitted := s.Limits

	m, _ = press(m, runes("+"))
	assert.True(t, s.Manual())
	assert.InDelta(t, 0.8*(fitted.XMax-fitted.XMin), s.Limits.XMax-s.Limits.XMin, 1e-9)

	m, _ = press(m, runes("d"))
	zoomed := s.Limits
	assert.Greater(t, zoomed.XMin, fitted.XMin)

	// a slider move recomputes the data but keeps the chosen view
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	require.NoError(t, m.Err())
	assert.Equal(t, zoomed, s.Limits)

	m, _ = press(m, runes("0"))
	assert.False(t, s.Manual())
	_, y := s.Lines[0].Data()
	assert.Equal(t, y[0], s.Limits.YMin)
	assert.Equal(t, y[3], s.Limits.YMax)

	m, _ = press(m, runes("-"))
	assert.Greater(t, s.Limits.XMax-s.Limits.XMin, fitted.XMax-fitted.XMin)
}

func TestModel_CursorReadout(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Empty(t, m.Readout())

	// the first press shows the cursor at the middle of x = 0..3
	m, _ = press(m, runes("."))
	assert.Equal(t, "plot 1 x=1.5 · #0 (1, "+widget.FormatValue(line1(m))+")", m.Readout())

	m, _ = press(m, runes("."))
	assert.Contains(t, m.Readout(), "x=1.56")
	assert.Contains(t, m.Readout(), "#0 (2, ")
	assert.Contains(t, m.View(), "x=1.56")

	m, _ = press(m, runes("0"))
	assert.Empty(t, m.Readout())
}

// line1 is y at x = 1 for the current slider values.
func line1(m Model) float64 {
	v := m.sess.Values()
	return v[0] + v[1]
}

func TestModel_NextPlotCyclesSurfaces(t *testing.T) {
	panels := func(args []float64) (any, error) {
		x := []float64{0, 10}
		return [][][][]float64{
			{{x, {0, args[0]}}},
			{{x, {1, 1}}, {x, {2, 2}}},
		}, nil
	}
	sess, err := session.New(panels, signature.Inspect([]string{"k"}, map[string]float64{"k": 4}), session.Options{})
	require.NoError(t, err)
	m := New(sess, Options{})
	surfaces := sess.Figure().Surfaces
	require.Len(t, surfaces, 2)

	m, _ = press(m, runes("p"))
	assert.Equal(t, 1, m.Plot())

	m, _ = press(m, runes("+"))
	assert.False(t, surfaces[0].Manual())
	assert.True(t, surfaces[1].Manual())

	m, _ = press(m, runes("."))
	assert.Equal(t, "plot 2 x=5 · #1 (0, 1) · #2 (0, 2)", m.Readout())

	m, _ = press(m, runes("p"))
	assert.Equal(t, 0, m.Plot())
	assert.Empty(t, m.Readout())
}

func TestModel_View(t *testing.T) {
	for _, size := range []tea.WindowSizeMsg{{Width: 120, Height: 30}, {Width: 70, Height: 30}} {
		m := newModel(t)
		m, _ = press(m, size)

		view := m.View()
		assert.Contains(t, view, "Test page")
		assert.Contains(t, view, "Linear")
		assert.Contains(t, view, "Reset")
		assert.Contains(t, view, "a")

		lines := strings.Split(view, "\n")
		assert.LessOrEqual(t, len(lines), size.Height, "width %d", size.Width)
		for _, l := range lines {
			assert.LessOrEqual(t, lipgloss.Width(l), size.Width, "width %d: %q", size.Width, l)
		}
	}
}

func TestModel_ViewTooSmall(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Contains(t, m.View(), "too small")
}

func TestRenderCache(t *testing.T) {
	c := newRenderCache()
	calls := 0
	compute := func() string { calls++; return "x" }

	k := computeKey(10, 20, "title", 1.5, true)
	c.render(0, k, compute)
	c.render(0, k, compute)
	assert.Equal(t, 1, calls)

	c.render(0, computeKey(10, 20, "title", 1.5, false), compute)
	assert.Equal(t, 2, calls)

	c.invalidate()
	c.render(0, k, compute)
	assert.Equal(t, 3, calls)
}

func TestSurfaceSizes(t *testing.T) {
	assert.Equal(t, [][2]int{{33, 10}, {33, 10}, {34, 10}}, SurfaceSizes(100, 10, 3, figure.Row))
	assert.Equal(t, [][2]int{{50, 5}, {50, 6}}, SurfaceSizes(50, 11, 2, figure.Column))
	assert.Nil(t, SurfaceSizes(10, 10, 0, figure.Column))
}

func TestThemeFor(t *testing.T) {
	assert.True(t, ThemeFor(true).IsDark)
	assert.False(t, ThemeFor(false).IsDark)
}
