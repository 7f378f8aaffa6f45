package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sliderplot/internal/canvas"
	"sliderplot/internal/figure"
	"sliderplot/internal/logging"
	"sliderplot/internal/script"
	"sliderplot/internal/session"
	"sliderplot/internal/widget"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configure the view.
type Options struct {
	PageTitle        string
	Theme            Theme
	SliderPanelRatio float64
	ShowHelp         bool
	// Reloads, when set, delivers hot reloaded scripts to rebind.
	Reloads <-chan script.Reload
}

const (
	zoomInFactor  = 0.8
	zoomOutFactor = 1.25
	panStep       = 0.1
	// cursorSteps is how many cursor moves cross the shown x range
	cursorSteps = 50
)

// reloadMsg carries one watcher outcome into the update loop.
type reloadMsg script.Reload

// Model is the bubbletea model of a running session.
type Model struct {
	sess   *session.Session
	opts   Options
	styles Styles
	keys   keyMap
	help   help.Model
	bars   []progress.Model
	input  textinput.Model
	cache  *renderCache

	// focus indexes the sliders; len(sliders) is the reset button
	focus   int
	editing bool

	// plot indexes the surface the view keys act on
	plot     int
	cursor   float64
	cursorOn bool

	width, height int
	status        string
	statusErr     bool
	err           error
}

// New builds the view for a session.
func New(sess *session.Session, opts Options) Model {
	if opts.PageTitle == "" {
		opts.PageTitle = "Sliderplot"
	}
	styles := NewStyles(opts.Theme)

	bars := make([]progress.Model, len(sess.Sliders()))
	for i := range bars {
		bars[i] = progress.New(
			progress.WithSolidFill(string(styles.Theme.Accent)),
			progress.WithoutPercentage(),
		)
	}

	input := textinput.New()
	input.Prompt = "= "
	input.CharLimit = 32

	h := help.New()
	h.ShowAll = false

	return Model{
		sess:   sess,
		opts:   opts,
		styles: styles,
		keys:   defaultKeyMap(),
		help:   h,
		bars:   bars,
		input:  input,
		cache:  newRenderCache(),
		width:  CompactModeWidth,
		height: MinimumTerminalHeight * 2,
	}
}

// Err returns the error that stopped the view, if any.
func (m Model) Err() error {
	return m.err
}

// Focus returns the focused control index. The reset button follows the
// last slider.
func (m Model) Focus() int {
	return m.focus
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Plot returns the index of the surface the view keys act on.
func (m Model) Plot() int {
	return m.plot
}

// Readout lists the point nearest the cursor on each line of the focused
// surface. It is empty while the cursor is hidden.
func (m Model) Readout() string {
	s := m.surface()
	if !m.cursorOn || s == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("plot %d x=%s", s.Index+1, widget.FormatValue(m.cursor))}
	for _, l := range s.Lines {
		px, py, ok := l.Nearest(m.cursor)
		if !ok {
			continue
		}
		name := l.Label
		if name == "" {
			name = fmt.Sprintf("#%d", l.ID)
		}
		parts = append(parts, fmt.Sprintf("%s (%s, %s)", name, widget.FormatValue(px), widget.FormatValue(py)))
	}
	return strings.Join(parts, " · ")
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.opts.PageTitle)}
	if m.opts.Reloads != nil {
		cmds = append(cmds, waitForReload(m.opts.Reloads))
	}
	return tea.Batch(cmds...)
}

func waitForReload(ch <-chan script.Reload) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = max(msg.Width-2, 0)
		m.cache.invalidate()
		return m, nil

	case reloadMsg:
		m = m.rebind(script.Reload(msg))
		if m.opts.Reloads == nil {
			return m, nil
		}
		return m, waitForReload(m.opts.Reloads)

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sliders := m.sess.Sliders()
	controls := len(sliders) + 1
	onSlider := m.focus < len(sliders)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.focus = (m.focus - 1 + controls) % controls
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.focus = (m.focus + 1) % controls
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		return m.apply("reset", m.sess.Reset())

	case key.Matches(msg, m.keys.Edit):
		if !onSlider {
			// enter on the reset button presses it
			return m.apply("reset", m.sess.ResetButton().Click())
		}
		m.editing = true
		m.input.SetValue("")
		m.input.Placeholder = sliders[m.focus].Format()
		return m, m.input.Focus()
	}

	if m, ok := m.updateView(msg); ok {
		return m, nil
	}

	if !onSlider {
		return m, nil
	}
	sl := sliders[m.focus]
	switch {
	case key.Matches(msg, m.keys.Left):
		return m.apply(sl.Name, sl.Nudge(-1))
	case key.Matches(msg, m.keys.Right):
		return m.apply(sl.Name, sl.Nudge(1))
	case key.Matches(msg, m.keys.FastLeft):
		return m.apply(sl.Name, sl.Nudge(-10))
	case key.Matches(msg, m.keys.FastRight):
		return m.apply(sl.Name, sl.Nudge(10))
	case key.Matches(msg, m.keys.Min):
		return m.apply(sl.Name, sl.Set(sl.Min))
	case key.Matches(msg, m.keys.Max):
		return m.apply(sl.Name, sl.Set(sl.Max))
	}
	return m, nil
}

// updateView handles the keys that move the focused surface's view. The
// second result reports whether msg was one of them.
func (m Model) updateView(msg tea.KeyMsg) (Model, bool) {
	s := m.surface()
	if s == nil {
		return m, false
	}
	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		s.Zoom(zoomInFactor)
	case key.Matches(msg, m.keys.ZoomOut):
		s.Zoom(zoomOutFactor)
	case key.Matches(msg, m.keys.PanLeft):
		s.Pan(-panStep, 0)
	case key.Matches(msg, m.keys.PanRight):
		s.Pan(panStep, 0)
	case key.Matches(msg, m.keys.PanUp):
		s.Pan(0, panStep)
	case key.Matches(msg, m.keys.PanDown):
		s.Pan(0, -panStep)
	case key.Matches(msg, m.keys.ViewReset):
		s.ResetView()
		m.cursorOn = false
	case key.Matches(msg, m.keys.NextPlot):
		m.plot = (m.plot + 1) % len(m.sess.Figure().Surfaces)
		m.cursorOn = false
	case key.Matches(msg, m.keys.CursorLeft):
		m = m.moveCursor(s, -1)
	case key.Matches(msg, m.keys.CursorRight):
		m = m.moveCursor(s, 1)
	default:
		return m, false
	}
	m.status = ""
	m.statusErr = false
	return m, true
}

// moveCursor shows the cursor at the middle of the x range, or steps it
// within the range once shown.
func (m Model) moveCursor(s *figure.Surface, dir int) Model {
	lim := s.Limits
	if !m.cursorOn {
		m.cursor = (lim.XMin + lim.XMax) / 2
		m.cursorOn = true
		return m
	}
	step := (lim.XMax - lim.XMin) / cursorSteps
	m.cursor = min(max(m.cursor+float64(dir)*step, lim.XMin), lim.XMax)
	return m
}

func (m Model) surface() *figure.Surface {
	surfaces := m.sess.Figure().Surfaces
	if len(surfaces) == 0 {
		return nil
	}
	return surfaces[m.plot%len(surfaces)]
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.editing = false
		m.input.Blur()
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			m.status = fmt.Sprintf("not a number: %q", text)
			m.statusErr = true
			return m, nil
		}
		sl := m.sess.Sliders()[m.focus]
		return m.apply(sl.Name, sl.Set(v))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply records the outcome of a control change. Any error reaching here
// is fatal: it stops the program and is reported by Err.
func (m Model) apply(what string, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		logging.Get(logging.CategoryUI).Error("%s: %v", what, err)
		m.err = fmt.Errorf("%s: %w", what, err)
		return m, tea.Quit
	}
	m.status = ""
	m.statusErr = false
	if what == "reset" {
		m.status = "reset to initial values"
	}
	logging.UIDebug("%s changed, values=%v", what, m.sess.Values())
	return m, nil
}

func (m Model) rebind(r script.Reload) Model {
	if r.Err != nil {
		m.status = "reload failed: " + r.Err.Error()
		m.statusErr = true
		return m
	}
	err := m.sess.Rebind(r.Script.Func, r.Script.Names)
	switch {
	case err == nil:
		m.status = fmt.Sprintf("reloaded %s at %s", r.Script.Path, r.Script.LoadedAt.Format("15:04:05"))
		m.statusErr = false
	case errors.Is(err, session.ErrRebindSingular):
		m.status = "reload rejected: " + err.Error()
		m.statusErr = true
	case errors.Is(err, session.ErrParamsChanged), errors.Is(err, figure.ErrShapeChanged):
		m.status = "reload rejected: " + err.Error() + " (restart to apply)"
		m.statusErr = true
	default:
		m.status = "reload failed: " + err.Error()
		m.statusErr = true
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	hints := ""
	if m.opts.ShowHelp {
		if m.editing {
			hints = m.help.View(editHelp{m.keys})
		} else {
			hints = m.help.View(m.keys)
		}
	}
	hintRows := 0
	if hints != "" {
		hintRows = lipgloss.Height(hints)
	}

	layout := NewLayoutConfig(m.width, m.height-max(hintRows-HelpPaneHeight, 0),
		len(m.sess.Sliders()), m.opts.SliderPanelRatio, m.opts.ShowHelp)
	if layout.TooSmall() {
		return m.styles.Muted.Render(fmt.Sprintf("terminal too small (%dx%d)", m.width, m.height))
	}

	header := m.styles.Header.Render(truncate(m.opts.PageTitle, m.width-2))
	plots := m.renderPlots(layout.PlotWidth, layout.PlotHeight)

	var body string
	if layout.IsCompact {
		panel := m.renderPanel(layout.PanelWidth, layout.PanelHeight)
		body = lipgloss.JoinVertical(lipgloss.Left, plots, m.styles.RenderDivider(layout.PlotWidth), panel)
	} else {
		panel := m.styles.Panel.Height(layout.PanelHeight).
			Render(m.renderPanel(layout.PanelWidth-PanelBorderWidth, layout.PanelHeight))
		body = lipgloss.JoinHorizontal(lipgloss.Top, plots, panel)
	}

	parts := []string{header, body, m.renderStatus()}
	if hints != "" {
		parts = append(parts, m.styles.Footer.Render(hints))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderPlots(width, height int) string {
	fig := m.sess.Figure()
	sizes := SurfaceSizes(width, height, len(fig.Surfaces), fig.Arrangement)
	blocks := make([]string, len(fig.Surfaces))
	for i, s := range fig.Surfaces {
		w, h := sizes[i][0], sizes[i][1]
		var cursor []float64
		if m.cursorOn && i == m.plot%len(fig.Surfaces) {
			cursor = []float64{m.cursor}
		}
		lim := s.Limits
		inputs := []interface{}{w, h, s.Title, s.XLabel, s.YLabel,
			lim.XMin, lim.XMax, lim.YMin, lim.YMax, len(cursor) > 0, m.cursor}
		for _, l := range s.Lines {
			inputs = append(inputs, l.Version())
		}
		blocks[i] = m.cache.render(i, computeKey(inputs...), func() string {
			logging.RenderDebug("render surface %d at %dx%d", i, w, h)
			return lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).
				Render(canvas.Render(s, w, h, m.styles.Chart, cursor...))
		})
	}
	if fig.Arrangement == figure.Row {
		return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m Model) renderPanel(width, height int) string {
	var rows []string
	for i, sl := range m.sess.Sliders() {
		rows = append(rows, m.renderSlider(i, sl, width)...)
	}

	label := m.sess.ResetButton().Label
	if m.focus == len(m.sess.Sliders()) {
		rows = append(rows, m.styles.ButtonFocused.Render(label))
	} else {
		rows = append(rows, m.styles.Button.Render(label))
	}
	if m.editing {
		rows = append(rows, m.input.View())
	}

	// keep the focused slider visible when the panel is short
	if len(rows) > height && height > 0 {
		start := min(max(m.focus*SliderRows-height/2, 0), len(rows)-height)
		rows = rows[start : start+height]
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) renderSlider(i int, sl *widget.Slider, width int) []string {
	name := truncate(sl.Name, max(width-12, 4))
	value := sl.Format()
	style, marker := m.styles.Body, "  "
	if i == m.focus {
		style, marker = m.styles.Focused, "▸ "
	}
	gap := max(width-len([]rune(marker+name))-len(value), 1)
	head := style.Render(marker+name) + strings.Repeat(" ", gap) + style.Render(value)

	lo, hi := widget.FormatValue(sl.Min), widget.FormatValue(sl.Max)
	bar := m.bars[i]
	bar.Width = max(width-len(lo)-len(hi)-4, 4)
	track := "  " + m.styles.Muted.Render(lo) + " " + bar.ViewAs(sl.Fraction()) + " " + m.styles.Muted.Render(hi)
	return []string{head, track}
}

func (m Model) renderStatus() string {
	if m.status == "" && m.cursorOn {
		return m.styles.Footer.Render(m.styles.Title.Render(truncate(m.Readout(), m.width-2)))
	}
	if m.status == "" {
		st := m.sess.Stats()
		text := fmt.Sprintf("%s · %d updates", m.sess.Figure().Kind, st.Recomputes)
		if st.Skipped > 0 {
			text += fmt.Sprintf(" · %d skipped (division by zero)", st.Skipped)
		}
		return m.styles.Footer.Render(truncate(text, m.width-2))
	}
	if m.statusErr {
		return m.styles.Footer.Render(m.styles.Error.Render(truncate(m.status, m.width-2)))
	}
	return m.styles.Footer.Render(m.styles.Success.Render(truncate(m.status, m.width-2)))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
