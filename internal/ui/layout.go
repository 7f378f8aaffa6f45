package ui

import "sliderplot/internal/figure"

// Layout constants, in cells.
const (
	HeaderHeight    = 1
	StatusBarHeight = 1
	HelpPaneHeight  = 1

	// Slider panel
	SliderRows       = 2 // name/value line and track
	ButtonRows       = 1
	EditRows         = 1
	PanelBorderWidth = 2 // border and padding
	DividerRows      = 1 // between plots and panel in compact mode
	MinPanelWidth    = 24
	MaxPanelWidth    = 48

	// Below this width the slider panel moves under the plots
	CompactModeWidth = 100

	MinimumTerminalWidth  = 40
	MinimumTerminalHeight = 12
)

// LayoutConfig provides computed layout dimensions based on terminal size.
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool

	PlotWidth   int
	PlotHeight  int
	PanelWidth  int
	PanelHeight int
}

// NewLayoutConfig splits the terminal between plots and the slider panel.
func NewLayoutConfig(width, height, sliders int, panelRatio float64, showHelp bool) LayoutConfig {
	l := LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
	body := height - HeaderHeight - StatusBarHeight
	if showHelp {
		body -= HelpPaneHeight
	}
	panelRows := sliders*SliderRows + ButtonRows + EditRows

	if l.IsCompact {
		l.PanelWidth = width
		l.PanelHeight = min(panelRows, max(body/2, 0))
		l.PlotWidth = width
		l.PlotHeight = body - l.PanelHeight - DividerRows
	} else {
		if panelRatio <= 0 || panelRatio >= 1 {
			panelRatio = 0.3
		}
		l.PanelWidth = min(max(int(float64(width)*panelRatio), MinPanelWidth), MaxPanelWidth)
		l.PanelHeight = body
		l.PlotWidth = width - l.PanelWidth
		l.PlotHeight = body
	}
	l.PlotWidth = max(l.PlotWidth, 0)
	l.PlotHeight = max(l.PlotHeight, 0)
	return l
}

// TooSmall reports whether the terminal is below the minimum size.
func (l LayoutConfig) TooSmall() bool {
	return l.TerminalWidth < MinimumTerminalWidth || l.TerminalHeight < MinimumTerminalHeight
}

// SurfaceSizes splits the plot area between n surfaces: side by side in a
// row, stacked in a column. Remainders go to the last surface.
func SurfaceSizes(width, height, n int, arr figure.Arrangement) [][2]int {
	if n <= 0 {
		return nil
	}
	sizes := make([][2]int, n)
	for i := range sizes {
		if arr == figure.Row {
			w := width / n
			if i == n-1 {
				w = width - w*(n-1)
			}
			sizes[i] = [2]int{w, height}
		} else {
			h := height / n
			if i == n-1 {
				h = height - h*(n-1)
			}
			sizes[i] = [2]int{width, h}
		}
	}
	return sizes
}

// TrackWidth is the width of a slider track inside the panel.
func TrackWidth(panelWidth int) int {
	return max(panelWidth-PanelBorderWidth, 4)
}
