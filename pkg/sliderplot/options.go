package sliderplot

// Option configures Plot.
type Option func(*settings)

type settings struct {
	names      []string
	defaults   map[string]float64
	bounds     [][2]float64
	titles     []string
	axesLabels [][2]string
	pageTitle  string
	show       bool
	layout     string
	dark       *bool
}

func defaultSettings() settings {
	return settings{
		pageTitle: "Sliderplot",
		show:      true,
		layout:    "column",
	}
}

// WithNames names the parameters in declaration order. Without it they are
// called p1..pN.
func WithNames(names ...string) Option {
	return func(s *settings) { s.names = names }
}

// WithDefaults sets initial slider values by parameter name. Parameters
// without one start at 1.
func WithDefaults(defaults map[string]float64) Option {
	return func(s *settings) { s.defaults = defaults }
}

// WithBounds sets positional [min, max] slider ranges. Parameters past the
// last bound use [0, 20]. Bounds are not validated.
func WithBounds(bounds ...[2]float64) Option {
	return func(s *settings) { s.bounds = bounds }
}

// WithTitles sets positional surface titles.
func WithTitles(titles ...string) Option {
	return func(s *settings) { s.titles = titles }
}

// WithAxesLabels sets positional (x, y) axis labels per surface. An empty
// label is left unset.
func WithAxesLabels(labels ...[2]string) Option {
	return func(s *settings) { s.axesLabels = labels }
}

// WithPageTitle sets the window title.
func WithPageTitle(title string) Option {
	return func(s *settings) { s.pageTitle = title }
}

// WithShow(false) makes Run return without displaying anything.
func WithShow(show bool) Option {
	return func(s *settings) { s.show = show }
}

// WithLayout arranges multiple surfaces in a "column" (default) or a "row".
func WithLayout(layout string) Option {
	return func(s *settings) { s.layout = layout }
}

// WithDarkMode forces the dark or light palette instead of detecting it.
func WithDarkMode(dark bool) Option {
	return func(s *settings) { s.dark = &dark }
}
