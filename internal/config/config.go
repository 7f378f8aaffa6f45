package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default slider bounds used when a parameter has no configured range.
const (
	DefaultMin = 0.0
	DefaultMax = 20.0
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all sliderplot configuration.
type Config struct {
	// Page/window title passed to the hosting terminal
	PageTitle string `yaml:"page_title"`

	// Show is false to build the view without displaying it
	Show bool `yaml:"show"`

	// Layout arranges multiple surfaces: column or row
	Layout string `yaml:"layout"`

	// Bounds are positional (min, max) pairs, one per parameter
	Bounds []Bound `yaml:"bounds,omitempty"`

	// Titles are positional, one per surface
	Titles []string `yaml:"titles,omitempty"`

	// AxesLabels are positional (x, y) pairs, one per surface
	AxesLabels [][]string `yaml:"axes_labels,omitempty"`

	Script  ScriptConfig  `yaml:"script"`
	Export  ExportConfig  `yaml:"export"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// Bound is a slider range, written as [min, max] in YAML.
type Bound struct {
	Min float64
	Max float64
}

// MarshalYAML writes the bound as a two element sequence.
func (b Bound) MarshalYAML() (interface{}, error) {
	return []float64{b.Min, b.Max}, nil
}

// UnmarshalYAML reads a two element sequence.
func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("bound at line %d: want [min, max], got %d values", node.Line, len(pair))
	}
	b.Min, b.Max = pair[0], pair[1]
	return nil
}

// ScriptConfig configures how plot scripts are loaded.
type ScriptConfig struct {
	// Func is the name of the plot function in the script
	Func string `yaml:"func"`
	// Watch reloads the script when it changes on disk
	Watch bool `yaml:"watch"`
	// Debounce is the settle time before a change is reloaded
	Debounce string `yaml:"debounce"`
}

// ExportConfig configures image export.
type ExportConfig struct {
	Format string `yaml:"format"` // png, svg
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PageTitle: "Sliderplot",
		Show:      true,
		Layout:    "column",

		Script: ScriptConfig{
			Func:     "Plot",
			Watch:    false,
			Debounce: "300ms",
		},

		Export: ExportConfig{
			Format: "png",
			Width:  1024,
			Height: 640,
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			File:      "sliderplot.log",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
			// Fall through with defaults if config file doesn't exist
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if title := os.Getenv("SLIDERPLOT_PAGE_TITLE"); title != "" {
		c.PageTitle = title
	}
	if level := os.Getenv("SLIDERPLOT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
		c.Logging.DebugMode = true
	}
	if file := os.Getenv("SLIDERPLOT_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if dark := os.Getenv("SLIDERPLOT_DARK_MODE"); dark != "" {
		if v, err := strconv.ParseBool(dark); err == nil {
			c.UI.DarkMode = &v
		}
	}
}

// BoundFor returns the configured range of parameter i, or the default.
func (c *Config) BoundFor(i int) Bound {
	if i >= 0 && i < len(c.Bounds) {
		return c.Bounds[i]
	}
	return Bound{Min: DefaultMin, Max: DefaultMax}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for i, b := range c.Bounds {
		if !(b.Min < b.Max) {
			return fmt.Errorf("%w: bounds[%d] min %g must be below max %g", ErrInvalid, i, b.Min, b.Max)
		}
	}
	for i, labels := range c.AxesLabels {
		if len(labels) > 2 {
			return fmt.Errorf("%w: axes_labels[%d] has %d entries, want at most 2", ErrInvalid, i, len(labels))
		}
	}
	switch c.Layout {
	case "", "column", "row":
	default:
		return fmt.Errorf("%w: layout %q (valid: column, row)", ErrInvalid, c.Layout)
	}
	switch c.Export.Format {
	case "", "png", "svg":
	default:
		return fmt.Errorf("%w: export format %q (valid: png, svg)", ErrInvalid, c.Export.Format)
	}
	if c.Export.Width < 0 || c.Export.Height < 0 {
		return fmt.Errorf("%w: export size must not be negative", ErrInvalid)
	}
	return nil
}
