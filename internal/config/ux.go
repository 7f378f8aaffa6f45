package config

import (
	"os"
	"strconv"
	"strings"
)

// UIConfig holds terminal view configuration.
type UIConfig struct {
	// DarkMode forces the dark (true) or light (false) palette; nil detects it
	DarkMode *bool `yaml:"dark_mode,omitempty"`

	// SliderPanelRatio is the share of the width given to the slider panel
	// when the terminal is wide enough to place it beside the plots
	SliderPanelRatio float64 `yaml:"slider_panel_ratio"`

	// ShowHelp toggles the key hint footer
	ShowHelp bool `yaml:"show_help"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		SliderPanelRatio: 0.3,
		ShowHelp:         true,
	}
}

// IsDark resolves the palette choice, detecting the terminal background
// from COLORFGBG when no explicit choice was configured.
func (c UIConfig) IsDark() bool {
	if c.DarkMode != nil {
		return *c.DarkMode
	}
	// Format is usually "foreground;background"
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			return (bg >= 0 && bg <= 6) || bg == 8
		}
	}
	return false
}
