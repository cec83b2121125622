package alder

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Theme is the color palette handed to render hooks through the context.
// Changing the active theme emits EventThemeChange so components repaint.
type Theme struct {
	Background      Color `yaml:"background"`
	Grid            Color `yaml:"grid"`
	Block           Color `yaml:"block"`
	BlockSelected   Color `yaml:"blockSelected"`
	Connection      Color `yaml:"connection"`
	SelectionStroke Color `yaml:"selectionStroke"`
	Text            Color `yaml:"text"`
}

// Settings holds the tunables of a Graph. The zero value is not useful;
// start from DefaultSettings or LoadSettings.
type Settings struct {
	// DragDeadZone is the minimum pointer movement in pixels before a
	// press becomes a drag.
	DragDeadZone float64 `yaml:"dragDeadZone"`
	// AutoPanMargin is the width in pixels of the viewport edge band that
	// triggers auto-panning during a drag.
	AutoPanMargin float64 `yaml:"autoPanMargin"`
	// AutoPanSpeed is the auto-pan velocity in world units per second.
	AutoPanSpeed float64 `yaml:"autoPanSpeed"`
	// MinZoom and MaxZoom clamp the camera zoom factor. A zero bound is
	// ignored.
	MinZoom float64 `yaml:"minZoom"`
	MaxZoom float64 `yaml:"maxZoom"`
	// ScrollDuration is the default duration in seconds of animated
	// camera scrolls.
	ScrollDuration float64 `yaml:"scrollDuration"`
	// MaintenanceBudget bounds the per-tick event bus compaction pass,
	// in seconds.
	MaintenanceBudget float64 `yaml:"maintenanceBudget"`

	Theme Theme `yaml:"theme"`
}

// maintenanceBudget converts the configured budget to a duration, falling
// back to the emitter default when unset.
func (s *Settings) maintenanceBudget() time.Duration {
	if s.MaintenanceBudget <= 0 {
		return DefaultMaintenanceBudget
	}
	return time.Duration(s.MaintenanceBudget * float64(time.Second))
}

// DefaultSettings returns the settings a Graph starts with.
func DefaultSettings() Settings {
	return Settings{
		DragDeadZone:      4.0,
		AutoPanMargin:     48,
		AutoPanSpeed:      600,
		MinZoom:           0.1,
		MaxZoom:           4.0,
		ScrollDuration:    0.35,
		MaintenanceBudget: 0.005,
		Theme:             DefaultTheme(),
	}
}

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return Theme{
		Background:      Color{R: 0.09, G: 0.09, B: 0.11, A: 1},
		Grid:            Color{R: 0.16, G: 0.16, B: 0.19, A: 1},
		Block:           Color{R: 0.22, G: 0.25, B: 0.32, A: 1},
		BlockSelected:   Color{R: 0.30, G: 0.45, B: 0.85, A: 1},
		Connection:      Color{R: 0.45, G: 0.47, B: 0.52, A: 1},
		SelectionStroke: Color{R: 0.55, G: 0.70, B: 1.00, A: 1},
		Text:            Color{R: 0.92, G: 0.93, B: 0.95, A: 1},
	}
}

// LoadSettings reads settings from a YAML file, layered over the defaults:
// keys absent from the file keep their default values. A missing file is not
// an error and yields the defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	cfg := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse settings: %w", err)
	}
	return cfg, nil
}
