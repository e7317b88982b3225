package mach

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultResolution is the number of device pixels per layout pixel.
	DefaultResolution = 2.0
	// DefaultScreenshotDir is where Scene.Screenshot writes PNGs.
	DefaultScreenshotDir = "screenshots"
)

// Clock supplies wall-clock time to a Scene. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Interactivity selects which built-in input handlers a scene installs. In
// YAML it is either a bool, enabling or disabling both, or a mapping with
// scroll and move keys.
type Interactivity struct {
	// Scroll zooms the view with the mouse wheel.
	Scroll bool `yaml:"scroll"`
	// Move pans the view by dragging with the left button.
	Move bool `yaml:"move"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *Interactivity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var on bool
		if err := value.Decode(&on); err != nil {
			return fmt.Errorf("interactive: %w", err)
		}
		i.Scroll, i.Move = on, on
		return nil
	}
	type plain Interactivity
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("interactive: %w", err)
	}
	*i = Interactivity(p)
	return nil
}

// SceneConfig holds the options applied when a Scene is created. Zero
// Resolution and Zoom fall back to DefaultResolution and DefaultScale; start
// from DefaultSceneConfig to also get interactivity and a black background.
type SceneConfig struct {
	// Debug logs lifecycle events and per-frame timings to stderr and turns
	// misuse into panics.
	Debug bool `yaml:"debug"`
	// Resolution is the device pixel density multiplier.
	Resolution float64 `yaml:"resolution"`
	// Zoom is the initial scale, in device pixels per Cartesian unit.
	Zoom float64 `yaml:"zoom"`
	// Background fills the surface at the start of every frame.
	Background Color `yaml:"background"`
	// Interactive enables wheel zoom and drag pan.
	Interactive Interactivity `yaml:"interactive"`
	// HaltOnError makes Run return on the first frame whose hooks fail.
	// Otherwise failures are logged and the loop continues.
	HaltOnError bool `yaml:"haltOnError"`
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string `yaml:"screenshotDir"`

	// Registry holds the scene's transform. Nil gives the scene a private one.
	Registry *Registry `yaml:"-"`
	// Clock supplies frame timestamps. Nil uses the system clock.
	Clock Clock `yaml:"-"`
}

// DefaultSceneConfig returns the default options: resolution 2, zoom 60, a
// black background and full interactivity.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Resolution:    DefaultResolution,
		Zoom:          DefaultScale,
		Background:    ColorBlack,
		Interactive:   Interactivity{Scroll: true, Move: true},
		ScreenshotDir: DefaultScreenshotDir,
	}
}

// ParseSceneConfig decodes YAML over DefaultSceneConfig, so omitted keys keep
// their defaults.
func ParseSceneConfig(data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("parse scene config: %w", err)
	}
	if cfg.Resolution < 0 {
		return SceneConfig{}, fmt.Errorf("parse scene config: resolution %v must be positive", cfg.Resolution)
	}
	if cfg.Zoom < 0 {
		return SceneConfig{}, fmt.Errorf("parse scene config: zoom %v must be positive", cfg.Zoom)
	}
	return cfg, nil
}

// LoadSceneConfig reads a YAML scene config from path.
func LoadSceneConfig(path string) (SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("load scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// withDefaults fills in zero fields that have a non-zero default.
func (c SceneConfig) withDefaults() SceneConfig {
	if c.Resolution <= 0 {
		c.Resolution = DefaultResolution
	}
	if c.Zoom <= 0 {
		c.Zoom = DefaultScale
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = DefaultScreenshotDir
	}
	if c.Clock == nil {
		c.Clock = realClock{}
	}
	return c
}
