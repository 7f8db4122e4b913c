// Package config provides configuration loading and access for the app.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/fieldlines/streamline"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration parameters.
type Config struct {
	Screen ScreenConfig `yaml:"screen"`
	Scene  SceneConfig  `yaml:"scene"`
	Lines  LinesConfig  `yaml:"lines"`
	Flow   FlowConfig   `yaml:"flow"`
	Style  StyleConfig  `yaml:"style"`
	Output OutputConfig `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SceneConfig holds demo scene settings.
type SceneConfig struct {
	Scaling    float64          `yaml:"scaling"` // Scene units per field unit (projection scale)
	Field      string           `yaml:"field"`   // Named field for headless and preview runs
	Turbulence TurbulenceConfig `yaml:"turbulence"`
}

// TurbulenceConfig holds noise field parameters.
type TurbulenceConfig struct {
	Seed     int64   `yaml:"seed"`
	Scale    float64 `yaml:"scale"`    // Noise frequency
	Strength float64 `yaml:"strength"` // Peak force magnitude
}

// LinesConfig holds stream line generation parameters.
type LinesConfig struct {
	XRange            []float64 `yaml:"x_range"` // [min, max] or [min, max, step]
	YRange            []float64 `yaml:"y_range"`
	ZRange            []float64 `yaml:"z_range"`      // Empty for planar fields
	NoiseFactor       float64   `yaml:"noise_factor"` // Negative uses half the y step
	Repeats           int       `yaml:"repeats"`
	DT                float64   `yaml:"dt"`
	VirtualTime       float64   `yaml:"virtual_time"`
	MaxAnchorsPerLine int       `yaml:"max_anchors_per_line"`
	Padding           float64   `yaml:"padding"`
	Seed              int64     `yaml:"seed"`
	Workers           int       `yaml:"workers"` // 0 uses all CPUs
}

// FlowConfig holds flow animation parameters.
type FlowConfig struct {
	Speed     float64 `yaml:"speed"`
	TimeWidth float64 `yaml:"time_width"`
	WarmUp    bool    `yaml:"warm_up"`
	FrameRate int     `yaml:"frame_rate"` // Headless tick rate
}

// StyleConfig holds line appearance parameters.
type StyleConfig struct {
	StrokeWidth float64  `yaml:"stroke_width"`
	Opacity     float64  `yaml:"opacity"`
	Color       string   `yaml:"color"`  // Hex; set for single-color lines
	Colors      []string `yaml:"colors"` // Hex ramp; empty uses the built-in one
	MinValue    float64  `yaml:"min_value"`
	MaxValue    float64  `yaml:"max_value"`
}

// OutputConfig holds experiment output parameters.
type OutputConfig struct {
	Dir         string  `yaml:"dir"`
	StatsWindow float64 `yaml:"stats_window"` // Seconds per flow stats row
}

// RGBA is a parsed color, kept free of any rendering dependency.
type RGBA struct {
	R, G, B, A uint8
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Options   streamline.Options // Integrator options assembled from Lines
	Stroke32  float32            // Style.StrokeWidth as float32
	ScreenW32 float32            // Screen.Width as float32
	ScreenH32 float32            // Screen.Height as float32
	FrameDT   float64            // Seconds per tick at Flow.FrameRate
	Flat      *RGBA              // Parsed Style.Color when set
	Colors    []RGBA             // Parsed Style.Colors when set
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	xr, err := parseRange("x_range", c.Lines.XRange)
	if err != nil {
		return err
	}
	yr, err := parseRange("y_range", c.Lines.YRange)
	if err != nil {
		return err
	}
	zr, err := parseRange("z_range", c.Lines.ZRange)
	if err != nil {
		return err
	}

	c.Derived.Options = streamline.Options{
		XRange:      xr,
		YRange:      yr,
		ZRange:      zr,
		DT:          c.Lines.DT,
		VirtualTime: c.Lines.VirtualTime,
		MaxAnchors:  c.Lines.MaxAnchorsPerLine,
		Padding:     c.Lines.Padding,
		NoiseFactor: c.Lines.NoiseFactor,
		Repeats:     c.Lines.Repeats,
		Seed:        c.Lines.Seed,
		Workers:     c.Lines.Workers,
	}

	c.Derived.Stroke32 = float32(c.Style.StrokeWidth)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	frameRate := c.Flow.FrameRate
	if frameRate <= 0 {
		frameRate = 60
	}
	c.Derived.FrameDT = 1 / float64(frameRate)

	c.Derived.Flat = nil
	if c.Style.Color != "" {
		flat, err := ParseHexColor(c.Style.Color)
		if err != nil {
			return fmt.Errorf("parsing style color: %w", err)
		}
		c.Derived.Flat = &flat
	}
	c.Derived.Colors = nil
	for _, s := range c.Style.Colors {
		rgba, err := ParseHexColor(s)
		if err != nil {
			return fmt.Errorf("parsing style colors: %w", err)
		}
		c.Derived.Colors = append(c.Derived.Colors, rgba)
	}

	return nil
}

// parseRange converts a [min, max] or [min, max, step] list into a
// Range. An empty list gives the zero Range, which the integrator
// collapses to a single spawn coordinate.
func parseRange(name string, vals []float64) (streamline.Range, error) {
	switch len(vals) {
	case 0:
		return streamline.Range{}, nil
	case 2:
		return streamline.Range{Min: vals[0], Max: vals[1]}, nil
	case 3:
		return streamline.Range{Min: vals[0], Max: vals[1], Step: vals[2]}, nil
	default:
		return streamline.Range{}, fmt.Errorf("config: %s needs [min, max] or [min, max, step], got %d values", name, len(vals))
	}
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA", with the # optional.
func ParseHexColor(s string) (RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return RGBA{}, fmt.Errorf("config: color %q is not #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return RGBA{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
