package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/tradenet/internal/interact"
	"github.com/san-kum/tradenet/internal/layout"
	"github.com/san-kum/tradenet/internal/render"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid value")
)

const (
	DefaultTheme     = "ocean"
	DefaultLogLevel  = "info"
	DefaultFrameRate = 60
)

type Config struct {
	Layout   LayoutConfig   `yaml:"layout" toml:"layout"`
	Render   RenderConfig   `yaml:"render" toml:"render"`
	Interact InteractConfig `yaml:"interact" toml:"interact"`
	Theme    string         `yaml:"theme" toml:"theme"`
	LogLevel string         `yaml:"log_level" toml:"log_level"`
}

type LayoutConfig struct {
	Repulsion       float64 `yaml:"repulsion" toml:"repulsion"`
	Attraction      float64 `yaml:"attraction" toml:"attraction"`
	Centering       float64 `yaml:"centering" toml:"centering"`
	Damping         float64 `yaml:"damping" toml:"damping"`
	Timestep        float64 `yaml:"timestep" toml:"timestep"`
	MinDistance     float64 `yaml:"min_distance" toml:"min_distance"`
	MaxDisplacement float64 `yaml:"max_displacement" toml:"max_displacement"`
	EnergyThreshold float64 `yaml:"energy_threshold" toml:"energy_threshold"`
	MaxTicks        int     `yaml:"max_ticks" toml:"max_ticks"`
	RadiusScale     float64 `yaml:"radius_scale" toml:"radius_scale"`
	PinHints        bool    `yaml:"pin_hints" toml:"pin_hints"`
}

// RenderConfig sizes file exports, in pixels.
type RenderConfig struct {
	Width          int     `yaml:"width" toml:"width"`
	Height         int     `yaml:"height" toml:"height"`
	BaseWidth      float64 `yaml:"base_width" toml:"base_width"`
	WidthScale     float64 `yaml:"width_scale" toml:"width_scale"`
	MaxWidth       float64 `yaml:"max_width" toml:"max_width"`
	NodeRadius     float64 `yaml:"node_radius" toml:"node_radius"`
	ArrowSize      float64 `yaml:"arrow_size" toml:"arrow_size"`
	Padding        float64 `yaml:"padding" toml:"padding"`
	ParallelOffset float64 `yaml:"parallel_offset" toml:"parallel_offset"`
	Labels         bool    `yaml:"labels" toml:"labels"`
}

type InteractConfig struct {
	NodeSlack     float64 `yaml:"node_slack" toml:"node_slack"`
	EdgeThreshold float64 `yaml:"edge_threshold" toml:"edge_threshold"`
	FrameRate     int     `yaml:"frame_rate" toml:"frame_rate"`
}

func DefaultConfig() *Config {
	p := layout.DefaultParams()
	st := render.DefaultStyle()
	hp := interact.DefaultHitParams()
	return &Config{
		Layout: LayoutConfig{
			Repulsion:       p.Repulsion,
			Attraction:      p.Attraction,
			Centering:       p.Centering,
			Damping:         p.Damping,
			Timestep:        p.Timestep,
			MinDistance:     p.MinDistance,
			MaxDisplacement: p.MaxDisplacement,
			EnergyThreshold: p.EnergyThreshold,
			MaxTicks:        p.MaxTicks,
			RadiusScale:     p.RadiusScale,
		},
		Render: RenderConfig{
			Width:          800,
			Height:         600,
			BaseWidth:      st.Stroke.Base,
			WidthScale:     st.Stroke.Scale,
			MaxWidth:       st.Stroke.Max,
			NodeRadius:     st.NodeRadius,
			ArrowSize:      st.ArrowSize,
			Padding:        st.Padding,
			ParallelOffset: st.ParallelOffset,
			Labels:         st.Labels,
		},
		Interact: InteractConfig{
			NodeSlack:     hp.NodeSlack,
			EdgeThreshold: hp.EdgeThreshold,
			FrameRate:     DefaultFrameRate,
		},
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML or TOML file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate checks the values the layout, render and interaction layers
// cannot recover from on their own.
func (c *Config) Validate() error {
	if err := c.LayoutParams().Validate(); err != nil {
		return err
	}
	r := c.Render
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"base_width", r.BaseWidth},
		{"width_scale", r.WidthScale},
		{"max_width", r.MaxWidth},
		{"node_radius", r.NodeRadius},
		{"arrow_size", r.ArrowSize},
		{"padding", r.Padding},
		{"parallel_offset", r.ParallelOffset},
		{"node_slack", c.Interact.NodeSlack},
		{"edge_threshold", c.Interact.EdgeThreshold},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalid, f.name, f.v)
		}
	}
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return fmt.Errorf("%w: render size must be positive, got %dx%d", ErrInvalid, r.Width, r.Height)
	case r.BaseWidth <= 0 || r.MaxWidth < r.BaseWidth:
		return fmt.Errorf("%w: stroke widths need 0 < base_width <= max_width", ErrInvalid)
	case r.WidthScale < 0:
		return fmt.Errorf("%w: width_scale must be non-negative, got %g", ErrInvalid, r.WidthScale)
	case r.NodeRadius <= 0:
		return fmt.Errorf("%w: node_radius must be positive, got %g", ErrInvalid, r.NodeRadius)
	case c.Interact.FrameRate <= 0:
		return fmt.Errorf("%w: frame_rate must be positive, got %d", ErrInvalid, c.Interact.FrameRate)
	case c.Interact.NodeSlack < 0 || c.Interact.EdgeThreshold < 0:
		return fmt.Errorf("%w: hit tolerances must be non-negative", ErrInvalid)
	}
	return nil
}

func (c *Config) LayoutParams() layout.Params {
	l := c.Layout
	return layout.Params{
		Repulsion:       l.Repulsion,
		Attraction:      l.Attraction,
		Centering:       l.Centering,
		Damping:         l.Damping,
		Timestep:        l.Timestep,
		MinDistance:     l.MinDistance,
		MaxDisplacement: l.MaxDisplacement,
		EnergyThreshold: l.EnergyThreshold,
		MaxTicks:        l.MaxTicks,
		RadiusScale:     l.RadiusScale,
	}
}

// Style is the render style for file exports.
func (c *Config) Style() render.Style {
	st := render.DefaultStyle()
	st.Stroke = render.StrokeMapping{Base: c.Render.BaseWidth, Scale: c.Render.WidthScale, Max: c.Render.MaxWidth}
	st.NodeRadius = c.Render.NodeRadius
	st.ArrowSize = c.Render.ArrowSize
	st.Padding = c.Render.Padding
	st.ParallelOffset = c.Render.ParallelOffset
	st.Labels = c.Render.Labels
	return st
}

func (c *Config) HitParams() interact.HitParams {
	return interact.HitParams{NodeSlack: c.Interact.NodeSlack, EdgeThreshold: c.Interact.EdgeThreshold}
}
