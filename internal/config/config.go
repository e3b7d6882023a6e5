package config

import (
	"fmt"
	"os"

	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 1.0
	DefaultDuration   = 500.0
	DefaultWidth      = 480
	DefaultHeight     = 480
	DefaultFPS        = 30
	DefaultArrowScale = 20.0
	DefaultMaxArrow   = 2.0
	DefaultTrail      = 60
	DefaultOutput     = "threebody.gif"
)

type Config struct {
	Name     string       `yaml:"name"`
	Bodies   []BodyConfig `yaml:"bodies"`
	Duration float64      `yaml:"duration"`
	Dt       float64      `yaml:"dt"`
	Render   RenderConfig `yaml:"render"`
	Output   string       `yaml:"output"`
}

// BodyConfig holds one body's raw mass and initial conditions.
type BodyConfig struct {
	Mass float64    `yaml:"mass"`
	Pos  [2]float64 `yaml:"pos,flow"`
	Vel  [2]float64 `yaml:"vel,flow"`
}

type RenderConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	Stride     int     `yaml:"stride"`
	ArrowScale float64 `yaml:"arrow_scale"`
	MaxArrow   float64 `yaml:"max_arrow"`
	Trail      int     `yaml:"trail"`
}

// DefaultConfig is the reference triangle scenario.
func DefaultConfig() *Config {
	return &Config{
		Name: "triangle",
		Bodies: []BodyConfig{
			{Mass: 10000, Pos: [2]float64{0, 0}, Vel: [2]float64{0.1, 0.1}},
			{Mass: 300, Pos: [2]float64{100, 0}, Vel: [2]float64{0, sqrt3 / 2 * 2}},
			{Mass: 100, Pos: [2]float64{50, sqrt3 / 2 * 100}, Vel: [2]float64{-sqrt3 / 2 * 2, 0}},
		},
		Duration: DefaultDuration,
		Dt:       DefaultDt,
		Render:   DefaultRenderConfig(),
		Output:   DefaultOutput,
	}
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		FPS:        DefaultFPS,
		Stride:     1,
		ArrowScale: DefaultArrowScale,
		MaxArrow:   DefaultMaxArrow,
		Trail:      DefaultTrail,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cp
}

func (c *Config) Validate() error {
	if len(c.Bodies) != dynamo.NumBodies {
		return fmt.Errorf("%w: need exactly %d bodies, got %d", dynamo.ErrInvalidParameter, dynamo.NumBodies, len(c.Bodies))
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return dynamo.InvalidParameter(fmt.Sprintf("bodies[%d].mass", i), b.Mass, "must be positive")
		}
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	return c.RenderOptions().Validate()
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{Duration: c.Duration, Dt: c.Dt}
}

// Scenario assumes Validate has passed.
func (c *Config) Scenario() sim.Scenario {
	sc := sim.Scenario{Name: c.Name}
	for i := 0; i < dynamo.NumBodies && i < len(c.Bodies); i++ {
		b := c.Bodies[i]
		sc.Masses[i] = b.Mass
		sc.Positions[i] = r2.Vec{X: b.Pos[0], Y: b.Pos[1]}
		sc.Velocities[i] = r2.Vec{X: b.Vel[0], Y: b.Vel[1]}
	}
	return sc
}

func (c *Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	r := c.Render
	if r.Width > 0 {
		opts.Width = r.Width
	}
	if r.Height > 0 {
		opts.Height = r.Height
	}
	if r.FPS != 0 {
		opts.FPS = r.FPS
	}
	if r.Stride != 0 {
		opts.Stride = r.Stride
	}
	if r.ArrowScale != 0 {
		opts.ArrowScale = r.ArrowScale
	}
	if r.MaxArrow != 0 {
		opts.MaxArrow = r.MaxArrow
	}
	opts.Trail = r.Trail
	return opts
}
