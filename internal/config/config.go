// Package config handles dice table configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/internal/dice/roll"
	"github.com/Faultbox/carved-dice/internal/engine/physics"
	"github.com/Faultbox/carved-dice/internal/logger"
	"github.com/Faultbox/carved-dice/pkg/math"
)

// ErrInvalidPreview is returned by Validate for bad preview settings.
var ErrInvalidPreview = errors.New("invalid preview config")

// Config holds all settings.
type Config struct {
	Shape   dice.Shape     `yaml:"shape" envPrefix:"SHAPE_"`
	Roll    roll.Config    `yaml:"roll" envPrefix:"ROLL_"`
	Sim     physics.Config `yaml:"sim" envPrefix:"SIM_"`
	Preview PreviewConfig  `yaml:"preview" envPrefix:"PREVIEW_"`
	Logging logger.Config  `yaml:"logging" envPrefix:"LOG_"`
}

// PreviewConfig holds offline render settings.
type PreviewConfig struct {
	Size        int     `yaml:"size" env:"SIZE"`
	Supersample int     `yaml:"supersample" env:"SUPERSAMPLE"`
	FOV         float32 `yaml:"fov" env:"FOV"` // degrees
	Distance    float32 `yaml:"distance" env:"DISTANCE"`
	// Elevation and Azimuth place the camera around the die, in degrees.
	Elevation  float32   `yaml:"elevation" env:"ELEVATION"`
	Azimuth    float32   `yaml:"azimuth" env:"AZIMUTH"`
	Background uint32    `yaml:"background" env:"BACKGROUND"`
	Light      math.Vec3 `yaml:"light"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Shape: dice.DefaultShape(),
		Roll:  roll.DefaultConfig(),
		Sim:   physics.DefaultConfig(),
		Preview: PreviewConfig{
			Size:        512,
			Supersample: 2,
			FOV:         35,
			Distance:    3.2,
			Elevation:   30,
			Azimuth:     35,
			Background:  0x1e2430,
			Light:       math.Vec3{X: 0.4, Y: 1, Z: 0.7},
		},
		Logging: logger.DefaultConfig(),
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Shape.Validate(); err != nil {
		return fmt.Errorf("shape: %w", err)
	}
	if err := c.Roll.Validate(); err != nil {
		return fmt.Errorf("roll: %w", err)
	}
	if err := c.Sim.Validate(); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	p := c.Preview
	switch {
	case p.Size < 16:
		return fmt.Errorf("%w: size %d", ErrInvalidPreview, p.Size)
	case p.Supersample < 1 || p.Supersample > 8:
		return fmt.Errorf("%w: supersample %d not in [1, 8]", ErrInvalidPreview, p.Supersample)
	case !(p.FOV > 0 && p.FOV < 180):
		return fmt.Errorf("%w: fov %v", ErrInvalidPreview, p.FOV)
	case !(p.Distance > 1):
		return fmt.Errorf("%w: camera inside the die", ErrInvalidPreview)
	case p.Light.Length() == 0:
		return fmt.Errorf("%w: zero light direction", ErrInvalidPreview)
	}
	return nil
}
