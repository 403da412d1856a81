// Package physics is a small deterministic rigid-body world for unit-cube
// dice over an infinite floor. It reports contacts and per-step motion so a
// caller can decide when a die has come to rest.
package physics

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid physics config")

// Config holds world tuning.
type Config struct {
	Gravity     float32       `yaml:"gravity" env:"GRAVITY"`
	FloorY      float32       `yaml:"floor_y" env:"FLOOR_Y"`
	Step        time.Duration `yaml:"step" env:"STEP"`
	Restitution float32       `yaml:"restitution" env:"RESTITUTION"`
	// Friction is the share of horizontal velocity lost per bounce.
	Friction float32 `yaml:"friction" env:"FRICTION"`
	// AngularDamping scales angular velocity on every bounce.
	AngularDamping float32 `yaml:"angular_damping" env:"ANGULAR_DAMPING"`
	// SleepImpact is the bounce speed under which a body is snapped flat and
	// put to sleep. It must exceed one step of gravity or a resting body
	// never sleeps.
	SleepImpact float32 `yaml:"sleep_impact" env:"SLEEP_IMPACT"`
}

// DefaultConfig returns the standard world.
func DefaultConfig() Config {
	return Config{
		Gravity:        -9.82,
		FloorY:         -7,
		Step:           time.Second / 60,
		Restitution:    0.4,
		Friction:       0.3,
		AngularDamping: 0.6,
		SleepImpact:    0.2,
	}
}

// Validate checks the world tuning.
func (c Config) Validate() error {
	dt := float32(c.Step.Seconds())
	switch {
	case c.Step <= 0:
		return fmt.Errorf("%w: step must be positive", ErrInvalidConfig)
	case !(c.Gravity < 0):
		return fmt.Errorf("%w: gravity must point down", ErrInvalidConfig)
	case !(c.Restitution >= 0 && c.Restitution < 1):
		return fmt.Errorf("%w: restitution %v not in [0, 1)", ErrInvalidConfig, c.Restitution)
	case !(c.Friction >= 0 && c.Friction <= 1):
		return fmt.Errorf("%w: friction %v not in [0, 1]", ErrInvalidConfig, c.Friction)
	case !(c.AngularDamping >= 0 && c.AngularDamping < 1):
		return fmt.Errorf("%w: angular damping %v not in [0, 1)", ErrInvalidConfig, c.AngularDamping)
	case !(c.SleepImpact > -c.Gravity*dt):
		return fmt.Errorf("%w: sleep impact %v must exceed %v per step", ErrInvalidConfig, c.SleepImpact, -c.Gravity*dt)
	}
	return nil
}
