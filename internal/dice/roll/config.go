package roll

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/carved-dice/pkg/math"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid roll config")

// Config holds the throw and settle tuning.
type Config struct {
	// ImpactThreshold is the collision speed under which a die is treated as
	// coming to rest.
	ImpactThreshold float32 `yaml:"impact_threshold" env:"IMPACT_THRESHOLD"`
	// Tolerance is the classifier's angular slack in radians.
	Tolerance float64 `yaml:"tolerance" env:"TOLERANCE"`

	// LaunchOrigin is the launch slot of die 0; die i is raised by
	// i*LaunchSpacing.
	LaunchOrigin  math.Vec3 `yaml:"launch_origin"`
	LaunchSpacing float32   `yaml:"launch_spacing" env:"LAUNCH_SPACING"`
	// ImpulseMin and ImpulseMax bound the random impulse magnitude.
	ImpulseMin float32 `yaml:"impulse_min" env:"IMPULSE_MIN"`
	ImpulseMax float32 `yaml:"impulse_max" env:"IMPULSE_MAX"`
	// ImpulseOffset is the body-local point the impulse is applied at.
	ImpulseOffset math.Vec3 `yaml:"impulse_offset"`

	// Mass and spawn layout of the die bodies.
	Mass         float32   `yaml:"mass" env:"MASS"`
	SpawnOrigin  math.Vec3 `yaml:"spawn_origin"`
	SpawnSpacing float32   `yaml:"spawn_spacing" env:"SPAWN_SPACING"`

	// RestWindow enables the sustained-rest check: a die whose linear and
	// angular speed stay under RestLinearSpeed and RestAngularSpeed for this
	// long is classified even without a qualifying collision. Zero disables.
	RestWindow       time.Duration `yaml:"rest_window" env:"REST_WINDOW"`
	RestLinearSpeed  float32       `yaml:"rest_linear_speed" env:"REST_LINEAR_SPEED"`
	RestAngularSpeed float32       `yaml:"rest_angular_speed" env:"REST_ANGULAR_SPEED"`

	// Seed fixes the launch randomness; zero seeds from the clock.
	Seed uint64 `yaml:"seed" env:"SEED"`
}

// DefaultConfig returns the standard throw tuning.
func DefaultConfig() Config {
	return Config{
		ImpactThreshold:  0.25,
		Tolerance:        0.1,
		LaunchOrigin:     math.Vec3{X: 6},
		LaunchSpacing:    1.5,
		ImpulseMin:       3,
		ImpulseMax:       8,
		ImpulseOffset:    math.Vec3{Z: 0.2},
		Mass:             1,
		SpawnOrigin:      math.Vec3{X: 1},
		SpawnSpacing:     2,
		RestWindow:       500 * time.Millisecond,
		RestLinearSpeed:  0.05,
		RestAngularSpeed: 0.05,
	}
}

// Validate checks the config for values the controller cannot work with.
func (c Config) Validate() error {
	switch {
	case !(c.ImpactThreshold > 0):
		return fmt.Errorf("%w: impact threshold must be positive", ErrInvalidConfig)
	case !(c.Tolerance > 0):
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidConfig)
	case !(c.ImpulseMin >= 0 && c.ImpulseMax >= c.ImpulseMin):
		return fmt.Errorf("%w: impulse range [%v, %v]", ErrInvalidConfig, c.ImpulseMin, c.ImpulseMax)
	case !(c.Mass > 0):
		return fmt.Errorf("%w: mass must be positive", ErrInvalidConfig)
	case c.RestWindow < 0:
		return fmt.Errorf("%w: rest window must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LaunchSlot returns where die i starts a throw. Slots never overlap for a
// spacing of at least one die side.
func (c Config) LaunchSlot(i int) math.Vec3 {
	return c.LaunchOrigin.Add(math.Vec3{Y: float32(i) * c.LaunchSpacing})
}

// BodySpecs describes count unit-cube die bodies in their spawn layout.
func (c Config) BodySpecs(count int) []BodySpec {
	specs := make([]BodySpec, count)
	for i := range specs {
		specs[i] = BodySpec{
			HalfExtents: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
			Mass:        c.Mass,
			Position:    c.SpawnOrigin.Add(math.Vec3{Y: float32(i) * c.SpawnSpacing}),
			Orientation: math.QuatIdentity(),
		}
	}
	return specs
}
