package physics

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/carved-dice/pkg/math"
)

// Contact is a body touching the floor during a step. Sleeping bodies report
// a resting contact with zero impact every step.
type Contact struct {
	Body           int
	ImpactVelocity float32
	Orientation    math.Quat
}

// World owns the bodies and advances them in fixed steps.
type World struct {
	cfg    Config
	bodies []*Body
	steps  uint64
	log    *zap.Logger
}

// NewWorld creates an empty world.
func NewWorld(cfg Config, log *zap.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &World{cfg: cfg, log: log}, nil
}

// AddBox adds a box body and returns it. Its index is the number of bodies
// added before it.
func (w *World) AddBox(halfExtents math.Vec3, mass float32, pos math.Vec3, q math.Quat) (*Body, error) {
	if !(mass > 0) {
		return nil, fmt.Errorf("%w: mass must be positive", ErrInvalidConfig)
	}
	if !(halfExtents.X > 0 && halfExtents.Y > 0 && halfExtents.Z > 0) {
		return nil, fmt.Errorf("%w: half extents must be positive", ErrInvalidConfig)
	}
	b := newBody(halfExtents, mass, pos, q)
	w.bodies = append(w.bodies, b)
	return b, nil
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Dt returns the fixed step length.
func (w *World) Dt() time.Duration {
	return w.cfg.Step
}

// Steps returns how many steps have run.
func (w *World) Steps() uint64 {
	return w.steps
}

// Step advances the world by one fixed step and returns the contacts that
// occurred during it.
func (w *World) Step() []Contact {
	dt := float32(w.cfg.Step.Seconds())
	var contacts []Contact

	for i, b := range w.bodies {
		if b.asleep {
			contacts = append(contacts, Contact{Body: i, Orientation: b.orientation})
			continue
		}

		b.integrate(w.cfg.Gravity, dt)

		low := b.lowest()
		if low >= w.cfg.FloorY || b.velocity.Y >= 0 {
			continue
		}

		impact := -b.velocity.Y
		b.position.Y += w.cfg.FloorY - low

		if impact < w.cfg.SleepImpact {
			axis := b.snapFlat()
			b.position.Y = w.cfg.FloorY + b.halfExtents.Get(axis)
			b.velocity = math.Vec3{}
			b.angularVelocity = math.Vec3{}
			b.asleep = true
			w.log.Debug("body asleep",
				zap.Int("body", i),
				zap.Uint64("step", w.steps))
		} else {
			b.velocity.Y = impact * w.cfg.Restitution
			b.velocity.X *= 1 - w.cfg.Friction
			b.velocity.Z *= 1 - w.cfg.Friction
			b.angularVelocity = b.angularVelocity.Scale(w.cfg.AngularDamping)
		}

		contacts = append(contacts, Contact{
			Body:           i,
			ImpactVelocity: impact,
			Orientation:    b.orientation,
		})
	}

	w.steps++
	return contacts
}

// Settled reports whether every body is asleep.
func (w *World) Settled() bool {
	for _, b := range w.bodies {
		if !b.asleep {
			return false
		}
	}
	return true
}
