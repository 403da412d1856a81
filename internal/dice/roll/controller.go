package roll

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/carved-dice/internal/dice/outcome"
	"github.com/Faultbox/carved-dice/pkg/math"
)

// ErrNoBodies is returned by New when there is nothing to throw.
var ErrNoBodies = errors.New("roll: no bodies")

type die struct {
	body  Body
	state State
	quiet time.Duration
}

// Controller owns the per-die state machine for a set of bodies.
type Controller struct {
	mu         sync.Mutex
	cfg        Config
	dice       []die
	rng        *rand.Rand
	throwID    uuid.UUID
	onResolved func(Result)
	log        *zap.Logger
}

// New creates a controller for bodies. onResolved is called once per die per
// throw, outside the controller lock; it may be nil.
func New(cfg Config, bodies []Body, onResolved func(Result), log *zap.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	for i, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("%w: body %d is nil", ErrNoBodies, i)
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	c := &Controller{
		cfg:        cfg,
		dice:       make([]die, len(bodies)),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		onResolved: onResolved,
		log:        log,
	}
	for i, b := range bodies {
		c.dice[i] = die{body: b, state: Idle}
	}
	return c, nil
}

// ThrowAll relaunches every die and returns the new throw ID. Results still
// pending from an earlier throw are dropped.
func (c *Controller) ThrowAll() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.throwID = uuid.New()
	for i := range c.dice {
		c.launch(i)
	}
	c.log.Debug("throw",
		zap.Stringer("throw", c.throwID),
		zap.Int("dice", len(c.dice)))
	return c.throwID
}

func (c *Controller) launch(i int) {
	d := &c.dice[i]
	b := d.body

	b.SetVelocity(math.Vec3{})
	b.SetAngularVelocity(math.Vec3{})
	b.SetPosition(c.cfg.LaunchSlot(i))
	b.SetOrientation(math.QuatFromEulerXYZ(
		float32(2*gomath.Pi*c.rng.Float64()),
		0,
		float32(2*gomath.Pi*c.rng.Float64()),
	))

	f := c.cfg.ImpulseMin + (c.cfg.ImpulseMax-c.cfg.ImpulseMin)*c.rng.Float32()
	b.ApplyImpulse(math.Vec3{X: -f, Y: f}, c.cfg.ImpulseOffset)

	d.state = InFlight
	d.quiet = 0
}

// Handle feeds one physics event into the state machine.
func (c *Controller) Handle(ev Event) {
	var res *Result

	c.mu.Lock()
	i := ev.DieIndex()
	if i < 0 || i >= len(c.dice) {
		c.mu.Unlock()
		c.log.Warn("event for unknown die", zap.Int("die", i))
		return
	}

	d := &c.dice[i]
	if d.state == InFlight || d.state == Settling {
		switch e := ev.(type) {
		case Collision:
			if e.ImpactVelocity < c.cfg.ImpactThreshold {
				d.state = Settling
				res = c.settle(i, e.Orientation)
			}
		case Motion:
			if c.cfg.RestWindow > 0 {
				if e.LinearSpeed < c.cfg.RestLinearSpeed && e.AngularSpeed < c.cfg.RestAngularSpeed {
					d.quiet += e.Dt
				} else {
					d.quiet = 0
				}
				if d.quiet >= c.cfg.RestWindow {
					d.state = Settling
					res = c.settle(i, e.Orientation)
				}
			}
		}
	}
	cb := c.onResolved
	c.mu.Unlock()

	if res != nil && cb != nil {
		cb(*res)
	}
}

// settle classifies die i. Called with c.mu held.
func (c *Controller) settle(i int, q math.Quat) *Result {
	face, ok := outcome.FaceUp(q, c.cfg.Tolerance)
	if !ok {
		c.log.Debug("indeterminate orientation",
			zap.Int("die", i),
			zap.Any("angles", outcome.AnglesFromOrientation(q)))
		return nil
	}

	c.dice[i].state = Resolved
	c.log.Debug("die resolved",
		zap.Stringer("throw", c.throwID),
		zap.Int("die", i),
		zap.Int("face", int(face)))
	return &Result{ThrowID: c.throwID, Die: i, Face: face}
}

// State returns the current state of die i, or Idle for an unknown index.
func (c *Controller) State(i int) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.dice) {
		return Idle
	}
	return c.dice[i].state
}

// Resolved reports whether every die of the current throw has a result.
func (c *Controller) Resolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.dice {
		if d.state != Resolved {
			return false
		}
	}
	return true
}

// ThrowID returns the ID of the current throw, or uuid.Nil before the first.
func (c *Controller) ThrowID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.throwID
}

// Len returns the number of dice.
func (c *Controller) Len() int {
	return len(c.dice)
}
