package roll

import (
	gomath "math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/internal/dice/outcome"
	"github.com/Faultbox/carved-dice/pkg/math"
)

type fakeBody struct {
	pos, vel, ang math.Vec3
	orient        math.Quat
	force, at     math.Vec3
	impulses      int
}

func (b *fakeBody) SetPosition(p math.Vec3)        { b.pos = p }
func (b *fakeBody) SetVelocity(v math.Vec3)        { b.vel = v }
func (b *fakeBody) SetAngularVelocity(w math.Vec3) { b.ang = w }
func (b *fakeBody) SetOrientation(q math.Quat)     { b.orient = q }
func (b *fakeBody) ApplyImpulse(force, localPoint math.Vec3) {
	b.force, b.at = force, localPoint
	b.impulses++
}

type recorder struct {
	mu      sync.Mutex
	results []Result
}

func (r *recorder) add(res Result) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

func (r *recorder) all() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}

func newTestController(t *testing.T, n int, mutate func(*Config)) (*Controller, []*fakeBody, *recorder) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 7
	if mutate != nil {
		mutate(&cfg)
	}
	fakes := make([]*fakeBody, n)
	bodies := make([]Body, n)
	for i := range fakes {
		fakes[i] = &fakeBody{vel: math.Vec3{X: 9}, ang: math.Vec3{Y: 9}}
		bodies[i] = fakes[i]
	}
	rec := &recorder{}
	c, err := New(cfg, bodies, rec.add, nil)
	require.NoError(t, err)
	return c, fakes, rec
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(DefaultConfig(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoBodies)

	_, err = New(DefaultConfig(), []Body{nil}, nil, nil)
	assert.ErrorIs(t, err, ErrNoBodies)

	cfg := DefaultConfig()
	cfg.ImpactThreshold = 0
	_, err = New(cfg, []Body{&fakeBody{}}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.ImpactThreshold = 0 }},
		{"nan tolerance", func(c *Config) { c.Tolerance = gomath.NaN() }},
		{"inverted impulse", func(c *Config) { c.ImpulseMin, c.ImpulseMax = 8, 3 }},
		{"zero mass", func(c *Config) { c.Mass = 0 }},
		{"negative window", func(c *Config) { c.RestWindow = -time.Second }},
	}
	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestInitialState(t *testing.T) {
	c, _, _ := newTestController(t, 2, nil)
	assert.Equal(t, Idle, c.State(0))
	assert.Equal(t, Idle, c.State(1))
	assert.Equal(t, uuid.Nil, c.ThrowID())
	assert.False(t, c.Resolved())
	assert.Equal(t, 2, c.Len())
}

func TestThrowAllLaunchesEveryDie(t *testing.T) {
	c, fakes, _ := newTestController(t, 3, nil)
	id := c.ThrowAll()
	require.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id, c.ThrowID())

	for i, b := range fakes {
		assert.Equal(t, InFlight, c.State(i))
		assert.Equal(t, math.Vec3{}, b.vel, "velocity reset")
		assert.Equal(t, math.Vec3{}, b.ang, "angular velocity reset")
		assert.Equal(t, math.Vec3{X: 6, Y: float32(i) * 1.5}, b.pos)
		assert.Equal(t, 1, b.impulses)

		assert.Equal(t, -b.force.X, b.force.Y, "impulse is (-f, f, 0)")
		assert.Zero(t, b.force.Z)
		assert.GreaterOrEqual(t, b.force.Y, float32(3))
		assert.Less(t, b.force.Y, float32(8))
		assert.Equal(t, math.Vec3{Z: 0.2}, b.at)

		q := b.orient
		assert.InDelta(t, 1, float64(q.Dot(q)), 1e-5, "unit orientation")
	}
}

func TestLaunchSlotsDistinct(t *testing.T) {
	cfg := DefaultConfig()
	seen := map[math.Vec3]bool{}
	for i := range 6 {
		slot := cfg.LaunchSlot(i)
		assert.False(t, seen[slot], "slot %d reused", i)
		seen[slot] = true
	}
}

func TestLowImpactCollisionResolves(t *testing.T) {
	c, _, rec := newTestController(t, 2, nil)
	id := c.ThrowAll()

	c.Handle(Collision{Die: 0, ImpactVelocity: 3, Orientation: outcome.Orientation(4)})
	assert.Equal(t, InFlight, c.State(0), "hard impact keeps die in flight")
	assert.Empty(t, rec.all())

	c.Handle(Collision{Die: 0, ImpactVelocity: 0.1, Orientation: outcome.Orientation(4)})
	assert.Equal(t, Resolved, c.State(0))
	require.Len(t, rec.all(), 1)
	assert.Equal(t, Result{ThrowID: id, Die: 0, Face: 4}, rec.all()[0])
	assert.False(t, c.Resolved())

	c.Handle(Collision{Die: 1, ImpactVelocity: 0, Orientation: outcome.Orientation(6)})
	assert.True(t, c.Resolved())
	require.Len(t, rec.all(), 2)
	assert.Equal(t, dice.Face(6), rec.all()[1].Face)
}

func TestThresholdIsStrict(t *testing.T) {
	c, _, rec := newTestController(t, 1, nil)
	c.ThrowAll()
	c.Handle(Collision{Die: 0, ImpactVelocity: 0.25, Orientation: outcome.Orientation(1)})
	assert.Equal(t, InFlight, c.State(0))
	assert.Empty(t, rec.all())
}

func TestIndeterminateStaysSettling(t *testing.T) {
	c, _, rec := newTestController(t, 1, nil)
	c.ThrowAll()

	edge := math.QuatFromAxisAngle(math.Vec3{X: 1}, gomath.Pi/4)
	c.Handle(Collision{Die: 0, ImpactVelocity: 0.1, Orientation: edge})
	assert.Equal(t, Settling, c.State(0))
	assert.Empty(t, rec.all())

	// Further qualifying collisions re-check.
	c.Handle(Collision{Die: 0, ImpactVelocity: 0.05, Orientation: outcome.Orientation(2)})
	assert.Equal(t, Resolved, c.State(0))
	require.Len(t, rec.all(), 1)
	assert.Equal(t, dice.Face(2), rec.all()[0].Face)
}

func TestResolvedEmitsOnce(t *testing.T) {
	c, _, rec := newTestController(t, 1, nil)
	c.ThrowAll()
	for range 5 {
		c.Handle(Collision{Die: 0, ImpactVelocity: 0, Orientation: outcome.Orientation(3)})
	}
	assert.Len(t, rec.all(), 1)
}

func TestEventsIgnoredWhenIdle(t *testing.T) {
	c, _, rec := newTestController(t, 1, nil)
	c.Handle(Collision{Die: 0, ImpactVelocity: 0, Orientation: outcome.Orientation(1)})
	c.Handle(Collision{Die: 5, ImpactVelocity: 0})
	c.Handle(Collision{Die: -1, ImpactVelocity: 0})
	assert.Equal(t, Idle, c.State(0))
	assert.Empty(t, rec.all())
}

func TestRethrowDiscardsPending(t *testing.T) {
	c, _, rec := newTestController(t, 1, nil)
	first := c.ThrowAll()
	edge := math.QuatFromAxisAngle(math.Vec3{Z: 1}, gomath.Pi/4)
	c.Handle(Collision{Die: 0, ImpactVelocity: 0.1, Orientation: edge})
	require.Equal(t, Settling, c.State(0))

	second := c.ThrowAll()
	assert.NotEqual(t, first, second)
	assert.Equal(t, InFlight, c.State(0))

	c.Handle(Collision{Die: 0, ImpactVelocity: 0.1, Orientation: outcome.Orientation(5)})
	require.Len(t, rec.all(), 1)
	assert.Equal(t, second, rec.all()[0].ThrowID)
	assert.Equal(t, dice.Face(5), rec.all()[0].Face)
}

func TestRestWindow(t *testing.T) {
	c, _, rec := newTestController(t, 1, func(cfg *Config) {
		cfg.RestWindow = 100 * time.Millisecond
	})
	c.ThrowAll()

	step := func(lin, ang float32) {
		c.Handle(Motion{
			Die:          0,
			LinearSpeed:  lin,
			AngularSpeed: ang,
			Orientation:  outcome.Orientation(3),
			Dt:           20 * time.Millisecond,
		})
	}

	for range 4 {
		step(0.01, 0.01)
	}
	step(1, 0) // movement resets the window
	for range 4 {
		step(0.01, 0.01)
	}
	assert.Equal(t, InFlight, c.State(0))
	assert.Empty(t, rec.all())

	step(0.01, 0.01)
	assert.Equal(t, Resolved, c.State(0))
	require.Len(t, rec.all(), 1)
	assert.Equal(t, dice.Face(3), rec.all()[0].Face)
}

func TestRestWindowDisabled(t *testing.T) {
	c, _, rec := newTestController(t, 1, func(cfg *Config) { cfg.RestWindow = 0 })
	c.ThrowAll()
	for range 100 {
		c.Handle(Motion{Die: 0, Orientation: outcome.Orientation(1), Dt: time.Second})
	}
	assert.Equal(t, InFlight, c.State(0))
	assert.Empty(t, rec.all())
}

func TestCallbackMayRethrow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	var c *Controller
	calls := 0
	c, err := New(cfg, []Body{&fakeBody{}}, func(Result) {
		calls++
		if calls == 1 {
			c.ThrowAll()
		}
	}, nil)
	require.NoError(t, err)

	c.ThrowAll()
	c.Handle(Collision{Die: 0, Orientation: outcome.Orientation(1)})
	assert.Equal(t, 1, calls)
	assert.Equal(t, InFlight, c.State(0))
}

func TestSeedDeterminism(t *testing.T) {
	a, fa, _ := newTestController(t, 2, nil)
	b, fb, _ := newTestController(t, 2, nil)
	a.ThrowAll()
	b.ThrowAll()
	for i := range fa {
		assert.Equal(t, fa[i].orient, fb[i].orient)
		assert.Equal(t, fa[i].force, fb[i].force)
	}
}

func TestConcurrentThrowAndHandle(t *testing.T) {
	c, _, _ := newTestController(t, 2, nil)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 100 {
			c.ThrowAll()
		}
	}()
	go func() {
		defer wg.Done()
		for i := range 100 {
			c.Handle(Collision{Die: i % 2, Orientation: outcome.Orientation(1)})
		}
	}()
	wg.Wait()
}

func TestBodySpecs(t *testing.T) {
	specs := DefaultConfig().BodySpecs(2)
	require.Len(t, specs, 2)
	assert.Equal(t, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, specs[0].HalfExtents)
	assert.Equal(t, float32(1), specs[1].Mass)
	assert.NotEqual(t, specs[0].Position, specs[1].Position)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "settling", Settling.String())
	assert.Equal(t, "unknown", State(42).String())
}
