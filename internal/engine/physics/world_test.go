package physics

import (
	gomath "math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/carved-dice/pkg/math"
)

var unitHalf = math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}

func newWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(DefaultConfig(), nil)
	require.NoError(t, err)
	return w
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero step", func(c *Config) { c.Step = 0 }},
		{"upward gravity", func(c *Config) { c.Gravity = 1 }},
		{"elastic", func(c *Config) { c.Restitution = 1 }},
		{"friction", func(c *Config) { c.Friction = 2 }},
		{"damping", func(c *Config) { c.AngularDamping = 1 }},
		{"sleep below gravity step", func(c *Config) { c.SleepImpact = 0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := NewWorld(cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestAddBoxRejectsBadBodies(t *testing.T) {
	w := newWorld(t)
	_, err := w.AddBox(unitHalf, 0, math.Vec3{}, math.QuatIdentity())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = w.AddBox(math.Vec3{X: 1}, 1, math.Vec3{}, math.QuatIdentity())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Empty(t, w.Bodies())
}

func TestFreeFall(t *testing.T) {
	w := newWorld(t)
	b, err := w.AddBox(unitHalf, 1, math.Vec3{Y: 10}, math.QuatIdentity())
	require.NoError(t, err)

	for range 60 {
		assert.Empty(t, w.Step())
	}
	// Semi-implicit Euler over one second lands close to v = g, y = y0 + g/2.
	assert.InDelta(t, -9.82, float64(b.Velocity().Y), 1e-3)
	assert.InDelta(t, 10-9.82/2, float64(b.Position().Y), 0.1)
	assert.Equal(t, uint64(60), w.Steps())
}

func TestBounceLosesEnergy(t *testing.T) {
	w := newWorld(t)
	b, err := w.AddBox(unitHalf, 1, math.Vec3{Y: -4}, math.QuatIdentity())
	require.NoError(t, err)

	var impacts []float32
	for range 600 {
		for _, c := range w.Step() {
			if c.ImpactVelocity > 0 {
				impacts = append(impacts, c.ImpactVelocity)
			}
		}
	}
	require.GreaterOrEqual(t, len(impacts), 2)
	for i := 1; i < len(impacts); i++ {
		assert.Less(t, impacts[i], impacts[i-1], "bounce %d", i)
	}
	assert.True(t, b.Asleep())
	assert.InDelta(t, -6.5, float64(b.Position().Y), 1e-5)
}

func TestImpulse(t *testing.T) {
	w := newWorld(t)
	b, err := w.AddBox(unitHalf, 2, math.Vec3{}, math.QuatIdentity())
	require.NoError(t, err)

	b.ApplyImpulse(math.Vec3{X: -4, Y: 4}, math.Vec3{})
	assert.Equal(t, math.Vec3{X: -2, Y: 2}, b.Velocity())
	assert.Equal(t, math.Vec3{}, b.AngularVelocity(), "central impulse adds no spin")

	b.ApplyImpulse(math.Vec3{X: -1, Y: 1}, math.Vec3{Z: 0.2})
	// r x F = (0,0,0.2) x (-1,1,0) = (-0.2,-0.2,0); I = 2/6.
	got := b.AngularVelocity()
	assert.InDelta(t, -0.6, float64(got.X), 1e-5)
	assert.InDelta(t, -0.6, float64(got.Y), 1e-5)
	assert.InDelta(t, 0, float64(got.Z), 1e-5)
}

func TestSettlesFlat(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	w := newWorld(t)
	for i := range 8 {
		q := math.QuatFromEulerXYZ(
			float32(2*gomath.Pi*rng.Float64()), 0, float32(2*gomath.Pi*rng.Float64()))
		b, err := w.AddBox(unitHalf, 1, math.Vec3{X: 6, Y: float32(i) * 1.5}, q)
		require.NoError(t, err)
		f := 3 + 5*rng.Float32()
		b.ApplyImpulse(math.Vec3{X: -f, Y: f}, math.Vec3{Z: 0.2})
	}

	steps := 0
	for !w.Settled() {
		w.Step()
		steps++
		require.Less(t, steps, 5000, "world never settled")
	}

	up := math.Vec3{Y: 1}
	for i, b := range w.Bodies() {
		local := b.Orientation().Conjugate().Rotate(up)
		aligned := 0
		for _, a := range []math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
			if math.Abs(local.Get(a)) > 0.9999 {
				aligned++
			}
		}
		assert.Equal(t, 1, aligned, "body %d not flat: %+v", i, local)
		assert.InDelta(t, -6.5, float64(b.Position().Y), 1e-5)
	}
}

func TestSleepingBodiesReportRestingContact(t *testing.T) {
	w := newWorld(t)
	b, err := w.AddBox(unitHalf, 1, math.Vec3{Y: -6.5}, math.QuatIdentity())
	require.NoError(t, err)

	for range 5 {
		w.Step()
	}
	require.True(t, b.Asleep())

	contacts := w.Step()
	require.Len(t, contacts, 1)
	assert.Equal(t, Contact{Body: 0, Orientation: b.Orientation()}, contacts[0])

	b.SetVelocity(math.Vec3{Y: 1})
	assert.False(t, b.Asleep(), "setters wake the body")
}

func TestDt(t *testing.T) {
	w := newWorld(t)
	assert.Equal(t, time.Second/60, w.Dt())
}
