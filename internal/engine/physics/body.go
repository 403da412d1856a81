package physics

import (
	"github.com/Faultbox/carved-dice/pkg/math"
)

// Body is a cube-shaped rigid body. All setters wake the body.
type Body struct {
	halfExtents math.Vec3
	mass        float32
	inertia     float32

	position        math.Vec3
	velocity        math.Vec3
	angularVelocity math.Vec3
	orientation     math.Quat
	asleep          bool
}

func newBody(halfExtents math.Vec3, mass float32, pos math.Vec3, q math.Quat) *Body {
	// Solid box about its centre; uses the largest extent so the tensor
	// stays a scalar.
	side := 2 * max(halfExtents.X, halfExtents.Y, halfExtents.Z)
	return &Body{
		halfExtents: halfExtents,
		mass:        mass,
		inertia:     mass * side * side / 6,
		position:    pos,
		orientation: q.Normalize(),
	}
}

// SetPosition moves the body's centre to p.
func (b *Body) SetPosition(p math.Vec3) {
	b.position = p
	b.asleep = false
}

// SetVelocity sets the linear velocity.
func (b *Body) SetVelocity(v math.Vec3) {
	b.velocity = v
	b.asleep = false
}

// SetAngularVelocity sets the angular velocity in world axes, radians per second.
func (b *Body) SetAngularVelocity(w math.Vec3) {
	b.angularVelocity = w
	b.asleep = false
}

// SetOrientation sets the rotation, normalizing q.
func (b *Body) SetOrientation(q math.Quat) {
	b.orientation = q.Normalize()
	b.asleep = false
}

// ApplyImpulse applies force as an instantaneous impulse at localPoint, a
// point in body coordinates.
func (b *Body) ApplyImpulse(force, localPoint math.Vec3) {
	b.velocity = b.velocity.Add(force.Scale(1 / b.mass))
	r := b.orientation.Rotate(localPoint)
	b.angularVelocity = b.angularVelocity.Add(r.Cross(force).Scale(1 / b.inertia))
	b.asleep = false
}

// Position returns the world position of the body's centre.
func (b *Body) Position() math.Vec3 {
	return b.position
}

// Velocity returns the linear velocity.
func (b *Body) Velocity() math.Vec3 {
	return b.velocity
}

// AngularVelocity returns the angular velocity in world axes.
func (b *Body) AngularVelocity() math.Vec3 {
	return b.angularVelocity
}

// Orientation returns the body rotation.
func (b *Body) Orientation() math.Quat {
	return b.orientation
}

// Asleep reports whether the body has come to rest and stopped integrating.
func (b *Body) Asleep() bool {
	return b.asleep
}

// lowest returns the world height of the lowest box corner.
func (b *Body) lowest() float32 {
	h := b.halfExtents
	low := float32(0)
	first := true
	for _, sx := range []float32{-1, 1} {
		for _, sy := range []float32{-1, 1} {
			for _, sz := range []float32{-1, 1} {
				c := b.orientation.Rotate(math.Vec3{X: sx * h.X, Y: sy * h.Y, Z: sz * h.Z})
				if first || c.Y < low {
					low = c.Y
					first = false
				}
			}
		}
	}
	return b.position.Y + low
}

// snapFlat rotates the body so the local axis closest to world up points
// exactly up, keeping its heading, and returns that axis.
func (b *Body) snapFlat() math.Axis {
	up := math.Vec3{Y: 1}
	local := b.orientation.Conjugate().Rotate(up)

	axis := math.AxisX
	for _, a := range []math.Axis{math.AxisY, math.AxisZ} {
		if math.Abs(local.Get(a)) > math.Abs(local.Get(axis)) {
			axis = a
		}
	}
	e := math.Unit(axis, math.Sign(local.Get(axis)))

	fix := math.QuatBetween(b.orientation.Rotate(e), up)
	b.orientation = fix.Mul(b.orientation).Normalize()
	return axis
}

// integrate advances the free-flight state by dt seconds.
func (b *Body) integrate(gravity, dt float32) {
	b.velocity.Y += gravity * dt
	b.position = b.position.Add(b.velocity.Scale(dt))

	w := b.angularVelocity
	q := b.orientation
	spin := math.Quat{X: w.X, Y: w.Y, Z: w.Z}.Mul(q)
	h := dt / 2
	b.orientation = math.Quat{
		X: q.X + h*spin.X,
		Y: q.Y + h*spin.Y,
		Z: q.Z + h*spin.Z,
		W: q.W + h*spin.W,
	}.Normalize()
}
