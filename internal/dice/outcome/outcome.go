// Package outcome decides which face of a resting die points up.
//
// The decision is a lookup keyed by coarse orientation buckets, not a
// continuous function: orientations that are not close to a face-up pose are
// reported as indeterminate and the caller is expected to ask again later.
package outcome

import (
	gomath "math"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/pkg/math"
)

// DefaultTolerance is the angular slack, in radians, around each bucket.
const DefaultTolerance = 0.1

// Angles are signed rotations about the world X, Y and Z axes, in radians.
type Angles struct {
	X, Y, Z float64
}

// Classify maps a pose to the face showing up. ok is false when the pose is
// not within eps of any face-up bucket; eps <= 0 selects DefaultTolerance.
func Classify(a Angles, eps float64) (face dice.Face, ok bool) {
	if eps <= 0 {
		eps = DefaultTolerance
	}
	near := func(angle, target float64) bool {
		return gomath.Abs(angle-target) < eps
	}
	nearHalfTurn := func(angle float64) bool {
		return near(angle, gomath.Pi) || near(angle, -gomath.Pi)
	}

	switch {
	case near(a.Z, 0):
		switch {
		case near(a.X, 0):
			return 1, true
		case near(a.X, gomath.Pi/2):
			return 4, true
		case near(a.X, -gomath.Pi/2):
			return 3, true
		case nearHalfTurn(a.X):
			return 6, true
		}
	case near(a.Z, gomath.Pi/2):
		return 2, true
	case near(a.Z, -gomath.Pi/2):
		return 5, true
	}
	return 0, false
}

// AnglesFromOrientation extracts the tilt of a body orientation. The heading
// (rotation about world up) is dropped, so a die resting on a face reports the
// same angles however it is turned on the table. Y is always 0.
func AnglesFromOrientation(q math.Quat) Angles {
	up := q.Normalize().Conjugate().Rotate(math.Vec3{Y: 1})
	ux, uy, uz := float64(up.X), float64(up.Y), float64(up.Z)
	return Angles{
		X: gomath.Atan2(-uz, uy),
		Z: gomath.Atan2(ux, gomath.Hypot(uy, uz)),
	}
}

// FaceUp classifies a body orientation directly.
func FaceUp(q math.Quat, eps float64) (dice.Face, bool) {
	return Classify(AnglesFromOrientation(q), eps)
}

var restPoses = map[dice.Face]struct {
	axis  math.Vec3
	angle float32
}{
	1: {math.Vec3{X: 1}, 0},
	2: {math.Vec3{Z: 1}, gomath.Pi / 2},
	3: {math.Vec3{X: 1}, -gomath.Pi / 2},
	4: {math.Vec3{X: 1}, gomath.Pi / 2},
	5: {math.Vec3{Z: 1}, -gomath.Pi / 2},
	6: {math.Vec3{X: 1}, gomath.Pi},
}

// Orientation returns the canonical rest pose showing face up. Any rotation
// about world up applied on top of it shows the same face.
func Orientation(face dice.Face) math.Quat {
	pose, ok := restPoses[face]
	if !ok {
		return math.QuatIdentity()
	}
	return math.QuatFromAxisAngle(pose.axis, pose.angle)
}
