package dice

import "github.com/Faultbox/carved-dice/pkg/math"

// Face is a die value in 1..6.
type Face int

// Faces in value order.
var Faces = [6]Face{1, 2, 3, 4, 5, 6}

// faceNormals maps each value to the outward local axis of the face that
// carries it. Opposite faces sum to 7 and local +Y carries 1.
var faceNormals = map[Face]struct {
	axis math.Axis
	sign float32
}{
	1: {math.AxisY, 1},
	2: {math.AxisX, 1},
	3: {math.AxisZ, 1},
	4: {math.AxisZ, -1},
	5: {math.AxisX, -1},
	6: {math.AxisY, -1},
}

// Valid reports whether f is a real die value.
func (f Face) Valid() bool {
	return f >= 1 && f <= 6
}

// Opposite returns the value on the other side of the die.
func (f Face) Opposite() Face {
	return 7 - f
}

// Axis returns the local axis and sign of the face's outward normal.
func (f Face) Axis() (math.Axis, float32) {
	n := faceNormals[f]
	return n.axis, n.sign
}

// Normal returns the face's outward normal in die-local space.
func (f Face) Normal() math.Vec3 {
	axis, sign := f.Axis()
	return math.Unit(axis, sign)
}

// FaceAt returns the value carried by the face whose outward normal is the
// given axis and sign.
func FaceAt(axis math.Axis, sign float32) Face {
	for f, n := range faceNormals {
		if n.axis == axis && n.sign == sign {
			return f
		}
	}
	return 0
}
