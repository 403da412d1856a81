package geometry

import (
	gomath "math"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/pkg/math"
)

// PipSpacing is the lateral offset of off-center pips from the face center.
const PipSpacing = 0.23

// pipFace places the hollows of one face. Centers are in (u, v) face
// coordinates.
type pipFace struct {
	value   dice.Face
	u, v    math.Axis
	centers [][2]float32
}

const sp = PipSpacing

// pipLayout lists faces in the order vertices are tested against them.
var pipLayout = []pipFace{
	{value: 1, u: math.AxisX, v: math.AxisZ, centers: [][2]float32{{0, 0}}},
	{value: 2, u: math.AxisY, v: math.AxisZ, centers: [][2]float32{{-sp, -sp}, {sp, sp}}},
	{value: 3, u: math.AxisX, v: math.AxisY, centers: [][2]float32{{sp, -sp}, {0, 0}, {-sp, sp}}},
	{value: 4, u: math.AxisX, v: math.AxisY, centers: [][2]float32{{-sp, -sp}, {-sp, sp}, {sp, -sp}, {sp, sp}}},
	{value: 5, u: math.AxisY, v: math.AxisZ, centers: [][2]float32{{-sp, -sp}, {-sp, sp}, {0, 0}, {sp, -sp}, {sp, sp}}},
	{value: 6, u: math.AxisX, v: math.AxisZ, centers: [][2]float32{{-sp, -sp}, {-sp, 0}, {-sp, sp}, {sp, -sp}, {sp, 0}, {sp, sp}}},
}

// notchWave is a single raised-cosine bump: 2*depth at the center, falling
// to 0 with zero slope at +-radius and flat beyond.
func notchWave(x, radius, depth float32) float32 {
	t := float64(x / radius)
	t = gomath.Max(-1, gomath.Min(1, t))
	return depth * float32(gomath.Cos(gomath.Pi*t)+1)
}

// notch is the separable 2D hollow profile.
func notch(u, v, radius, depth float32) float32 {
	return notchWave(u, radius, depth) * notchWave(v, radius, depth)
}

// carveVertex pushes a vertex lying on a flat face inward by the sum of that
// face's hollows. Only the first matching face applies.
func carveVertex(p math.Vec3, radius, depth float32) math.Vec3 {
	for _, f := range pipLayout {
		axis, sign := f.value.Axis()
		if p.Get(axis) != sign*0.5 {
			continue
		}
		u, v := p.Get(f.u), p.Get(f.v)
		var sum float32
		for _, c := range f.centers {
			sum += notch(u-c[0], v-c[1], radius, depth)
		}
		p.Set(axis, p.Get(axis)-sign*sum)
		return p
	}
	return p
}
