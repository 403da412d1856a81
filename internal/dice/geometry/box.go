package geometry

import "github.com/Faultbox/carved-dice/pkg/math"

// cubeFace describes one side of the subdivided cube: its outward axis and
// the two in-plane axes, oriented so that u x v points outward.
type cubeFace struct {
	axis  math.Axis
	sign  float32
	u, v  math.Axis
	uSign float32
	vSign float32
}

var cubeFaces = [6]cubeFace{
	{axis: math.AxisX, sign: 1, u: math.AxisZ, uSign: -1, v: math.AxisY, vSign: 1},
	{axis: math.AxisX, sign: -1, u: math.AxisZ, uSign: 1, v: math.AxisY, vSign: 1},
	{axis: math.AxisY, sign: 1, u: math.AxisX, uSign: 1, v: math.AxisZ, vSign: -1},
	{axis: math.AxisY, sign: -1, u: math.AxisX, uSign: 1, v: math.AxisZ, vSign: 1},
	{axis: math.AxisZ, sign: 1, u: math.AxisX, uSign: 1, v: math.AxisY, vSign: 1},
	{axis: math.AxisZ, sign: -1, u: math.AxisX, uSign: -1, v: math.AxisY, vSign: 1},
}

// latticeCoord maps lattice step k of segments to [-0.5, 0.5]. The result is
// exactly antisymmetric (latticeCoord(segments-k) == -latticeCoord(k)), so a
// vertex on a seam gets bit-identical coordinates from both faces that
// generate it.
func latticeCoord(k, segments int) float32 {
	return float32(2*k-segments) / float32(2*segments)
}

// subdividedCube returns a unit cube with segments x segments quads per face.
// Each face carries its own copy of its border vertices, like a cube built for
// per-face texturing, so seams hold duplicate positions until welded.
func subdividedCube(segments int) ([]math.Vec3, []uint32) {
	row := segments + 1
	positions := make([]math.Vec3, 0, 6*row*row)
	indices := make([]uint32, 0, 6*segments*segments*6)

	for _, f := range cubeFaces {
		base := uint32(len(positions))
		for j := 0; j <= segments; j++ {
			for i := 0; i <= segments; i++ {
				var p math.Vec3
				p.Set(f.axis, f.sign*0.5)
				p.Set(f.u, f.uSign*latticeCoord(i, segments))
				p.Set(f.v, f.vSign*latticeCoord(j, segments))
				positions = append(positions, p)
			}
		}

		for j := 0; j < segments; j++ {
			for i := 0; i < segments; i++ {
				a := base + uint32(j*row+i)
				b := a + 1
				c := a + uint32(row) + 1
				d := a + uint32(row)
				indices = append(indices, a, b, c, a, c, d)
			}
		}
	}
	return positions, indices
}
