package geometry

import "github.com/Faultbox/carved-dice/pkg/math"

// vertexClass tells which rounding rule applies to a cube vertex.
type vertexClass int

const (
	classFace vertexClass = iota
	classEdge
	classCorner
)

// classify counts the coordinates lying beyond the inner cube. Two extreme
// coordinates put the vertex on an edge running along the remaining axis.
func classify(p math.Vec3, inner float32) (vertexClass, math.Axis) {
	extreme := 0
	free := math.AxisX
	for _, axis := range [3]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		if math.Abs(p.Get(axis)) > inner {
			extreme++
		} else {
			free = axis
		}
	}
	switch extreme {
	case 3:
		return classCorner, free
	case 2:
		return classEdge, free
	default:
		return classFace, free
	}
}

// roundVertex moves corner vertices onto a sphere and edge vertices onto a
// cylinder of the given radius, both centered on the inner cube.
func roundVertex(p math.Vec3, radius float32) math.Vec3 {
	inner := 0.5 - radius
	class, free := classify(p, inner)
	if class == classFace {
		return p
	}

	anchor := math.Vec3{
		X: math.Sign(p.X) * inner,
		Y: math.Sign(p.Y) * inner,
		Z: math.Sign(p.Z) * inner,
	}
	offset := p.Sub(anchor)

	if class == classCorner {
		return anchor.Add(offset.Normalize().Scale(radius))
	}

	offset.Set(free, 0)
	out := anchor.Add(offset.Normalize().Scale(radius))
	out.Set(free, p.Get(free))
	return out
}
