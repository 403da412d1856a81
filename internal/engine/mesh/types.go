// Package mesh holds the immutable triangle meshes handed to the rendering
// collaborator, along with the vertex welding and normal smoothing passes
// used while building them.
package mesh

import (
	"errors"

	"github.com/Faultbox/carved-dice/pkg/math"
)

// ErrDegenerate is returned when a built mesh fails its sanity check.
var ErrDegenerate = errors.New("degenerate mesh")

// Vertex is a welded mesh vertex with its smoothed normal.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Mesh holds the complete mesh data ready for GPU upload.
// A Mesh is never modified after construction and may be shared freely.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Color is an RGB color with components in [0, 1].
type Color [3]float32

// ColorHex converts a 0xRRGGBB value to a Color.
func ColorHex(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255.0,
		float32((hex>>8)&0xff) / 255.0,
		float32(hex&0xff) / 255.0,
	}
}

// Material describes how the renderer should draw a mesh.
type Material struct {
	Color     Color
	Roughness float32
	Metalness float32
	// DoubleSided disables back-face culling.
	DoubleSided bool
}
