// Package panel builds the pip backing panels: six flat quads sitting just
// under the die faces. Drawn in a dark material, they show through the
// carved hollows and make the pips read as solid color.
package panel

import (
	"fmt"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/internal/engine/mesh"
	"github.com/Faultbox/carved-dice/pkg/math"
)

// Material is the pip color used for the panels.
func Material() mesh.Material {
	return mesh.Material{
		Color:       mesh.ColorHex(0x000000),
		Roughness:   0,
		Metalness:   1,
		DoubleSided: true,
	}
}

// Build returns the six panels merged into one mesh. Each panel covers the
// flat part of its face and sits PanelInset below it.
func Build(shape dice.Shape) (*mesh.Mesh, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid die shape: %w", err)
	}

	half := 0.5 - shape.EdgeRadius
	distance := 0.5 - shape.PanelInset

	quads := make([]*mesh.Mesh, 0, len(dice.Faces))
	for _, f := range dice.Faces {
		q, err := quad(f.Normal(), half, distance)
		if err != nil {
			return nil, fmt.Errorf("building panel for face %d: %w", f, err)
		}
		quads = append(quads, q)
	}
	return mesh.Merge(quads...), nil
}

// quad builds a square of the given half-size facing normal, centered
// distance along it. The square is authored in the XY plane facing +Z and
// rotated into place.
func quad(normal math.Vec3, half, distance float32) (*mesh.Mesh, error) {
	rot := math.QuatBetween(math.Vec3{Z: 1}, normal)
	center := normal.Scale(distance)

	corners := [4]math.Vec3{
		{X: -half, Y: -half},
		{X: half, Y: -half},
		{X: half, Y: half},
		{X: -half, Y: half},
	}
	positions := make([]math.Vec3, len(corners))
	for i, c := range corners {
		positions[i] = rot.Rotate(c).Add(center)
	}
	return mesh.New(positions, []uint32{0, 1, 2, 0, 2, 3})
}
