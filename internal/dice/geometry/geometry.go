// Package geometry builds the die mesh: a subdivided cube whose edges and
// corners are rounded and whose faces are carved with pip hollows.
package geometry

import (
	"fmt"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/internal/engine/mesh"
)

// Build creates the die mesh for shape. It is deterministic: equal shapes
// always produce bit-identical meshes.
func Build(shape dice.Shape) (*mesh.Mesh, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid die shape: %w", err)
	}

	positions, indices := subdividedCube(shape.Segments)
	for i, p := range positions {
		p = roundVertex(p, shape.EdgeRadius)
		positions[i] = carveVertex(p, shape.NotchRadius, shape.NotchDepth)
	}

	m, err := mesh.New(positions, indices)
	if err != nil {
		return nil, fmt.Errorf("building die mesh: %w", err)
	}
	return m, nil
}

// Material is the die body material.
func Material() mesh.Material {
	return mesh.Material{
		Color:     mesh.ColorHex(0xeeeeee),
		Roughness: 0.5,
	}
}
