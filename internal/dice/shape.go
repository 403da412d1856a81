// Package dice defines the values shared by the die geometry, pip panels,
// outcome classifier and roll controller: the shape parameters and the
// assignment of pip values to cube faces.
package dice

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSegments    = errors.New("segments must be at least 1")
	ErrInvalidEdgeRadius  = errors.New("edge radius must be in [0, 0.5)")
	ErrInvalidNotchRadius = errors.New("notch radius must be positive")
	ErrInvalidNotchDepth  = errors.New("notch depth must not be negative")
	// ErrNotchTooDeep rejects depths whose stacked hollows could reach past
	// the centre of the die (see Shape.MaxCarve). The bound assumes every pip
	// on a face overlaps, so it also rejects some depths a sparse layout would
	// survive; carved vertices then always stay inside the unit cube.
	ErrNotchTooDeep      = errors.New("notch depth carves through the die")
	ErrInvalidDiceCount  = errors.New("dice count must be at least 1")
	ErrInvalidPanelInset = errors.New("panel inset must be in (0, 0.5)")
)

// MaxPipsPerFace is the largest pip count on any face.
const MaxPipsPerFace = 6

// Shape holds the parameters of a die shape. The die is a unit cube centered
// on the origin, so every length here is a fraction of the side.
type Shape struct {
	// Segments is the subdivision count per cube edge.
	Segments int `yaml:"segments" env:"SEGMENTS"`
	// EdgeRadius rounds edges and corners.
	EdgeRadius float32 `yaml:"edge_radius" env:"EDGE_RADIUS"`
	// NotchRadius is the half-width of one pip hollow.
	NotchRadius float32 `yaml:"notch_radius" env:"NOTCH_RADIUS"`
	// NotchDepth scales the pip hollow profile.
	NotchDepth float32 `yaml:"notch_depth" env:"NOTCH_DEPTH"`
	// DiceCount is how many die instances share the mesh.
	DiceCount int `yaml:"dice_count" env:"DICE_COUNT"`
	// PanelInset is how far below each face the pip panels sit.
	PanelInset float32 `yaml:"panel_inset" env:"PANEL_INSET"`
}

// DefaultShape returns the standard die shape.
func DefaultShape() Shape {
	return Shape{
		Segments:    40,
		EdgeRadius:  0.07,
		NotchRadius: 0.12,
		NotchDepth:  0.1,
		DiceCount:   2,
		PanelInset:  0.02,
	}
}

// Validate reports the first invalid parameter. Values are never clamped.
func (s Shape) Validate() error {
	if s.Segments < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSegments, s.Segments)
	}
	// Written as negated ranges so NaN fails too.
	if !(s.EdgeRadius >= 0 && s.EdgeRadius < 0.5) {
		return fmt.Errorf("%w: got %v", ErrInvalidEdgeRadius, s.EdgeRadius)
	}
	if !(s.NotchRadius > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidNotchRadius, s.NotchRadius)
	}
	if !(s.NotchDepth >= 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidNotchDepth, s.NotchDepth)
	}
	if s.MaxCarve() >= 1 {
		return fmt.Errorf("%w: depth %v carves %v", ErrNotchTooDeep, s.NotchDepth, s.MaxCarve())
	}
	if s.DiceCount < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDiceCount, s.DiceCount)
	}
	if !(s.PanelInset > 0 && s.PanelInset < 0.5) {
		return fmt.Errorf("%w: got %v", ErrInvalidPanelInset, s.PanelInset)
	}
	return nil
}

// MaxCarve bounds how far pip hollows can push a face inward: one hollow
// peaks at (2*depth)^2 and at most MaxPipsPerFace of them can stack.
func (s Shape) MaxCarve() float32 {
	peak := 2 * s.NotchDepth
	return MaxPipsPerFace * peak * peak
}
