package raster

import (
	gomath "math"

	"github.com/Faultbox/carved-dice/internal/engine/mesh"
	"github.com/Faultbox/carved-dice/pkg/math"
)

// Light is a single directional light plus ambient fill.
type Light struct {
	Dir     math.Vec3 // towards the light, normalized
	Ambient float32
	Diffuse float32
	Gamma   float32
}

// DefaultLight returns the standard preview light coming from dir.
func DefaultLight(dir math.Vec3) Light {
	return Light{
		Dir:     dir.Normalize(),
		Ambient: 0.25,
		Diffuse: 0.85,
		Gamma:   2.2,
	}
}

// Shade returns the linear RGB of a surface point with normal n seen along
// view (from the point towards the eye).
func (l Light) Shade(n, view math.Vec3, mat mesh.Material) [3]float32 {
	ndl := n.Dot(l.Dir)
	if mat.DoubleSided && n.Dot(view) < 0 {
		n = n.Neg()
		ndl = -ndl
	}
	ndl = max(ndl, 0)

	// Rougher surfaces get a wider, dimmer highlight.
	rough := min(max(mat.Roughness, 0.02), 1)
	pow := 2 / (rough * rough)
	f0 := 0.04 + 0.96*mat.Metalness

	h := l.Dir.Add(view).Normalize()
	ndh := max(n.Dot(h), 0)
	specular := f0 * float32(gomath.Pow(float64(ndh), float64(pow))) * (1 - rough*0.5)

	diff := l.Ambient + l.Diffuse*ndl*(1-mat.Metalness)
	var out [3]float32
	for i := range out {
		lin := float32(gomath.Pow(float64(mat.Color[i]), float64(l.Gamma)))
		out[i] = lin*diff + specular
	}
	return out
}

// encode maps a linear value to an sRGB byte.
func (l Light) encode(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	return to8(float32(gomath.Pow(float64(v), 1/float64(l.Gamma))))
}
