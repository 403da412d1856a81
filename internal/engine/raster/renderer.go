package raster

import (
	"image"
	gomath "math"

	"github.com/Faultbox/carved-dice/internal/engine/mesh"
	"github.com/Faultbox/carved-dice/pkg/math"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Eye, Target, Up math.Vec3
	FOV             float32 // vertical, radians
	Near, Far       float32
}

// OrbitCamera places a camera distance away from the origin at the given
// elevation and azimuth, both in degrees.
func OrbitCamera(distance, elevation, azimuth, fov float32) Camera {
	el := float64(elevation) * gomath.Pi / 180
	az := float64(azimuth) * gomath.Pi / 180
	eye := math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}.Scale(distance)
	return Camera{
		Eye:  eye,
		Up:   math.Vec3{Y: 1},
		FOV:  fov * gomath.Pi / 180,
		Near: 0.1,
		Far:  distance * 4,
	}
}

// Renderer draws meshes into one frame buffer. It is not safe for
// concurrent use; use one Renderer per goroutine.
type Renderer struct {
	fb       *FrameBuffer
	viewProj math.Mat4
	eye      math.Vec3
	light    Light

	// scratch, reused across Draw calls
	sx, sy, sz []float32
	shade      [][3]float32
}

// New creates a w x h renderer.
func New(w, h int, cam Camera, light Light, background mesh.Color) *Renderer {
	proj := math.Perspective(cam.FOV, float32(w)/float32(h), cam.Near, cam.Far)
	view := math.LookAt(cam.Eye, cam.Target, cam.Up)
	return &Renderer{
		fb:       NewFrameBuffer(w, h, background),
		viewProj: proj.Mul(view),
		eye:      cam.Eye,
		light:    light,
	}
}

// FrameBuffer returns the render target.
func (r *Renderer) FrameBuffer() *FrameBuffer {
	return r.fb
}

// Draw renders m transformed by world, a rigid transform. Faces wound
// clockwise on screen are culled unless the material is double sided.
func (r *Renderer) Draw(m *mesh.Mesh, world math.Mat4, mat mesh.Material) {
	n := len(m.Vertices)
	r.sx = resize(r.sx, n)
	r.sy = resize(r.sy, n)
	r.sz = resize(r.sz, n)
	if cap(r.shade) < n {
		r.shade = make([][3]float32, n)
	}
	r.shade = r.shade[:n]

	w, h := float32(r.fb.Width), float32(r.fb.Height)
	mvp := r.viewProj.Mul(world)
	for i, v := range m.Vertices {
		ndc := mvp.TransformVec3(v.Position)
		r.sx[i] = (ndc.X + 1) / 2 * w
		r.sy[i] = (1 - ndc.Y) / 2 * h
		r.sz[i] = ndc.Z

		p := world.TransformVec3(v.Position)
		view := r.eye.Sub(p).Normalize()
		r.shade[i] = r.light.Shade(world.TransformDirection(v.Normal), view, mat)
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		r.triangle(m.Indices[t], m.Indices[t+1], m.Indices[t+2], mat.DoubleSided)
	}
}

func resize(s []float32, n int) []float32 {
	if cap(s) < n {
		return make([]float32, n)
	}
	return s[:n]
}

func (r *Renderer) triangle(i0, i1, i2 uint32, doubleSided bool) {
	x0, y0, z0 := r.sx[i0], r.sy[i0], r.sz[i0]
	x1, y1, z1 := r.sx[i1], r.sy[i1], r.sz[i1]
	x2, y2, z2 := r.sx[i2], r.sy[i2], r.sz[i2]

	for _, z := range [3]float32{z0, z1, z2} {
		if z < -1 || z > 1 {
			return // clipped by near or far plane
		}
	}

	// Screen y points down, so counter-clockwise front faces have negative area.
	area := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if area > -1e-8 && area < 1e-8 {
		return
	}
	if area > 0 && !doubleSided {
		return
	}
	inv := 1 / area

	fb := r.fb
	minX := clampInt(int(min(x0, x1, x2)), 0, fb.Width-1)
	maxX := clampInt(int(max(x0, x1, x2))+1, 0, fb.Width-1)
	minY := clampInt(int(min(y0, y1, y2)), 0, fb.Height-1)
	maxY := clampInt(int(max(y0, y1, y2))+1, 0, fb.Height-1)

	c0, c1, c2 := r.shade[i0], r.shade[i1], r.shade[i2]

	for py := minY; py <= maxY; py++ {
		fy := float32(py) + 0.5
		row := py * fb.Width
		for px := minX; px <= maxX; px++ {
			fx := float32(px) + 0.5

			w0 := ((x1-fx)*(y2-fy) - (x2-fx)*(y1-fy)) * inv
			w1 := ((x2-fx)*(y0-fy) - (x0-fx)*(y2-fy)) * inv
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			idx := row + px
			if z >= fb.Depth[idx] {
				continue
			}
			fb.Depth[idx] = z

			o := idx * 4
			for k := range 3 {
				fb.Color[o+k] = r.light.encode(w0*c0[k] + w1*c1[k] + w2*c2[k])
			}
			fb.Color[o+3] = 255
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Image copies the frame buffer into a new image.
func (r *Renderer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.fb.Width, r.fb.Height))
	copy(img.Pix, r.fb.Color)
	return img
}
