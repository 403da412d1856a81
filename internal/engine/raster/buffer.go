// Package raster is a small software renderer for previewing meshes offline:
// perspective projection, z-buffered triangle fill and Gouraud-interpolated
// Blinn-Phong shading into an NRGBA image.
package raster

import (
	gomath "math"

	"github.com/Faultbox/carved-dice/internal/engine/mesh"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float32 // NDC depth per pixel, +inf when empty
}

// NewFrameBuffer allocates a frame buffer cleared to background.
func NewFrameBuffer(w, h int, background mesh.Color) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		Depth:  make([]float32, w*h),
	}
	fb.Clear(background)
	return fb
}

// Clear resets every pixel to background and empties the depth buffer.
func (fb *FrameBuffer) Clear(background mesh.Color) {
	r, g, b := to8(background[0]), to8(background[1]), to8(background[2])
	for i := range fb.Depth {
		fb.Depth[i] = float32(gomath.Inf(1))
		fb.Color[i*4] = r
		fb.Color[i*4+1] = g
		fb.Color[i*4+2] = b
		fb.Color[i*4+3] = 255
	}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
