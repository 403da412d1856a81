package mesh

import (
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/carved-dice/pkg/math"
)

// WeldEpsilon is the position tolerance under which two vertices are welded.
const WeldEpsilon = 1e-4

// New welds duplicate positions, computes smooth normals and validates the
// result. indices describe triangles over positions.
func New(positions []math.Vec3, indices []uint32) (*Mesh, error) {
	if err := checkIndices(len(positions), indices); err != nil {
		return nil, err
	}

	welded, remapped := Weld(positions, indices, WeldEpsilon)
	normals := ComputeNormals(welded, remapped)

	vertices := make([]Vertex, len(welded))
	bounds := emptyBounds()
	for i, p := range welded {
		vertices[i] = Vertex{Position: p, Normal: normals[i]}
		updateBounds(&bounds, p)
	}

	m := &Mesh{
		Vertices: vertices,
		Indices:  remapped,
		Bounds:   bounds,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Weld merges vertices whose positions fall in the same epsilon-sized cell and
// rewrites indices to reference the surviving vertex. The first occurrence of
// a position wins, so output order follows input order.
func Weld(positions []math.Vec3, indices []uint32, epsilon float32) ([]math.Vec3, []uint32) {
	remap := make([]uint32, len(positions))
	cells := make(map[[3]int64]uint32, len(positions))
	welded := make([]math.Vec3, 0, len(positions))

	for i, p := range positions {
		key := quantize(p, epsilon)
		if idx, ok := cells[key]; ok {
			remap[i] = idx
			continue
		}
		idx := uint32(len(welded))
		cells[key] = idx
		remap[i] = idx
		welded = append(welded, p)
	}

	out := make([]uint32, len(indices))
	for i, idx := range indices {
		out[i] = remap[idx]
	}
	return welded, out
}

// ComputeNormals returns per-vertex normals averaged from the adjacent
// triangles. The unnormalized cross product is accumulated, so larger
// triangles weigh more.
func ComputeNormals(positions []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		e1 := positions[b].Sub(positions[a])
		e2 := positions[c].Sub(positions[a])
		n := e1.Cross(e2)

		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// Merge concatenates meshes into one draw object. Vertices are not welded
// across inputs.
func Merge(meshes ...*Mesh) *Mesh {
	out := &Mesh{Bounds: emptyBounds()}
	for _, m := range meshes {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, idx := range m.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
		updateBounds(&out.Bounds, m.Bounds.Min)
		updateBounds(&out.Bounds, m.Bounds.Max)
	}
	return out
}

// Validate checks the invariants every renderable mesh must hold: a non-empty
// triangle list, in-range indices, no collapsed triangles and finite data.
func (m *Mesh) Validate() error {
	if len(m.Indices) == 0 {
		return fmt.Errorf("%w: empty index buffer", ErrDegenerate)
	}
	if err := checkIndices(len(m.Vertices), m.Indices); err != nil {
		return err
	}
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if a == b || b == c || a == c {
			return fmt.Errorf("%w: triangle %d collapsed to (%d, %d, %d)", ErrDegenerate, i/3, a, b, c)
		}
	}
	for i, v := range m.Vertices {
		if !v.Position.IsFinite() || !v.Normal.IsFinite() {
			return fmt.Errorf("%w: vertex %d is not finite", ErrDegenerate, i)
		}
	}
	return nil
}

// Positions returns the vertex positions as a flat xyz slice.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Position.X, v.Position.Y, v.Position.Z)
	}
	return out
}

// Normals returns the vertex normals as a flat xyz slice.
func (m *Mesh) Normals() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	return out
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Fingerprint hashes the exact bit patterns of positions, normals and
// indices. Two meshes with equal fingerprints are bit-identical for any
// practical purpose.
func (m *Mesh) Fingerprint() uint64 {
	buf := make([]byte, 0, len(m.Vertices)*24+len(m.Indices)*4)
	for _, v := range m.Vertices {
		for _, c := range [6]float32{v.Position.X, v.Position.Y, v.Position.Z, v.Normal.X, v.Normal.Y, v.Normal.Z} {
			buf = binary.LittleEndian.AppendUint32(buf, gomath.Float32bits(c))
		}
	}
	for _, idx := range m.Indices {
		buf = binary.LittleEndian.AppendUint32(buf, idx)
	}
	return xxhash.Sum64(buf)
}

func checkIndices(vertexCount int, indices []uint32) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrDegenerate, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d references vertex %d of %d", ErrDegenerate, i, idx, vertexCount)
		}
	}
	return nil
}

func quantize(p math.Vec3, epsilon float32) [3]int64 {
	e := float64(epsilon)
	return [3]int64{
		int64(gomath.Round(float64(p.X) / e)),
		int64(gomath.Round(float64(p.Y) / e)),
		int64(gomath.Round(float64(p.Z) / e)),
	}
}

func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
