package geometry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/internal/engine/mesh"
)

// Cache builds each distinct die shape once and hands out the shared mesh.
type Cache struct {
	mu     sync.Mutex
	meshes map[dice.Shape]*mesh.Mesh
	log    *zap.Logger
}

// NewCache creates an empty cache. log may be nil.
func NewCache(log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		meshes: make(map[dice.Shape]*mesh.Mesh),
		log:    log,
	}
}

// Get returns the mesh for shape, building it on first use.
// Build errors are not cached.
func (c *Cache) Get(shape dice.Shape) (*mesh.Mesh, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.meshes[shape]; ok {
		return m, nil
	}

	m, err := Build(shape)
	if err != nil {
		return nil, err
	}
	c.meshes[shape] = m
	c.log.Debug("built die mesh",
		zap.Int("segments", shape.Segments),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Uint64("fingerprint", m.Fingerprint()),
	)
	return m, nil
}

// Len returns the number of cached shapes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.meshes)
}
