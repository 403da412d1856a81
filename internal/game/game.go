// Package game wires the dice meshes, the physics world and the roll
// controller into a table that can be thrown and stepped.
package game

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/internal/dice/geometry"
	"github.com/Faultbox/carved-dice/internal/dice/panel"
	"github.com/Faultbox/carved-dice/internal/dice/roll"
	"github.com/Faultbox/carved-dice/internal/engine/mesh"
	"github.com/Faultbox/carved-dice/internal/engine/physics"
)

// ErrNotSettled is returned by Roll when the dice do not all resolve within
// the step limit.
var ErrNotSettled = errors.New("dice did not settle")

// Config holds table configuration.
type Config struct {
	Shape dice.Shape
	Roll  roll.Config
	Sim   physics.Config
	// MaxSteps bounds Roll. Zero means 60 seconds of simulated time.
	MaxSteps int
}

// Game is one table of dice.
type Game struct {
	config Config

	DieMesh     *mesh.Mesh
	PanelMesh   *mesh.Mesh
	DieMaterial mesh.Material
	PipMaterial mesh.Material

	world *physics.World
	ctrl  *roll.Controller
	log   *zap.Logger

	mu       sync.Mutex
	results  []roll.Result
	onResult func(roll.Result)
}

// New builds the meshes and bodies for cfg. Meshes come from cache when one
// is given. onResult may be nil.
func New(cfg Config, cache *geometry.Cache, onResult func(roll.Result), log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing table",
		zap.Int("dice", cfg.Shape.DiceCount),
		zap.Int("segments", cfg.Shape.Segments))

	g := &Game{
		config:      cfg,
		DieMaterial: geometry.Material(),
		PipMaterial: panel.Material(),
		log:         log,
		onResult:    onResult,
	}

	var err error
	if cache != nil {
		g.DieMesh, err = cache.Get(cfg.Shape)
	} else {
		g.DieMesh, err = geometry.Build(cfg.Shape)
	}
	if err != nil {
		return nil, fmt.Errorf("build die mesh: %w", err)
	}
	g.PanelMesh, err = panel.Build(cfg.Shape)
	if err != nil {
		return nil, fmt.Errorf("build pip panels: %w", err)
	}

	g.world, err = physics.NewWorld(cfg.Sim, log.Named("physics"))
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}

	specs := cfg.Roll.BodySpecs(cfg.Shape.DiceCount)
	bodies := make([]roll.Body, len(specs))
	for i, s := range specs {
		b, err := g.world.AddBox(s.HalfExtents, s.Mass, s.Position, s.Orientation)
		if err != nil {
			return nil, fmt.Errorf("add die %d: %w", i, err)
		}
		bodies[i] = b
	}

	g.ctrl, err = roll.New(cfg.Roll, bodies, g.record, log.Named("roll"))
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}

	log.Info("table initialized",
		zap.Int("vertices", len(g.DieMesh.Vertices)),
		zap.Int("triangles", g.DieMesh.TriangleCount()))
	return g, nil
}

func (g *Game) record(r roll.Result) {
	g.mu.Lock()
	if r.ThrowID == g.ctrl.ThrowID() {
		g.results = append(g.results, r)
	}
	g.mu.Unlock()

	g.log.Info("die resolved",
		zap.Stringer("throw", r.ThrowID),
		zap.Int("die", r.Die),
		zap.Int("face", int(r.Face)))
	if g.onResult != nil {
		g.onResult(r)
	}
}

// Throw launches every die.
func (g *Game) Throw() uuid.UUID {
	g.mu.Lock()
	g.results = nil
	g.mu.Unlock()
	return g.ctrl.ThrowAll()
}

// Step advances the world once and routes its events to the controller.
func (g *Game) Step() {
	for _, c := range g.world.Step() {
		g.ctrl.Handle(roll.Collision{
			Die:            c.Body,
			ImpactVelocity: c.ImpactVelocity,
			Orientation:    c.Orientation,
		})
	}
	dt := g.world.Dt()
	for i, b := range g.world.Bodies() {
		g.ctrl.Handle(roll.Motion{
			Die:          i,
			LinearSpeed:  b.Velocity().Length(),
			AngularSpeed: b.AngularVelocity().Length(),
			Orientation:  b.Orientation(),
			Dt:           dt,
		})
	}
}

// Roll throws and steps until every die has resolved. Results are ordered by
// die index.
func (g *Game) Roll() (uuid.UUID, []roll.Result, error) {
	limit := g.config.MaxSteps
	if limit <= 0 {
		limit = 60 * 60
	}

	id := g.Throw()
	for step := 0; !g.ctrl.Resolved(); step++ {
		if step >= limit {
			return id, nil, fmt.Errorf("%w: throw %s after %d steps", ErrNotSettled, id, limit)
		}
		g.Step()
	}
	return id, g.Results(), nil
}

// Results returns the results of the current throw so far, ordered by die
// index.
func (g *Game) Results() []roll.Result {
	g.mu.Lock()
	out := slices.Clone(g.results)
	g.mu.Unlock()
	slices.SortFunc(out, func(a, b roll.Result) int { return a.Die - b.Die })
	return out
}

// State returns the state of die i.
func (g *Game) State(i int) roll.State {
	return g.ctrl.State(i)
}

// Bodies returns the physics bodies in die order.
func (g *Game) Bodies() []*physics.Body {
	return g.world.Bodies()
}
