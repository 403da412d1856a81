// Package roll drives dice through a throw: it launches every body, watches
// the events reported by the physics collaborator and, once a die settles,
// asks the outcome classifier which face is up.
package roll

import (
	"time"

	"github.com/google/uuid"

	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/pkg/math"
)

// State is the lifecycle stage of one die.
type State int

const (
	Idle State = iota
	InFlight
	Settling
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Settling:
		return "settling"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Body is the command surface of one physics-owned die body. The controller
// never reads or mutates physics internals beyond these calls.
type Body interface {
	SetPosition(p math.Vec3)
	SetVelocity(v math.Vec3)
	SetAngularVelocity(w math.Vec3)
	SetOrientation(q math.Quat)
	// ApplyImpulse applies force at a point given in body-local coordinates.
	ApplyImpulse(force, localPoint math.Vec3)
}

// BodySpec is what the physics collaborator needs to create a die body.
type BodySpec struct {
	HalfExtents math.Vec3
	Mass        float32
	Position    math.Vec3
	Orientation math.Quat
}

// Result is a resolved die value for one throw.
type Result struct {
	ThrowID uuid.UUID
	Die     int
	Face    dice.Face
}

// Event is a notification from the physics collaborator about one die.
type Event interface {
	DieIndex() int
}

// Collision reports a contact involving a die.
type Collision struct {
	Die            int
	ImpactVelocity float32
	Orientation    math.Quat
}

// DieIndex implements Event.
func (c Collision) DieIndex() int { return c.Die }

// Motion reports a die's speeds after a simulation step of length Dt.
type Motion struct {
	Die          int
	LinearSpeed  float32
	AngularSpeed float32
	Orientation  math.Quat
	Dt           time.Duration
}

// DieIndex implements Event.
func (m Motion) DieIndex() int { return m.Die }
