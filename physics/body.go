package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/ecs"
)

// BodyKind selects how the simulation moves a body.
type BodyKind int

const (
	// Dynamic bodies are pushed by gravity and contacts.
	Dynamic BodyKind = iota
	// Kinematic bodies move only when told to and are never pushed.
	Kinematic
)

// WallSide is the side on which a body is pressed against terrain.
type WallSide int

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
)

// Contacts is the terrain contact state gathered during the last Step.
type Contacts struct {
	Wall     WallSide
	Grounded bool
}

// BodySpec describes a body to create. Position is the center.
type BodySpec struct {
	Group    Group
	Kind     BodyKind
	Width    float64
	Height   float64
	Radius   float64 // circle when > 0
	Position common.Vec
	Velocity common.Vec
	Gravity  bool
	Friction float64
	Mass     float64
}

// Body is the handle game code holds for a simulated body.
type Body interface {
	Entity() ecs.Entity
	Group() Group
	Position() common.Vec
	SetPosition(p common.Vec)
	Velocity() common.Vec
	SetVelocity(vx, vy float64)
	Contacts() Contacts
	Size() (w, h float64)
}

type body struct {
	world  *World
	entity ecs.Entity
	group  Group
	w, h   float64
	cpBody *cp.Body
	shape  *cp.Shape
}

// AddBody creates and registers the body for e, replacing any earlier one.
func (w *World) AddBody(e ecs.Entity, spec BodySpec) Body {
	if w == nil || !e.Valid() {
		return nil
	}
	if _, ok := w.bodies[e]; ok {
		w.RemoveBody(e)
	}

	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	bw, bh := spec.Width, spec.Height
	if spec.Radius > 0 {
		bw, bh = spec.Radius*2, spec.Radius*2
	}

	var cb *cp.Body
	switch spec.Kind {
	case Kinematic:
		cb = cp.NewKinematicBody()
	default:
		// rotation is locked; sprites stay upright
		cb = cp.NewBody(mass, math.Inf(1))
	}
	cb.SetPosition(cp.Vector{X: spec.Position.X, Y: spec.Position.Y})
	cb.SetVelocity(spec.Velocity.X, spec.Velocity.Y)
	if spec.Kind == Dynamic && !spec.Gravity {
		cb.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
	}

	var shape *cp.Shape
	if spec.Radius > 0 {
		shape = cp.NewCircle(cb, spec.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(cb, bw, bh, 0)
	}
	shape.SetFriction(spec.Friction)
	shape.SetCollisionType(cp.CollisionType(spec.Group))

	w.space.AddBody(cb)
	w.space.AddShape(shape)

	b := &body{world: w, entity: e, group: spec.Group, w: bw, h: bh, cpBody: cb, shape: shape}
	w.bodies[e] = b
	w.shapes[shape] = shapeRef{entity: e, group: spec.Group}
	w.contacts[e] = &Contacts{}
	return b
}

// RemoveBody drops the body for e. It reports false if there was none.
func (w *World) RemoveBody(e ecs.Entity) bool {
	if w == nil {
		return false
	}
	b, ok := w.bodies[e]
	if !ok {
		return false
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.cpBody)
	delete(w.shapes, b.shape)
	delete(w.bodies, e)
	delete(w.contacts, e)
	return true
}

// Body returns the live body for e.
func (w *World) Body(e ecs.Entity) (Body, bool) {
	if w == nil {
		return nil, false
	}
	b, ok := w.bodies[e]
	if !ok {
		return nil, false
	}
	return b, true
}

func (w *World) Has(e ecs.Entity) bool {
	if w == nil {
		return false
	}
	_, ok := w.bodies[e]
	return ok
}

// BodyCount is the number of live bodies in g, or all bodies for GroupNone.
func (w *World) BodyCount(g Group) int {
	if w == nil {
		return 0
	}
	n := 0
	for _, b := range w.bodies {
		if g == GroupNone || b.group == g {
			n++
		}
	}
	return n
}

func (b *body) Entity() ecs.Entity { return b.entity }
func (b *body) Group() Group       { return b.group }
func (b *body) Size() (w, h float64) {
	return b.w, b.h
}

func (b *body) Position() common.Vec {
	p := b.cpBody.Position()
	return common.Vec{X: p.X, Y: p.Y}
}

func (b *body) SetPosition(p common.Vec) {
	b.cpBody.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

func (b *body) Velocity() common.Vec {
	v := b.cpBody.Velocity()
	return common.Vec{X: v.X, Y: v.Y}
}

func (b *body) SetVelocity(vx, vy float64) {
	b.cpBody.SetVelocity(vx, vy)
}

func (b *body) Contacts() Contacts {
	if c, ok := b.world.contacts[b.entity]; ok {
		return *c
	}
	return Contacts{}
}
