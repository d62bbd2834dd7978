// Package physicstest provides an in-memory stand-in for physics.World so
// game logic can be driven without a Chipmunk space.
package physicstest

import (
	"fmt"

	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/physics"
)

// Body is a settable physics.Body. Nothing integrates its velocity.
type Body struct {
	E         ecs.Entity
	G         physics.Group
	Pos       common.Vec
	Vel       common.Vec
	Touching  physics.Contacts
	W, H      float64
	Spec      physics.BodySpec
	Destroyed bool
}

func (b *Body) Entity() ecs.Entity         { return b.E }
func (b *Body) Group() physics.Group       { return b.G }
func (b *Body) Position() common.Vec       { return b.Pos }
func (b *Body) SetPosition(p common.Vec)   { b.Pos = p }
func (b *Body) Velocity() common.Vec       { return b.Vel }
func (b *Body) SetVelocity(vx, vy float64) { b.Vel = common.Vec{X: vx, Y: vy} }
func (b *Body) Contacts() physics.Contacts { return b.Touching }
func (b *Body) Size() (w, h float64)       { return b.W, b.H }

type handler struct {
	a, b physics.Group
	fn   physics.OverlapFunc
}

// World records bodies and handlers. Collisions happen only when a test
// calls Touch.
type World struct {
	bodies   map[ecs.Entity]*Body
	order    []ecs.Entity
	overlaps []handler
	solids   []handler
	ignored  map[[2]physics.Group]bool
	layers   map[string]physics.Group
	removed  []ecs.Entity
}

func NewWorld() *World {
	return &World{
		bodies:  make(map[ecs.Entity]*Body),
		ignored: make(map[[2]physics.Group]bool),
		layers:  make(map[string]physics.Group),
	}
}

func (w *World) AddBody(e ecs.Entity, spec physics.BodySpec) physics.Body {
	bw, bh := spec.Width, spec.Height
	if spec.Radius > 0 {
		bw, bh = spec.Radius*2, spec.Radius*2
	}
	b := &Body{E: e, G: spec.Group, Pos: spec.Position, Vel: spec.Velocity, W: bw, H: bh, Spec: spec}
	if _, ok := w.bodies[e]; !ok {
		w.order = append(w.order, e)
	}
	w.bodies[e] = b
	return b
}

func (w *World) RemoveBody(e ecs.Entity) bool {
	b, ok := w.bodies[e]
	if !ok {
		return false
	}
	b.Destroyed = true
	delete(w.bodies, e)
	for i, o := range w.order {
		if o == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.removed = append(w.removed, e)
	return true
}

func (w *World) Body(e ecs.Entity) (physics.Body, bool) {
	b, ok := w.bodies[e]
	if !ok {
		return nil, false
	}
	return b, true
}

// Fake returns the concrete fake body for e.
func (w *World) Fake(e ecs.Entity) *Body {
	return w.bodies[e]
}

func (w *World) Has(e ecs.Entity) bool {
	_, ok := w.bodies[e]
	return ok
}

// Bodies lists live bodies in g in creation order.
func (w *World) Bodies(g physics.Group) []*Body {
	var out []*Body
	for _, e := range w.order {
		if b := w.bodies[e]; b != nil && (g == physics.GroupNone || b.G == g) {
			out = append(out, b)
		}
	}
	return out
}

// Removed lists every entity whose body was removed, in order.
func (w *World) Removed() []ecs.Entity {
	return w.removed
}

func (w *World) OnOverlap(a, b physics.Group, fn physics.OverlapFunc) {
	w.overlaps = append(w.overlaps, handler{a: a, b: b, fn: fn})
}

func (w *World) OnSolidCollision(a, b physics.Group, fn physics.OverlapFunc) {
	delete(w.ignored, [2]physics.Group{a, b})
	delete(w.ignored, [2]physics.Group{b, a})
	if fn != nil {
		w.solids = append(w.solids, handler{a: a, b: b, fn: fn})
	}
}

func (w *World) Ignore(a, b physics.Group) {
	w.ignored[[2]physics.Group{a, b}] = true
}

func (w *World) Ignored(a, b physics.Group) bool {
	return w.ignored[[2]physics.Group{a, b}] || w.ignored[[2]physics.Group{b, a}]
}

// AddLayer registers a terrain layer name.
func (w *World) AddLayer(name string) physics.Group {
	g := physics.Group(100 + len(w.layers))
	w.layers[name] = g
	return g
}

func (w *World) LayerGroup(name string) (physics.Group, error) {
	g, ok := w.layers[name]
	if !ok {
		return physics.GroupNone, fmt.Errorf("%w: %q", physics.ErrUnknownLayer, name)
	}
	return g, nil
}

// Handlers counts overlap registrations for the pair, in either order.
func (w *World) Handlers(a, b physics.Group) int {
	n := 0
	for _, h := range w.overlaps {
		if (h.a == a && h.b == b) || (h.a == b && h.b == a) {
			n++
		}
	}
	return n
}

// Touch fires the overlap and solid handlers registered for the groups of
// ea and eb, as a physics step would. Either entity may be zero for terrain
// of group ga or gb.
func (w *World) Touch(ga physics.Group, ea ecs.Entity, gb physics.Group, eb ecs.Entity) {
	hs := append(append([]handler(nil), w.overlaps...), w.solids...)
	for _, h := range hs {
		if !w.live(ea) || !w.live(eb) {
			return
		}
		switch {
		case h.a == ga && h.b == gb:
			h.fn(ea, eb)
		case h.a == gb && h.b == ga:
			h.fn(eb, ea)
		}
	}
}

func (w *World) live(e ecs.Entity) bool {
	if !e.Valid() {
		return true
	}
	_, ok := w.bodies[e]
	return ok
}
