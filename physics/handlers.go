package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pengu-adventures/ecs"
)

// OverlapFunc receives the two entities of a pair in the order the handler
// was registered with. Terrain is reported as the zero entity.
type OverlapFunc func(a, b ecs.Entity)

type pairKey struct {
	lo, hi Group
}

func makePairKey(a, b Group) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

type registration struct {
	a  Group
	fn OverlapFunc
}

// pairHandler holds everything registered for one unordered group pair.
// A pair with any overlap registration, or marked ignore, never produces
// a physical response.
type pairHandler struct {
	key      pairKey
	overlaps []registration
	solids   []registration
	ignore   bool
	contacts bool
}

func (ph *pairHandler) physical() bool {
	return !ph.ignore && len(ph.overlaps) == 0
}

// OnOverlap calls fn every step the two groups touch, without any
// physical response between them.
func (w *World) OnOverlap(a, b Group, fn OverlapFunc) {
	if w == nil || fn == nil {
		return
	}
	ph := w.pair(a, b)
	ph.overlaps = append(ph.overlaps, registration{a: a, fn: fn})
}

// OnSolidCollision keeps the two groups blocking each other and calls fn,
// if given, when a contact begins.
func (w *World) OnSolidCollision(a, b Group, fn OverlapFunc) {
	if w == nil {
		return
	}
	ph := w.pair(a, b)
	ph.ignore = false
	if fn != nil {
		ph.solids = append(ph.solids, registration{a: a, fn: fn})
	}
}

// Ignore disables contacts between the two groups.
func (w *World) Ignore(a, b Group) {
	if w == nil {
		return
	}
	w.pair(a, b).ignore = true
}

// trackContacts records wall and ground contacts of movers against a
// terrain group.
func (w *World) trackContacts(terrain Group) {
	for _, mover := range []Group{GroupPlayer, GroupEnemy} {
		w.pair(mover, terrain).contacts = true
	}
}

func (w *World) pair(a, b Group) *pairHandler {
	key := makePairKey(a, b)
	if ph, ok := w.pairs[key]; ok {
		return ph
	}
	ph := &pairHandler{key: key}
	w.pairs[key] = ph

	h := w.space.NewCollisionHandler(cp.CollisionType(key.lo), cp.CollisionType(key.hi))
	h.UserData = w
	h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if ph.ignore {
			return false
		}
		if len(ph.solids) > 0 {
			if lo, hi, ok := w.resolve(arb, ph.key); ok {
				w.enqueue(ph.solids, ph.key, lo.entity, hi.entity)
			}
		}
		return true
	}
	h.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if ph.ignore {
			return false
		}
		lo, hi, ok := w.resolve(arb, ph.key)
		if !ok {
			return ph.physical()
		}
		if ph.contacts {
			w.recordContact(arb, lo, hi)
		}
		if len(ph.overlaps) > 0 {
			w.enqueue(ph.overlaps, ph.key, lo.entity, hi.entity)
		}
		return ph.physical()
	}
	return ph
}

func (w *World) enqueue(regs []registration, key pairKey, lo, hi ecs.Entity) {
	for _, r := range regs {
		if r.a == key.lo {
			w.queue = append(w.queue, queuedEvent{fn: r.fn, a: lo, b: hi})
		} else {
			w.queue = append(w.queue, queuedEvent{fn: r.fn, a: hi, b: lo})
		}
	}
}

// resolve maps the arbiter's shapes to refs ordered as (key.lo, key.hi).
func (w *World) resolve(arb *cp.Arbiter, key pairKey) (lo, hi shapeRef, ok bool) {
	sa, sb := arb.Shapes()
	ra, okA := w.shapes[sa]
	rb, okB := w.shapes[sb]
	if !okA || !okB {
		return shapeRef{}, shapeRef{}, false
	}
	if ra.group != key.lo {
		ra, rb = rb, ra
	}
	return ra, rb, true
}

func (w *World) recordContact(arb *cp.Arbiter, lo, hi shapeRef) {
	mover := lo
	if lo.group.Terrain() {
		mover = hi
	}
	state := w.contacts[mover.entity]
	if state == nil {
		return
	}
	// arbiter normal points from the first shape to the second
	n := arb.Normal()
	if sa, _ := arb.Shapes(); w.shapes[sa].entity != mover.entity {
		n = n.Neg()
	}
	if n.X < -0.5 {
		state.Wall = WallLeft
	} else if n.X > 0.5 {
		state.Wall = WallRight
	}
	if n.Y > 0.5 {
		state.Grounded = true
	}
}
