package physics

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/levels"
)

// Group is a collision category. Terrain layers get their own groups
// starting at groupLayerBase.
type Group uint

const (
	GroupNone Group = iota
	GroupSolid
	GroupPlayer
	GroupEnemy
	GroupProjectile
	GroupIceBlock

	groupLayerBase Group = 16
)

var ErrUnknownLayer = errors.New("physics: unknown layer")

func (g Group) String() string {
	switch g {
	case GroupSolid:
		return "solid"
	case GroupPlayer:
		return "player"
	case GroupEnemy:
		return "enemy"
	case GroupProjectile:
		return "projectile"
	case GroupIceBlock:
		return "ice"
	case GroupNone:
		return "none"
	}
	return fmt.Sprintf("layer%d", g-groupLayerBase)
}

// Terrain reports whether g is static level geometry.
func (g Group) Terrain() bool {
	return g == GroupSolid || g >= groupLayerBase
}

type shapeRef struct {
	entity ecs.Entity // zero for terrain
	group  Group
}

type queuedEvent struct {
	fn   func(a, b ecs.Entity)
	a, b ecs.Entity
}

// World owns the Chipmunk space. Collision callbacks only record what
// happened; Step dispatches the reactions once the space is unlocked, so
// handlers are free to add and remove bodies.
type World struct {
	space *cp.Space

	bodies     map[ecs.Entity]*body
	shapes     map[*cp.Shape]shapeRef
	layers     map[string]Group
	layerOrder []string
	nextLayer  Group
	pairs      map[pairKey]*pairHandler
	contacts   map[ecs.Entity]*Contacts
	queue      []queuedEvent
}

// NewWorld creates an empty space with downward gravity.
func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	return &World{
		space:     space,
		bodies:    make(map[ecs.Entity]*body),
		shapes:    make(map[*cp.Shape]shapeRef),
		layers:    make(map[string]Group),
		nextLayer: groupLayerBase,
		pairs:     make(map[pairKey]*pairHandler),
		contacts:  make(map[ecs.Entity]*Contacts),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddTileLayer turns a tile grid into static boxes, merging runs of tiles
// into as few rectangles as possible, and returns the layer's group.
func (w *World) AddTileLayer(name string, grid levels.Grid) Group {
	if w == nil || grid == nil {
		return GroupNone
	}
	if g, ok := w.layers[name]; ok {
		log.Printf("PhysicsWorld: layer %q already added", name)
		return g
	}
	group := w.nextLayer
	w.nextLayer++
	w.layers[name] = group
	w.layerOrder = append(w.layerOrder, name)

	boxes := mergeTiles(grid)
	for _, bb := range boxes {
		shape := cp.NewBox2(w.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(cp.CollisionType(group))
		w.space.AddShape(shape)
		w.shapes[shape] = shapeRef{group: group}
	}
	w.trackContacts(group)
	log.Printf("PhysicsWorld: layer %q -> %d boxes (group %d)", name, len(boxes), group)
	return group
}

// AddBounds adds left, right and floor walls around r. The top stays open
// so thrown objects can leave the level.
func (w *World) AddBounds(r common.Rect) {
	if w == nil || r.Width <= 0 || r.Height <= 0 {
		return
	}
	const thickness = 1.0
	l, t, rt, b := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	segments := []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: l, Y: b}, b: cp.Vector{X: rt, Y: b}},
		{a: cp.Vector{X: l, Y: t}, b: cp.Vector{X: l, Y: b}},
		{a: cp.Vector{X: rt, Y: t}, b: cp.Vector{X: rt, Y: b}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(cp.CollisionType(GroupSolid))
		w.space.AddShape(shape)
		w.shapes[shape] = shapeRef{group: GroupSolid}
	}
	w.trackContacts(GroupSolid)
}

// LayerGroup resolves a layer name added with AddTileLayer.
func (w *World) LayerGroup(name string) (Group, error) {
	if w == nil {
		return GroupNone, ErrUnknownLayer
	}
	g, ok := w.layers[name]
	if !ok {
		return GroupNone, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return g, nil
}

// ShapeGroup reports which group a shape in this world belongs to.
func (w *World) ShapeGroup(shape *cp.Shape) Group {
	if w == nil || shape == nil {
		return GroupNone
	}
	return w.shapes[shape].group
}

// TerrainGroups lists the bounds group and every layer group.
func (w *World) TerrainGroups() []Group {
	if w == nil {
		return nil
	}
	out := []Group{GroupSolid}
	for _, name := range w.layerOrder {
		out = append(out, w.layers[name])
	}
	return out
}

// Step advances the simulation by dt and then runs the collision reactions
// recorded during the step, in the order cp reported them.
func (w *World) Step(dt time.Duration) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	for _, c := range w.contacts {
		*c = Contacts{}
	}
	w.space.Step(dt.Seconds())
	w.flush()
}

func (w *World) flush() {
	if len(w.queue) == 0 {
		return
	}
	events := w.queue
	w.queue = nil
	for _, ev := range events {
		if !w.live(ev.a) || !w.live(ev.b) {
			continue
		}
		ev.fn(ev.a, ev.b)
	}
}

// live treats the zero entity (terrain) as always present.
func (w *World) live(e ecs.Entity) bool {
	if !e.Valid() {
		return true
	}
	_, ok := w.bodies[e]
	return ok
}

// mergeTiles greedily grows each unclaimed solid tile right, then down,
// into the largest rectangle of solid tiles.
func mergeTiles(grid levels.Grid) []cp.BB {
	width, height := grid.Width(), grid.Height()
	size := grid.TileSize()
	if width <= 0 || height <= 0 {
		return nil
	}
	processed := make([]bool, width*height)
	solid := func(x, y int) bool {
		return !processed[y*width+x] && grid.IsCollidableAt(x, y)
	}

	var out []cp.BB
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(x, y) {
				processed[y*width+x] = true
				continue
			}

			w := 1
			for x+w < width && solid(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			x0, y0 := float64(x)*size, float64(y)*size
			out = append(out, cp.BB{L: x0, B: y0, R: x0 + float64(w)*size, T: y0 + float64(h)*size})

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
	return out
}
