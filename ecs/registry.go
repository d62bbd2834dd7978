package ecs

// Registry hands out generational entity ids and recycles freed slots.
// A recycled slot gets a new generation, so stale ids stop matching.
type Registry struct {
	nextID entityID
	gen    []generation
	free   []entityID
	alive  int
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Create returns a fresh live entity.
func (r *Registry) Create() Entity {
	if r == nil {
		return 0
	}
	var id entityID
	if len(r.free) > 0 {
		id = r.free[len(r.free)-1]
		r.free = r.free[:len(r.free)-1]
	} else {
		r.nextID++
		id = r.nextID
		r.gen = append(r.gen, 0)
	}
	r.alive++
	return makeEntity(id, r.gen[id-1])
}

// Destroy releases e. It reports false when e was already dead.
func (r *Registry) Destroy(e Entity) bool {
	if !r.IsAlive(e) {
		return false
	}
	idx := e.id() - 1
	r.gen[idx]++
	r.free = append(r.free, e.id())
	r.alive--
	return true
}

func (r *Registry) IsAlive(e Entity) bool {
	if r == nil || !e.Valid() || int(e.id()) > len(r.gen) {
		return false
	}
	return r.gen[e.id()-1] == e.generation()
}

// Len is the number of live entities.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return r.alive
}
