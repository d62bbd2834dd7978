package system

import (
	"log"
	"time"

	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/event"
	"github.com/milk9111/pengu-adventures/physics"
	"github.com/milk9111/pengu-adventures/projectile"
)

// Subscriber is the subscribing half of the event bus.
type Subscriber interface {
	Subscribe(topic event.Topic, h event.Handler) event.Subscription
}

// Clock reports the current frame time.
type Clock interface {
	Now() time.Duration
}

// TerrainReaction decides what happens when a projectile hits terrain.
type TerrainReaction func(p *projectile.Projectile)

// DestroyOnContact is the default terrain reaction.
func DestroyOnContact(p *projectile.Projectile) {
	p.Destroy()
}

// ProjectileSystem owns every live projectile, whoever threw it. New
// projectiles arrive only through the creation topics.
type ProjectileSystem struct {
	physics  Physics
	entities *ecs.Registry
	clock    Clock

	projectiles []*projectile.Projectile
	index       *ecs.SparseSet[*projectile.Projectile]
	subs        []event.Subscription
	terrain     map[physics.Group]TerrainReaction

	player       component.Player
	playerEntity ecs.Entity
	playerWired  bool
	destroyed    bool
}

func NewProjectileSystem(phys Physics, bus Subscriber, entities *ecs.Registry, clock Clock) *ProjectileSystem {
	if entities == nil {
		entities = ecs.NewRegistry()
	}
	s := &ProjectileSystem{
		physics:  phys,
		entities: entities,
		clock:    clock,
		index:    ecs.NewSparseSet[*projectile.Projectile](),
		terrain:  make(map[physics.Group]TerrainReaction),
	}
	if bus != nil {
		for _, topic := range []event.Topic{projectile.TopicPlayerCreated, projectile.TopicEnemyCreated} {
			s.subs = append(s.subs, bus.Subscribe(topic, s.admit))
		}
	}
	if phys != nil {
		phys.Ignore(physics.GroupProjectile, physics.GroupProjectile)
	}
	return s
}

func (s *ProjectileSystem) now() time.Duration {
	if s.clock == nil {
		return 0
	}
	return s.clock.Now()
}

// admit takes ownership of a newly created projectile. The same projectile
// delivered twice is admitted once.
func (s *ProjectileSystem) admit(payload any) {
	p, ok := payload.(*projectile.Projectile)
	if !ok || p == nil {
		log.Printf("ProjectileSystem: ignoring creation payload %T", payload)
		return
	}
	if s.destroyed || p.Admitted() || p.Destroyed() {
		return
	}
	id := s.entities.Create()
	var body physics.Body
	if s.physics != nil {
		body = s.physics.AddBody(id, p.BodySpec())
	}
	p.Admit(id, body, s.now(), s.release)
	s.projectiles = append(s.projectiles, p)
	s.index.Set(id, p)
}

// release runs once, when a projectile is destroyed by any path.
func (s *ProjectileSystem) release(p *projectile.Projectile) {
	id := p.ID()
	if s.physics != nil {
		s.physics.RemoveBody(id)
	}
	s.index.Remove(id)
	s.entities.Destroy(id)
}

// CollideWithLayer applies reaction when a projectile hits the named
// terrain layer. A nil reaction destroys the projectile.
func (s *ProjectileSystem) CollideWithLayer(name string, reaction TerrainReaction) error {
	if s == nil || s.physics == nil {
		return nil
	}
	g, err := s.physics.LayerGroup(name)
	if err != nil {
		log.Printf("ProjectileSystem: collide with layer: %v", err)
		return err
	}
	s.CollideWithGroup(g, reaction)
	return nil
}

// CollideWithGroup is CollideWithLayer for a known group, such as the level
// bounds or ice blocks. Registering a group again replaces its reaction.
func (s *ProjectileSystem) CollideWithGroup(g physics.Group, reaction TerrainReaction) {
	if s == nil || s.physics == nil {
		return
	}
	if reaction == nil {
		reaction = DestroyOnContact
	}
	_, seen := s.terrain[g]
	s.terrain[g] = reaction
	if seen {
		return
	}
	s.physics.OnSolidCollision(physics.GroupProjectile, g, func(pe, _ ecs.Entity) {
		p, ok := s.index.Get(pe)
		if !ok || p.Destroyed() {
			return
		}
		if r := s.terrain[g]; r != nil {
			r(p)
		}
	})
}

// WirePlayer lets enemy snowballs hurt the player. Calling it again swaps
// the player.
func (s *ProjectileSystem) WirePlayer(player component.Player, playerEntity ecs.Entity) {
	if s == nil {
		return
	}
	s.player = player
	s.playerEntity = playerEntity
	if s.playerWired || s.physics == nil {
		return
	}
	s.playerWired = true
	s.physics.OnOverlap(physics.GroupProjectile, physics.GroupPlayer, func(pe, pl ecs.Entity) {
		if s.player == nil || pl != s.playerEntity {
			return
		}
		p, ok := s.index.Get(pe)
		if !ok || p.Destroyed() || p.Owner() != component.FactionEnemy {
			return
		}
		dmg := p.Damage()
		if s.player.TakeDamage(dmg.Amount) {
			kb := dmg.Knockback(p.Position(), s.player.Position())
			s.player.SetVelocity(kb.X, kb.Y)
		}
		p.Destroy()
	})
}

// CleanupOutOfBounds destroys projectiles outside bounds and returns how
// many went.
func (s *ProjectileSystem) CleanupOutOfBounds(bounds common.Rect) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, p := range s.projectiles {
		if p.Destroyed() || bounds.Contains(p.Position()) {
			continue
		}
		p.Destroy()
		n++
	}
	if n > 0 {
		s.compact()
	}
	return n
}

// Update expires old projectiles and drops destroyed ones.
func (s *ProjectileSystem) Update(now, dt time.Duration) {
	if s == nil {
		return
	}
	for _, p := range s.projectiles {
		p.Update(now)
	}
	s.compact()
}

func (s *ProjectileSystem) compact() {
	live := s.projectiles[:0]
	for _, p := range s.projectiles {
		if !p.Destroyed() {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(s.projectiles); i++ {
		s.projectiles[i] = nil
	}
	s.projectiles = live
}

// Count is the number of live projectiles.
func (s *ProjectileSystem) Count() int {
	if s == nil {
		return 0
	}
	return s.index.Len()
}

func (s *ProjectileSystem) Get(id ecs.Entity) (*projectile.Projectile, bool) {
	if s == nil {
		return nil, false
	}
	return s.index.Get(id)
}

// Projectiles returns a snapshot of the live projectiles.
func (s *ProjectileSystem) Projectiles() []*projectile.Projectile {
	if s == nil {
		return nil
	}
	out := make([]*projectile.Projectile, 0, len(s.projectiles))
	for _, p := range s.projectiles {
		if !p.Destroyed() {
			out = append(out, p)
		}
	}
	return out
}

// Destroy unsubscribes from the creation topics before clearing, so a late
// notification cannot refill the collection.
func (s *ProjectileSystem) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
	s.destroyed = true

	for _, p := range s.projectiles {
		p.Destroy()
	}
	s.projectiles = nil
	s.index.Clear()
}
