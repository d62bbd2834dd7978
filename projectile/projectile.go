package projectile

import (
	"time"

	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/event"
	"github.com/milk9111/pengu-adventures/physics"
)

// Creation topics. The payload is a *Projectile that has not been admitted.
const (
	TopicPlayerCreated event.Topic = "projectile-created:player"
	TopicEnemyCreated  event.Topic = "projectile-created:enemy"
)

// Spec holds the tuning shared by every projectile of one kind.
type Spec struct {
	Damage      int
	Knockback   float64
	Speed       float64
	Radius      float64
	MaxLifetime time.Duration
	MaxDistance float64
	Gravity     bool
}

var (
	EnemySnowball = Spec{
		Damage:      1,
		Knockback:   220,
		Speed:       260,
		Radius:      6,
		MaxLifetime: 2000 * time.Millisecond,
		MaxDistance: 500,
	}
	PlayerSnowball = Spec{
		Damage:      1,
		Knockback:   0,
		Speed:       420,
		Radius:      6,
		MaxLifetime: 1500 * time.Millisecond,
		MaxDistance: 600,
	}
)

// Projectile is a short-lived thrown object. Before admission it is plain
// data; after admission its body is the source of truth for motion.
type Projectile struct {
	id    ecs.Entity
	owner component.Faction
	spec  Spec

	pos, vel  common.Vec
	spawnPos  common.Vec
	spawnTime time.Duration
	body      physics.Body

	admitted  bool
	destroyed bool
	onDestroy func(p *Projectile)
}

// New creates a projectile at pos moving with vel.
func New(owner component.Faction, pos, vel common.Vec, spec Spec) *Projectile {
	return &Projectile{owner: owner, spec: spec, pos: pos, vel: vel, spawnPos: pos}
}

// Launch creates a projectile moving horizontally in dir (-1 or 1) at the
// spec's speed.
func Launch(owner component.Faction, pos common.Vec, dir float64, spec Spec) *Projectile {
	return New(owner, pos, common.Vec{X: dir * spec.Speed}, spec)
}

// Topic returns the creation topic for the projectile's owner.
func (p *Projectile) Topic() event.Topic {
	if p.owner == component.FactionPlayer {
		return TopicPlayerCreated
	}
	return TopicEnemyCreated
}

// Admit attaches the projectile to its id and body. The velocity the
// projectile was created with is carried over to the body. Admitting twice
// is a no-op and reports false.
func (p *Projectile) Admit(id ecs.Entity, body physics.Body, now time.Duration, onDestroy func(*Projectile)) bool {
	if p == nil || p.admitted || p.destroyed {
		return false
	}
	vel := p.vel
	p.id = id
	p.body = body
	p.spawnTime = now
	p.spawnPos = p.pos
	p.admitted = true
	p.onDestroy = onDestroy
	if body != nil {
		body.SetPosition(p.pos)
		body.SetVelocity(vel.X, vel.Y)
	}
	return true
}

// BodySpec is the physics body an admitted projectile gets.
func (p *Projectile) BodySpec() physics.BodySpec {
	return physics.BodySpec{
		Group:    physics.GroupProjectile,
		Radius:   p.spec.Radius,
		Position: p.pos,
		Velocity: p.vel,
		Gravity:  p.spec.Gravity,
	}
}

// Update syncs from the body and destroys the projectile once it has lived
// MaxLifetime or travelled MaxDistance, whichever comes first.
func (p *Projectile) Update(now time.Duration) {
	if p == nil || p.destroyed || !p.admitted {
		return
	}
	if p.body != nil {
		p.pos = p.body.Position()
		p.vel = p.body.Velocity()
	}
	if p.Expired(now) {
		p.Destroy()
	}
}

// Expired reports whether either budget is spent at now.
func (p *Projectile) Expired(now time.Duration) bool {
	if p.spec.MaxLifetime > 0 && now-p.spawnTime >= p.spec.MaxLifetime {
		return true
	}
	return p.spec.MaxDistance > 0 && p.Travelled() >= p.spec.MaxDistance
}

// Destroy is idempotent.
func (p *Projectile) Destroy() {
	if p == nil || p.destroyed {
		return
	}
	p.destroyed = true
	if p.onDestroy != nil {
		p.onDestroy(p)
	}
}

func (p *Projectile) ID() ecs.Entity            { return p.id }
func (p *Projectile) Owner() component.Faction  { return p.owner }
func (p *Projectile) Spec() Spec                { return p.spec }
func (p *Projectile) SpawnTime() time.Duration  { return p.spawnTime }
func (p *Projectile) SpawnPosition() common.Vec { return p.spawnPos }
func (p *Projectile) Admitted() bool            { return p.admitted }
func (p *Projectile) Destroyed() bool           { return p.destroyed }

func (p *Projectile) Position() common.Vec {
	if p.body != nil && !p.destroyed {
		return p.body.Position()
	}
	return p.pos
}

func (p *Projectile) Velocity() common.Vec {
	if p.body != nil && !p.destroyed {
		return p.body.Velocity()
	}
	return p.vel
}

// Travelled is the straight-line distance from the spawn point.
func (p *Projectile) Travelled() float64 {
	return p.Position().Dist(p.spawnPos)
}

// Damage is what the projectile does to whatever it hits.
func (p *Projectile) Damage() component.Damage {
	return component.Damage{
		Amount:     p.spec.Damage,
		KnockbackX: p.spec.Knockback,
		KnockbackY: p.spec.Knockback * 0.6,
		Faction:    p.owner,
	}
}
