// Package enemy implements the patrol, freeze and turret enemies. Each
// variant is a small state machine driven once per frame and reacts to
// collisions through the methods the enemy system calls on it.
package enemy

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/pengu-adventures/assets"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/event"
	"github.com/milk9111/pengu-adventures/physics"
	"github.com/milk9111/pengu-adventures/sched"
)

var ErrUnknownFacing = errors.New("enemy: unknown facing")

// Enemy is what the enemy system drives every frame.
type Enemy interface {
	ID() ecs.Entity
	Update(now, dt time.Duration)
	// DamagePlayer is called when the player touches the enemy.
	DamagePlayer(p component.Player)
	Position() common.Vec
	Active() bool
	// Teardown removes the enemy and everything it owns. It is only used
	// when the level goes away.
	Teardown()
}

// Damageable enemies react to being hit by a player snowball.
type Damageable interface {
	OnProjectileHit()
}

// Mortal enemies can die and should then be dropped by their owner.
type Mortal interface {
	Dead() bool
}

// Physics is the part of the physics world an enemy needs.
type Physics interface {
	AddBody(e ecs.Entity, spec physics.BodySpec) physics.Body
	RemoveBody(e ecs.Entity) bool
}

// Timers schedules callbacks against the frame clock.
type Timers interface {
	After(d time.Duration, fn func()) sched.Handle
	Repeat(interval time.Duration, count int, fn func(n int)) sched.Handle
}

// Publisher announces things other systems should pick up.
type Publisher interface {
	Publish(topic event.Topic, payload any)
}

// Deps are the collaborators shared by every enemy in a level.
type Deps struct {
	Physics  Physics
	Timers   Timers
	Bus      Publisher
	Assets   *assets.Registry
	Entities *ecs.Registry
	Rand     common.Rand
}

// Facing is the fixed direction a Snowman throws in.
type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Dir is -1 or 1.
func (f Facing) Dir() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// ParseFacing accepts "left" and "right".
func ParseFacing(s string) (Facing, error) {
	switch s {
	case "left", "l":
		return FacingLeft, nil
	case "right", "r", "":
		return FacingRight, nil
	}
	return FacingRight, fmt.Errorf("%w: %q", ErrUnknownFacing, s)
}

// base holds what every variant shares: its id, body and texture.
// Positions given to constructors are feet positions, the point where the
// enemy stands on its surface.
type base struct {
	id      ecs.Entity
	deps    Deps
	body    physics.Body
	texture assets.Texture
	lastPos common.Vec
	active  bool
	torn    bool

	// deactivations counts active -> inactive transitions.
	deactivations int
}

func newBase(deps Deps, textureKey string, feet common.Vec, spec physics.BodySpec) base {
	b := base{deps: deps, active: true}
	if deps.Assets != nil {
		b.texture = deps.Assets.Resolve(textureKey)
	} else {
		b.texture = assets.Placeholder(textureKey)
	}
	if deps.Entities != nil {
		b.id = deps.Entities.Create()
	}
	spec.Width, spec.Height = b.texture.Width, b.texture.Height
	spec.Position = common.Vec{X: feet.X, Y: feet.Y - b.texture.Height/2}
	b.lastPos = spec.Position
	if deps.Physics != nil {
		b.body = deps.Physics.AddBody(b.id, spec)
	}
	return b
}

func (b *base) ID() ecs.Entity {
	if b == nil {
		return 0
	}
	return b.id
}

func (b *base) Active() bool {
	return b != nil && b.active
}

func (b *base) Texture() assets.Texture {
	return b.texture
}

func (b *base) Position() common.Vec {
	if b == nil {
		return common.Vec{}
	}
	if b.body != nil {
		b.lastPos = b.body.Position()
	}
	return b.lastPos
}

func (b *base) velocity() common.Vec {
	if b.body == nil {
		return common.Vec{}
	}
	return b.body.Velocity()
}

func (b *base) setVelocityX(vx float64) {
	if b.body == nil {
		return
	}
	b.body.SetVelocity(vx, b.body.Velocity().Y)
}

func (b *base) deactivate() {
	if !b.active {
		return
	}
	b.active = false
	b.deactivations++
}

// removeBody drops the physics body, keeping the last known position.
func (b *base) removeBody() {
	if b.body == nil {
		return
	}
	b.lastPos = b.body.Position()
	b.body = nil
	if b.deps.Physics != nil {
		b.deps.Physics.RemoveBody(b.id)
	}
}

// release removes the body and frees the id. Safe to call twice.
func (b *base) release() {
	if b.torn {
		return
	}
	b.torn = true
	b.deactivate()
	b.removeBody()
	if b.deps.Entities != nil {
		b.deps.Entities.Destroy(b.id)
	}
}

// hitPlayer applies contact damage and, if it landed, knocks the player
// away from the enemy.
func (b *base) hitPlayer(p component.Player, dmg component.Damage) bool {
	if p == nil || !b.active {
		return false
	}
	if !p.TakeDamage(dmg.Amount) {
		return false
	}
	kb := dmg.Knockback(b.Position(), p.Position())
	p.SetVelocity(kb.X, kb.Y)
	return true
}

func contactDamage(amount int, knockback float64) component.Damage {
	return component.Damage{
		Amount:     amount,
		KnockbackX: knockback,
		KnockbackY: knockback * 0.5,
		Faction:    component.FactionEnemy,
	}
}
