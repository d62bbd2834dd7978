package enemy

import (
	"log"
	"time"

	"github.com/milk9111/pengu-adventures/assets"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/physics"
)

type freezableState interface {
	Name() string
	Enter(e *Freezable)
	Exit(e *Freezable)
	Update(e *Freezable, dt time.Duration)
}

type freezableMovingState struct{}

func (freezableMovingState) Name() string      { return "moving" }
func (freezableMovingState) Enter(e *Freezable) {}
func (freezableMovingState) Exit(e *Freezable)  {}
func (freezableMovingState) Update(e *Freezable, dt time.Duration) {
	if e.body != nil {
		switch e.body.Contacts().Wall {
		case physics.WallLeft:
			if e.dir < 0 {
				e.dir = 1
			}
		case physics.WallRight:
			if e.dir > 0 {
				e.dir = -1
			}
		}
	}
	if e.right > e.left {
		x := e.Position().X
		if x <= e.left && e.dir < 0 {
			e.dir = 1
		} else if x >= e.right && e.dir > 0 {
			e.dir = -1
		}
	}
	e.setVelocityX(e.dir * e.tuning.Speed)
}

type freezableFrozenState struct{}

func (freezableFrozenState) Name() string { return "frozen" }
func (freezableFrozenState) Enter(e *Freezable) {
	e.savedDir = e.dir
	e.setVelocityX(0)
	e.frozenLeft = e.tuning.FrozenTime

	w, h := e.texture.Width+e.tuning.IcePadding, e.texture.Height+e.tuning.IcePadding
	e.ice = newIceBlock(e.deps, e.Position(), w, h, e.tuning.IceAppearTime)
}
func (freezableFrozenState) Exit(e *Freezable) {
	if e.ice != nil {
		e.ice.Destroy()
		e.ice = nil
	}
	e.dir = e.savedDir
}
func (freezableFrozenState) Update(e *Freezable, dt time.Duration) {
	e.setVelocityX(0)
	e.ice.Sync(e.Position())
	e.ice.Update(dt)

	e.frozenLeft -= dt
	if e.frozenLeft <= 0 {
		e.setState(stateFreezableMoving)
		return
	}
	if e.frozenLeft <= e.tuning.IceDisappearLead {
		e.ice.StartDisappear(e.tuning.IceDisappearLead)
	}
}

var (
	stateFreezableMoving freezableState = &freezableMovingState{}
	stateFreezableFrozen freezableState = &freezableFrozenState{}
)

// Freezable walks until it meets a wall, then turns around. A snowball
// encases it in ice for a while instead of killing it.
type Freezable struct {
	base
	tuning FreezableTuning

	left, right   float64
	dir, savedDir float64

	state      freezableState
	frozenLeft time.Duration
	ice        *IceBlock
}

// NewFreezable places a Freezable standing at feet. When right > left it
// also turns around at those x coordinates.
func NewFreezable(deps Deps, feet common.Vec, left, right float64, tuning FreezableTuning) *Freezable {
	if right < left {
		left, right = right, left
	}
	e := &Freezable{
		base: newBase(deps, assets.TextureEnemyFreezable, feet, physics.BodySpec{
			Group:   physics.GroupEnemy,
			Kind:    physics.Dynamic,
			Gravity: true,
		}),
		tuning: tuning,
		left:   left,
		right:  right,
		dir:    1,
	}
	e.setState(stateFreezableMoving)
	return e
}

func (e *Freezable) setState(s freezableState) {
	if e.state == s {
		return
	}
	if e.state != nil {
		e.state.Exit(e)
	}
	e.state = s
	e.state.Enter(e)
}

func (e *Freezable) Update(now, dt time.Duration) {
	if e == nil || e.torn || e.state == nil {
		return
	}
	e.state.Update(e, dt)
}

// OnProjectileHit freezes the enemy. Hits while frozen are ignored.
func (e *Freezable) OnProjectileHit() {
	if e == nil || e.torn || e.state == stateFreezableFrozen {
		return
	}
	log.Printf("Freezable %v: frozen for %v", e.id, e.tuning.FrozenTime)
	e.setState(stateFreezableFrozen)
}

func (e *Freezable) DamagePlayer(p component.Player) {
	if e == nil || e.state == stateFreezableFrozen {
		return
	}
	e.hitPlayer(p, contactDamage(e.tuning.ContactDamage, e.tuning.Knockback))
}

func (e *Freezable) Teardown() {
	if e == nil {
		return
	}
	if e.ice != nil {
		e.ice.Destroy()
		e.ice = nil
	}
	e.release()
}

func (e *Freezable) Frozen() bool {
	return e != nil && e.state == stateFreezableFrozen
}

// Ice is the companion block, nil unless frozen.
func (e *Freezable) Ice() *IceBlock {
	if e == nil {
		return nil
	}
	return e.ice
}

func (e *Freezable) State() string             { return e.state.Name() }
func (e *Freezable) Dir() float64              { return e.dir }
func (e *Freezable) FrozenLeft() time.Duration { return e.frozenLeft }
