package enemy

import (
	"log"
	"math"
	"time"

	"github.com/milk9111/pengu-adventures/assets"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/physics"
	"github.com/milk9111/pengu-adventures/sched"
)

type basicState interface {
	Name() string
	Enter(e *Basic)
	Exit(e *Basic)
	Update(e *Basic, dt time.Duration)
}

type basicIdleState struct{}

func (basicIdleState) Name() string { return "idle" }
func (basicIdleState) Enter(e *Basic) {
	e.idleLeft = e.tuning.IdleTime
	e.setVelocityX(0)
}
func (basicIdleState) Exit(e *Basic) {}
func (basicIdleState) Update(e *Basic, dt time.Duration) {
	e.setVelocityX(0)
	e.idleLeft -= dt
	if e.idleLeft <= 0 {
		e.setState(stateBasicMoving)
	}
}

type basicMovingState struct{}

func (basicMovingState) Name() string  { return "moving" }
func (basicMovingState) Enter(e *Basic) {}
func (basicMovingState) Exit(e *Basic)  {}
func (basicMovingState) Update(e *Basic, dt time.Duration) {
	dx := e.targetX - e.Position().X
	if math.Abs(dx) < e.tuning.ArriveDistance {
		if e.targetX == e.pointB {
			e.targetX = e.pointA
		} else {
			e.targetX = e.pointB
		}
		e.setState(stateBasicIdle)
		return
	}
	e.facing = common.Sign(dx)
	e.setVelocityX(e.facing * e.tuning.Speed)
}

type basicDeadState struct{}

func (basicDeadState) Name() string { return "dead" }
func (basicDeadState) Enter(e *Basic) {
	e.deactivate()
	if e.body != nil {
		e.body.SetVelocity(0, 0)
	}
	e.removeBody()
	e.startFade()
}
func (basicDeadState) Exit(e *Basic)                     {}
func (basicDeadState) Update(e *Basic, dt time.Duration) {}

var (
	stateBasicIdle   basicState = &basicIdleState{}
	stateBasicMoving basicState = &basicMovingState{}
	stateBasicDead   basicState = &basicDeadState{}
)

// Basic patrols between two points, pausing at each end. One snowball
// kills it; it then fades out and frees itself.
type Basic struct {
	base
	tuning BasicTuning

	pointA, pointB float64
	targetX        float64
	facing         float64

	state    basicState
	idleLeft time.Duration
	alpha    float64
	fade     sched.Handle
}

// NewBasic places a Basic enemy standing at feet, patrolling between the
// x coordinates left and right. It starts idle, heading for right next.
func NewBasic(deps Deps, feet common.Vec, left, right float64, tuning BasicTuning) *Basic {
	if right < left {
		left, right = right, left
	}
	e := &Basic{
		base: newBase(deps, assets.TextureEnemyBasic, feet, physics.BodySpec{
			Group:   physics.GroupEnemy,
			Kind:    physics.Dynamic,
			Gravity: true,
		}),
		tuning:  tuning,
		pointA:  left,
		pointB:  right,
		targetX: right,
		facing:  1,
		alpha:   1,
	}
	e.setState(stateBasicIdle)
	return e
}

func (e *Basic) setState(s basicState) {
	if e.state == s {
		return
	}
	if e.state != nil {
		e.state.Exit(e)
	}
	e.state = s
	e.state.Enter(e)
}

func (e *Basic) Update(now, dt time.Duration) {
	if e == nil || e.torn || e.state == nil {
		return
	}
	e.state.Update(e, dt)
}

// OnProjectileHit kills the enemy. Hits on a dead enemy do nothing.
func (e *Basic) OnProjectileHit() {
	if e == nil || e.torn || e.state == stateBasicDead {
		return
	}
	log.Printf("Basic %v: hit, dying", e.id)
	e.setState(stateBasicDead)
}

func (e *Basic) DamagePlayer(p component.Player) {
	if e == nil || e.state == stateBasicDead {
		return
	}
	e.hitPlayer(p, contactDamage(e.tuning.ContactDamage, e.tuning.Knockback))
}

func (e *Basic) Dead() bool {
	return e != nil && e.state == stateBasicDead
}

func (e *Basic) Teardown() {
	if e == nil {
		return
	}
	e.fade.Cancel()
	e.release()
}

func (e *Basic) startFade() {
	steps := e.tuning.FadeSteps
	if e.deps.Timers == nil || steps <= 0 {
		e.alpha = 0
		e.release()
		return
	}
	e.fade = e.deps.Timers.Repeat(e.tuning.FadeStep, steps, func(n int) {
		if e.torn {
			return
		}
		e.alpha = 1 - float64(n)/float64(steps)
		if n >= steps {
			e.alpha = 0
			e.release()
		}
	})
}

func (e *Basic) State() string           { return e.state.Name() }
func (e *Basic) Target() float64         { return e.targetX }
func (e *Basic) IdleLeft() time.Duration { return e.idleLeft }
func (e *Basic) Alpha() float64          { return e.alpha }
func (e *Basic) Facing() float64         { return e.facing }

// Released reports whether the enemy has freed its id.
func (e *Basic) Released() bool { return e.torn }

// Patrol returns the two patrol x coordinates.
func (e *Basic) Patrol() (a, b float64) { return e.pointA, e.pointB }
