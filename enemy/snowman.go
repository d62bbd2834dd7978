package enemy

import (
	"log"
	"time"

	"github.com/milk9111/pengu-adventures/assets"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/physics"
	"github.com/milk9111/pengu-adventures/projectile"
	"github.com/milk9111/pengu-adventures/sched"
)

type snowmanState interface {
	Name() string
	Enter(e *Snowman)
	Exit(e *Snowman)
	Update(e *Snowman, dt time.Duration)
}

type snowmanIdleState struct{}

func (snowmanIdleState) Name() string { return "idle" }
func (snowmanIdleState) Enter(e *Snowman) {
	e.attackLeft = e.nextAttackDelay()
}
func (snowmanIdleState) Exit(e *Snowman) {}
func (snowmanIdleState) Update(e *Snowman, dt time.Duration) {
	e.attackLeft -= dt
	if e.attackLeft <= 0 {
		e.setState(stateSnowmanAttack)
	}
}

type snowmanAttackState struct{}

func (snowmanAttackState) Name() string { return "attack" }
func (snowmanAttackState) Enter(e *Snowman) {
	e.fired = false
	if e.deps.Timers == nil {
		return
	}
	d := e.tuning.AttackDuration
	e.throwAt = e.deps.Timers.After(d/2, e.throw)
	e.doneAt = e.deps.Timers.After(d, e.finishAttack)
}
func (snowmanAttackState) Exit(e *Snowman) {
	e.throwAt.Cancel()
	e.doneAt.Cancel()
}
func (snowmanAttackState) Update(e *Snowman, dt time.Duration) {}

var (
	stateSnowmanIdle   snowmanState = &snowmanIdleState{}
	stateSnowmanAttack snowmanState = &snowmanAttackState{}
)

// Snowman stands still and throws a snowball in a fixed direction every
// few seconds. Snowballs do not hurt it.
type Snowman struct {
	base
	tuning SnowmanTuning
	facing Facing

	state      snowmanState
	attackLeft time.Duration
	fired      bool
	throws     int

	throwAt, doneAt sched.Handle
}

func NewSnowman(deps Deps, feet common.Vec, facing Facing, tuning SnowmanTuning) *Snowman {
	e := &Snowman{
		base: newBase(deps, assets.TextureEnemySnowman, feet, physics.BodySpec{
			Group: physics.GroupEnemy,
			Kind:  physics.Kinematic,
		}),
		tuning: tuning,
		facing: facing,
	}
	e.setState(stateSnowmanIdle)
	return e
}

func (e *Snowman) setState(s snowmanState) {
	if e.state == s {
		return
	}
	if e.state != nil {
		e.state.Exit(e)
	}
	e.state = s
	e.state.Enter(e)
}

func (e *Snowman) nextAttackDelay() time.Duration {
	j := float64(e.tuning.AttackJitter)
	return e.tuning.AttackInterval + time.Duration(common.Between(e.deps.Rand, -j, j))
}

func (e *Snowman) Update(now, dt time.Duration) {
	if e == nil || e.torn || e.state == nil {
		return
	}
	e.state.Update(e, dt)
}

// throw runs at the middle of the attack.
func (e *Snowman) throw() {
	if e.torn || e.state != stateSnowmanAttack || e.fired {
		return
	}
	e.fired = true
	e.throws++

	dir := e.facing.Dir()
	off := e.tuning.LaunchOffset
	pos := e.Position().Add(common.Vec{X: off.X * dir, Y: off.Y})
	p := projectile.Launch(component.FactionEnemy, pos, dir, e.tuning.Projectile)
	if e.deps.Bus == nil {
		log.Printf("Snowman %v: no bus, snowball dropped", e.id)
		return
	}
	e.deps.Bus.Publish(p.Topic(), p)
}

func (e *Snowman) finishAttack() {
	if e.torn || e.state != stateSnowmanAttack {
		return
	}
	e.setState(stateSnowmanIdle)
}

func (e *Snowman) DamagePlayer(p component.Player) {
	if e == nil {
		return
	}
	e.hitPlayer(p, contactDamage(e.tuning.ContactDamage, e.tuning.Knockback))
}

func (e *Snowman) Teardown() {
	if e == nil {
		return
	}
	e.throwAt.Cancel()
	e.doneAt.Cancel()
	e.release()
}

func (e *Snowman) State() string             { return e.state.Name() }
func (e *Snowman) Facing() Facing            { return e.facing }
func (e *Snowman) Throws() int               { return e.throws }
func (e *Snowman) AttackLeft() time.Duration { return e.attackLeft }
