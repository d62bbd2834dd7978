package component

import (
	"log"

	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/physics"
)

// DefaultIFrames is how long the player is invulnerable after a hit.
const DefaultIFrames = 60

// PlayerHandle adapts a physics body and a Health into a Player.
type PlayerHandle struct {
	Body    physics.Body
	Health  *Health
	IFrames int
}

func NewPlayerHandle(body physics.Body, health *Health) *PlayerHandle {
	return &PlayerHandle{Body: body, Health: health, IFrames: DefaultIFrames}
}

func (p *PlayerHandle) Entity() ecs.Entity {
	if p == nil || p.Body == nil {
		return 0
	}
	return p.Body.Entity()
}

func (p *PlayerHandle) Position() common.Vec {
	if p == nil || p.Body == nil {
		return common.Vec{}
	}
	return p.Body.Position()
}

func (p *PlayerHandle) Velocity() common.Vec {
	if p == nil || p.Body == nil {
		return common.Vec{}
	}
	return p.Body.Velocity()
}

func (p *PlayerHandle) SetVelocity(vx, vy float64) {
	if p == nil || p.Body == nil {
		return
	}
	p.Body.SetVelocity(vx, vy)
}

func (p *PlayerHandle) TakeDamage(amount int) bool {
	if p == nil || p.Health == nil {
		return false
	}
	if !p.Health.ApplyDamage(amount, CombatEvent{Type: EventDamageApplied, Damage: amount, Faction: FactionEnemy, Pos: p.Position()}) {
		return false
	}
	p.Health.StartIFrames(p.IFrames)
	log.Printf("Player: took %d damage, hp=%d/%d", amount, p.Health.Current, p.Health.Max)
	return true
}

// Tick counts down i-frames; call once per frame.
func (p *PlayerHandle) Tick() {
	if p == nil {
		return
	}
	p.Health.Tick()
}
