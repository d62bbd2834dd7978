package component

import "github.com/milk9111/pengu-adventures/common"

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
	FactionEnvironment
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	case FactionEnvironment:
		return "environment"
	}
	return "neutral"
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit           CombatEventType = "hit"
	EventDamageApplied CombatEventType = "damage_applied"
	EventDeath         CombatEventType = "death"
)

// CombatEvent describes one application of damage.
type CombatEvent struct {
	Type    CombatEventType
	Damage  int
	Faction Faction
	Pos     common.Vec
}

// Damage describes damage parameters.
type Damage struct {
	Amount     int
	KnockbackX float64
	KnockbackY float64
	Faction    Faction
}

// Knockback returns the velocity to give a target at target when hit from
// source: pushed away horizontally and lifted.
func (d Damage) Knockback(source, target common.Vec) common.Vec {
	dir := common.Sign(target.X - source.X)
	if dir == 0 {
		dir = 1
	}
	return common.Vec{X: dir * d.KnockbackX, Y: -d.KnockbackY}
}
