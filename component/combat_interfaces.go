package component

import "github.com/milk9111/pengu-adventures/common"

// Player is what enemies and projectiles may do to the player.
type Player interface {
	Position() common.Vec
	Velocity() common.Vec
	SetVelocity(vx, vy float64)
	// TakeDamage reports whether the hit landed (false during i-frames).
	TakeDamage(amount int) bool
}
