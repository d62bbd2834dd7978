package enemy

import (
	"time"

	"github.com/milk9111/pengu-adventures/assets"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/physics"
	"golang.org/x/image/colornames"
)

// IceBlock encases a frozen enemy. It is a solid, immovable body the
// player can stand on, and it lives exactly as long as the freeze.
type IceBlock struct {
	id      ecs.Entity
	deps    Deps
	body    physics.Body
	texture assets.Texture
	pos     common.Vec

	age            time.Duration
	appearTime     time.Duration
	disappearing   bool
	disappearAge   time.Duration
	disappearTotal time.Duration
	alive          bool
}

func newIceBlock(deps Deps, center common.Vec, w, h float64, appear time.Duration) *IceBlock {
	b := &IceBlock{deps: deps, pos: center, appearTime: appear, alive: true}
	build := func() assets.Texture {
		return assets.Texture{Width: w, Height: h, Color: colornames.Lightskyblue}
	}
	if deps.Assets != nil {
		b.texture = deps.Assets.Ensure(assets.TextureIceBlock, build)
	} else {
		b.texture = build()
		b.texture.Key = assets.TextureIceBlock
	}
	if deps.Entities != nil {
		b.id = deps.Entities.Create()
	}
	if deps.Physics != nil {
		b.body = deps.Physics.AddBody(b.id, physics.BodySpec{
			Group:    physics.GroupIceBlock,
			Kind:     physics.Kinematic,
			Width:    w,
			Height:   h,
			Position: center,
			Friction: 0.8,
		})
	}
	return b
}

func (b *IceBlock) ID() ecs.Entity {
	if b == nil {
		return 0
	}
	return b.id
}

func (b *IceBlock) Alive() bool {
	return b != nil && b.alive
}

func (b *IceBlock) Position() common.Vec {
	if b == nil {
		return common.Vec{}
	}
	return b.pos
}

func (b *IceBlock) Texture() assets.Texture {
	return b.texture
}

// Sync moves the block onto the enemy's center.
func (b *IceBlock) Sync(center common.Vec) {
	if !b.Alive() {
		return
	}
	b.pos = center
	if b.body != nil {
		b.body.SetPosition(center)
		b.body.SetVelocity(0, 0)
	}
}

func (b *IceBlock) Update(dt time.Duration) {
	if !b.Alive() {
		return
	}
	b.age += dt
	if b.disappearing {
		b.disappearAge += dt
	}
}

// StartDisappear begins shrinking the block over d.
func (b *IceBlock) StartDisappear(d time.Duration) {
	if !b.Alive() || b.disappearing {
		return
	}
	b.disappearing = true
	b.disappearTotal = d
}

func (b *IceBlock) Disappearing() bool {
	return b != nil && b.disappearing
}

// Scale is the draw scale: growing from 0 to 1 while appearing, shrinking
// back to 0 while disappearing.
func (b *IceBlock) Scale() float64 {
	if !b.Alive() {
		return 0
	}
	if b.disappearing {
		if b.disappearTotal <= 0 {
			return 0
		}
		return common.Clamp(1-float64(b.disappearAge)/float64(b.disappearTotal), 0, 1)
	}
	if b.appearTime <= 0 {
		return 1
	}
	return common.Clamp(float64(b.age)/float64(b.appearTime), 0, 1)
}

// Destroy removes the body and frees the id.
func (b *IceBlock) Destroy() {
	if !b.Alive() {
		return
	}
	b.alive = false
	if b.deps.Physics != nil {
		b.deps.Physics.RemoveBody(b.id)
	}
	b.body = nil
	if b.deps.Entities != nil {
		b.deps.Entities.Destroy(b.id)
	}
}
