package system

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/pengu-adventures/assets"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/enemy"
	"github.com/milk9111/pengu-adventures/event"
	"github.com/milk9111/pengu-adventures/levels"
	"github.com/milk9111/pengu-adventures/physics"
	"github.com/milk9111/pengu-adventures/prefabs"
	"github.com/milk9111/pengu-adventures/projectile"
	"github.com/milk9111/pengu-adventures/sched"
)

// Options configure a World. Zero values fall back to the defaults.
type Options struct {
	Config      *EnemyConfig
	Tuning      enemy.Tuning
	Projectiles prefabs.ProjectileSpecs
	Assets      *assets.Registry
	Seed        int64
	// Script replaces the level's own placement script when set.
	Script []byte
	// NoScript skips script placement entirely.
	NoScript bool
}

// World owns one loaded level and everything running in it.
type World struct {
	Level    *levels.Level
	Physics  *physics.World
	Clock    *sched.Scheduler
	Bus      *event.Bus
	Entities *ecs.Registry
	Assets   *assets.Registry
	Rand     *common.PRNG

	Enemies     *EnemySystem
	Projectiles *ProjectileSystem

	player     *component.PlayerHandle
	playerSnow projectile.Spec
	bounds     common.Rect
	torn       bool
}

// LoadWorld loads a level by name from the embedded levels.
func LoadWorld(levelName string, opts Options) (*World, error) {
	if levelName == "" {
		return nil, fmt.Errorf("system: level name is empty")
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	return NewWorld(lvl, opts)
}

// NewWorld builds the physics for lvl and places its enemies: first on the
// detected surfaces, then from the placement script, then from entities.
func NewWorld(lvl *levels.Level, opts Options) (*World, error) {
	if lvl == nil {
		return nil, fmt.Errorf("system: level is nil")
	}
	cfg := DefaultEnemyConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	reg := opts.Assets
	if reg == nil {
		var err error
		if reg, err = assets.LoadDefault(); err != nil {
			log.Printf("World: textures: %v", err)
		}
	}

	w := &World{
		Level:    lvl,
		Physics:  physics.NewWorld(),
		Clock:    sched.New(),
		Bus:      event.NewBus(),
		Entities: ecs.NewRegistry(),
		Assets:   reg,
		Rand:     common.NewPRNG(opts.Seed),
	}
	log.Printf("World: level %s seed %d", lvl.Name, w.Rand.Seed())

	ts := lvl.TileSize
	w.bounds = lvl.Bounds()
	w.bounds = common.Rect{X: -2 * ts, Y: -4 * ts, Width: w.bounds.Width + 4*ts, Height: w.bounds.Height + 6*ts}

	for _, ly := range lvl.PhysicsLayers() {
		w.Physics.AddTileLayer(ly.Name(), ly)
	}
	w.Physics.AddBounds(lvl.Bounds())

	tuning := opts.Tuning
	if opts.Projectiles.Enemy.Speed > 0 {
		tuning.Snowman.Projectile = opts.Projectiles.Enemy
	}
	w.playerSnow = projectile.PlayerSnowball
	if opts.Projectiles.Player.Speed > 0 {
		w.playerSnow = opts.Projectiles.Player
	}

	deps := enemy.Deps{
		Timers:   w.Clock,
		Bus:      w.Bus,
		Assets:   w.Assets,
		Entities: w.Entities,
		Rand:     w.Rand,
	}
	enemies, err := NewEnemySystem(cfg, tuning, lvl.Collision(), w.Physics, deps)
	if err != nil {
		return nil, err
	}
	w.Enemies = enemies
	w.Projectiles = NewProjectileSystem(w.Physics, w.Bus, w.Entities, w.Clock)
	w.wireCollisions()

	start := lvl.SpawnPosition()
	w.Enemies.Initialize(start)
	if !opts.NoScript {
		w.runScript(opts.Script, start)
	}
	if n := w.Enemies.PlaceEntities(lvl.Entities, ts); n > 0 {
		log.Printf("World: placed %d enemies from level entities", n)
	}
	return w, nil
}

func (w *World) wireCollisions() {
	w.Physics.Ignore(physics.GroupEnemy, physics.GroupEnemy)
	w.Physics.Ignore(physics.GroupEnemy, physics.GroupIceBlock)

	w.Projectiles.CollideWithGroup(physics.GroupSolid, nil)
	for _, ly := range w.Level.PhysicsLayers() {
		w.Projectiles.CollideWithLayer(ly.Name(), nil)
	}
	w.Projectiles.CollideWithGroup(physics.GroupIceBlock, nil)
	w.Enemies.WireProjectiles(w.Projectiles)
}

func (w *World) runScript(src []byte, start common.Vec) {
	name := "inline"
	if src == nil {
		if w.Level.Script == "" {
			return
		}
		name = w.Level.Script
		data, err := levels.LoadScript(name)
		if err != nil {
			log.Printf("World: load script %s: %v", name, err)
			return
		}
		src = data
	}
	n, err := w.Enemies.RunScript(name, src, start, w.Level.TileSize)
	if err != nil {
		log.Printf("World: %v", err)
	}
	log.Printf("World: script %s placed %d enemies", name, n)
}

// SpawnPlayer creates the player's body at the level spawn and wires it to
// both systems. A second call replaces the previous player.
func (w *World) SpawnPlayer(hp, iframes int) *component.PlayerHandle {
	if w == nil {
		return nil
	}
	if w.player != nil {
		w.Physics.RemoveBody(w.player.Entity())
		w.Entities.Destroy(w.player.Entity())
	}
	tex := w.Assets.Resolve(assets.TexturePlayer)
	id := w.Entities.Create()
	body := w.Physics.AddBody(id, physics.BodySpec{
		Group:    physics.GroupPlayer,
		Kind:     physics.Dynamic,
		Width:    tex.Width,
		Height:   tex.Height,
		Position: w.Level.SpawnPosition(),
		Gravity:  true,
	})
	p := component.NewPlayerHandle(body, component.NewHealth(hp))
	if iframes > 0 {
		p.IFrames = iframes
	}
	w.player = p
	w.Enemies.WirePlayer(p, id)
	w.Projectiles.WirePlayer(p, id)
	return p
}

func (w *World) Player() *component.PlayerHandle {
	return w.player
}

// Throw announces a player snowball leaving pos in dir.
func (w *World) Throw(pos common.Vec, dir float64) *projectile.Projectile {
	if w == nil || w.torn {
		return nil
	}
	p := projectile.Launch(component.FactionPlayer, pos, common.Sign(dir), w.playerSnow)
	w.Bus.Publish(p.Topic(), p)
	return p
}

// Now is the current frame time.
func (w *World) Now() time.Duration {
	return w.Clock.Now()
}

// Update runs one frame: physics and its collision reactions, enemies,
// projectiles, then scheduled callbacks.
func (w *World) Update(dt time.Duration) {
	if w == nil || w.torn {
		return
	}
	now := w.Clock.Now() + dt
	w.Physics.Step(dt)
	w.Enemies.Update(now, dt)
	w.Projectiles.Update(now, dt)
	w.Projectiles.CleanupOutOfBounds(w.bounds)
	w.Clock.Advance(dt)
	if w.player != nil {
		w.player.Tick()
	}
}

// Teardown releases everything the level created. Projectiles go first so
// nothing can still be admitted while enemies are torn down.
func (w *World) Teardown() {
	if w == nil || w.torn {
		return
	}
	w.torn = true
	w.Projectiles.Destroy()
	w.Enemies.Destroy()
	w.Clock.Clear()
	if w.player != nil {
		w.Physics.RemoveBody(w.player.Entity())
		w.Entities.Destroy(w.player.Entity())
		w.player = nil
	}
}
