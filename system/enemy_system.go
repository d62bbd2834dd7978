package system

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/enemy"
	"github.com/milk9111/pengu-adventures/levels"
	"github.com/milk9111/pengu-adventures/physics"
	"github.com/milk9111/pengu-adventures/projectile"
	"github.com/milk9111/pengu-adventures/surface"
)

// Collisions registers reactions between collision groups.
type Collisions interface {
	OnOverlap(a, b physics.Group, fn physics.OverlapFunc)
	OnSolidCollision(a, b physics.Group, fn physics.OverlapFunc)
	Ignore(a, b physics.Group)
}

// Physics is what the systems need from the physics world.
type Physics interface {
	enemy.Physics
	Collisions
	LayerGroup(name string) (physics.Group, error)
}

// ProjectileSource resolves a projectile by its entity id.
type ProjectileSource interface {
	Get(id ecs.Entity) (*projectile.Projectile, bool)
}

type releaser interface {
	Released() bool
}

// EnemySystem places enemies, runs them every frame and routes collisions
// to them by entity id.
type EnemySystem struct {
	cfg     EnemyConfig
	tuning  enemy.Tuning
	deps    enemy.Deps
	physics Physics
	grid    levels.Grid

	enemies []enemy.Enemy
	index   *ecs.SparseSet[enemy.Enemy]
	// dying enemies have left the collection but may still be fading out
	dying []enemy.Enemy

	player          component.Player
	playerEntity    ecs.Entity
	playerWired     bool
	projectileWired bool
}

// NewEnemySystem validates cfg. deps.Physics is replaced by phys.
func NewEnemySystem(cfg EnemyConfig, tuning enemy.Tuning, grid levels.Grid, phys Physics, deps enemy.Deps) (*EnemySystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if phys == nil {
		return nil, fmt.Errorf("system: enemy system needs a physics world")
	}
	deps.Physics = phys
	if deps.Entities == nil {
		deps.Entities = ecs.NewRegistry()
	}
	if deps.Rand == nil {
		deps.Rand = common.NewPRNG(0)
	}
	return &EnemySystem{
		cfg:     cfg,
		tuning:  tuning.WithDefaults(),
		deps:    deps,
		physics: phys,
		grid:    grid,
		index:   ecs.NewSparseSet[enemy.Enemy](),
	}, nil
}

// Initialize places enemies on the widest-enough surfaces, in scan order,
// away from the player start. It returns how many were placed.
func (s *EnemySystem) Initialize(playerStart common.Vec) int {
	if s == nil || s.grid == nil {
		return 0
	}
	surfaces := surface.FindValidSurfaces(s.grid, surface.Options{
		MinTilesWidth: s.cfg.MinSurfaceWidth,
		ExcludeAreas: []surface.ExcludeArea{
			{X: playerStart.X, Y: playerStart.Y, Radius: s.cfg.SafeDistance},
		},
		Headroom: s.cfg.SurfaceHeadroom,
	})

	placed := 0
	for _, sf := range surfaces {
		if placed >= s.cfg.MaxEnemies {
			break
		}
		if sf.Width-2*s.cfg.PatrolMargin < s.cfg.MinPatrolWidth {
			continue
		}
		feet := common.Vec{X: sf.CenterX, Y: sf.Y}
		left, right := sf.StartX+s.cfg.PatrolMargin, sf.EndX-s.cfg.PatrolMargin
		if s.deps.Rand.Float64() < s.cfg.EnemyTypeRatio.Basic {
			s.AddBasic(feet, left, right)
		} else {
			s.AddFreezable(feet, left, right)
		}
		placed++
	}
	log.Printf("EnemySystem: placed %d enemies on %d surfaces", placed, len(surfaces))
	return placed
}

// AddBasic places a Basic enemy standing at feet.
func (s *EnemySystem) AddBasic(feet common.Vec, left, right float64) *enemy.Basic {
	e := enemy.NewBasic(s.deps, feet, left, right, s.tuning.Basic)
	s.track(e)
	return e
}

// AddFreezable places a Freezable standing at feet. Pass left == right for
// no patrol bounds.
func (s *EnemySystem) AddFreezable(feet common.Vec, left, right float64) *enemy.Freezable {
	e := enemy.NewFreezable(s.deps, feet, left, right, s.tuning.Freezable)
	s.track(e)
	return e
}

func (s *EnemySystem) AddSnowman(feet common.Vec, facing enemy.Facing) *enemy.Snowman {
	e := enemy.NewSnowman(s.deps, feet, facing, s.tuning.Snowman)
	s.track(e)
	return e
}

func (s *EnemySystem) track(e enemy.Enemy) {
	s.enemies = append(s.enemies, e)
	s.index.Set(e.ID(), e)
}

// PlaceEntities spawns the enemies hand-placed in a level. Entities that
// are not enemies, or are malformed, are skipped.
func (s *EnemySystem) PlaceEntities(entities []levels.Entity, tileSize float64) int {
	if s == nil {
		return 0
	}
	placed := 0
	for _, pe := range entities {
		// an entity stands on top of the tile below its own
		feet := common.Vec{X: (float64(pe.X) + 0.5) * tileSize, Y: float64(pe.Y+1) * tileSize}
		patrol := float64(entityPatrolTiles(pe)) * tileSize

		switch strings.ToLower(strings.TrimSpace(pe.Type)) {
		case "basic", "basic_enemy":
			s.AddBasic(feet, feet.X-patrol, feet.X+patrol)
		case "freezable", "freezable_enemy":
			s.AddFreezable(feet, feet.X-patrol, feet.X+patrol)
		case "snowman":
			facing, err := enemy.ParseFacing(pe.Prop("facing", "right"))
			if err != nil {
				log.Printf("EnemySystem: entity at (%d,%d): %v", pe.X, pe.Y, err)
				continue
			}
			s.AddSnowman(feet, facing)
		default:
			continue
		}
		placed++
	}
	return placed
}

func entityPatrolTiles(pe levels.Entity) int {
	n, err := strconv.Atoi(pe.Prop("patrol", "3"))
	if err != nil || n < 0 {
		return 3
	}
	return n
}

// WirePlayer makes enemies hurt the player on touch and lets the player
// stand on ice blocks. Calling it again swaps the player.
func (s *EnemySystem) WirePlayer(player component.Player, playerEntity ecs.Entity) {
	if s == nil {
		return
	}
	s.player = player
	s.playerEntity = playerEntity
	if s.playerWired {
		return
	}
	s.playerWired = true
	s.physics.OnOverlap(physics.GroupPlayer, physics.GroupEnemy, func(pe, ee ecs.Entity) {
		if s.player == nil || pe != s.playerEntity {
			return
		}
		e, ok := s.index.Get(ee)
		if !ok || !e.Active() {
			return
		}
		e.DamagePlayer(s.player)
	})
	s.physics.OnSolidCollision(physics.GroupPlayer, physics.GroupIceBlock, nil)
}

// WireProjectiles lets player snowballs hit enemies. The snowball is spent
// on any enemy, including ones it cannot hurt.
func (s *EnemySystem) WireProjectiles(src ProjectileSource) {
	if s == nil || src == nil || s.projectileWired {
		return
	}
	s.projectileWired = true
	s.physics.OnOverlap(physics.GroupProjectile, physics.GroupEnemy, func(pe, ee ecs.Entity) {
		p, ok := src.Get(pe)
		if !ok || p.Destroyed() || p.Owner() != component.FactionPlayer {
			return
		}
		e, ok := s.index.Get(ee)
		if !ok {
			return
		}
		if d, ok := e.(enemy.Damageable); ok {
			d.OnProjectileHit()
		}
		if m, ok := e.(enemy.Mortal); ok && m.Dead() {
			s.remove(e)
		}
		p.Destroy()
	})
}

func (s *EnemySystem) remove(e enemy.Enemy) {
	s.index.Remove(e.ID())
	for i, o := range s.enemies {
		if o == e {
			s.enemies = append(s.enemies[:i], s.enemies[i+1:]...)
			break
		}
	}
	s.dying = append(s.dying, e)
}

// Update runs every active enemy in the order they were added.
func (s *EnemySystem) Update(now, dt time.Duration) {
	if s == nil {
		return
	}
	for _, e := range s.enemies {
		if e == nil || !e.Active() {
			continue
		}
		e.Update(now, dt)
	}

	live := s.dying[:0]
	for _, e := range s.dying {
		if r, ok := e.(releaser); ok && r.Released() {
			continue
		}
		live = append(live, e)
	}
	s.dying = live
}

// Destroy tears down every enemy, including ones still fading out.
func (s *EnemySystem) Destroy() {
	if s == nil {
		return
	}
	n := len(s.enemies)
	for _, e := range s.enemies {
		e.Teardown()
	}
	for _, e := range s.dying {
		e.Teardown()
	}
	s.enemies = nil
	s.dying = nil
	s.index.Clear()
	log.Printf("EnemySystem: destroyed %d enemies", n)
}

// Enemies returns a snapshot of the tracked enemies.
func (s *EnemySystem) Enemies() []enemy.Enemy {
	if s == nil {
		return nil
	}
	out := make([]enemy.Enemy, len(s.enemies))
	copy(out, s.enemies)
	return out
}

// Dying returns enemies that have died but not finished fading.
func (s *EnemySystem) Dying() []enemy.Enemy {
	if s == nil {
		return nil
	}
	out := make([]enemy.Enemy, len(s.dying))
	copy(out, s.dying)
	return out
}

func (s *EnemySystem) Get(id ecs.Entity) (enemy.Enemy, bool) {
	if s == nil {
		return nil, false
	}
	return s.index.Get(id)
}

func (s *EnemySystem) Count() int {
	if s == nil {
		return 0
	}
	return len(s.enemies)
}

func (s *EnemySystem) Config() EnemyConfig {
	return s.cfg
}

func (s *EnemySystem) Tuning() enemy.Tuning {
	return s.tuning
}
