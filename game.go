package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/pengu-adventures/assets"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/component"
	"github.com/milk9111/pengu-adventures/enemy"
	"github.com/milk9111/pengu-adventures/prefabs"
	"github.com/milk9111/pengu-adventures/system"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	zoom       = 1.5
)

type textured interface {
	Texture() assets.Texture
}

type fader interface {
	Alpha() float64
}

type Game struct {
	frames int

	levelName string
	seed      int64
	debug     bool

	input   *Input
	camera  *Camera
	watcher *prefabs.Watcher

	world      *system.World
	player     *component.PlayerHandle
	playerSpec prefabs.PlayerSpec
	facing     float64
	lastThrow  time.Duration
	thrown     bool
}

func NewGame(levelName string, seed int64, debug, watch bool) (*Game, error) {
	g := &Game{
		levelName: levelName,
		seed:      seed,
		debug:     debug,
		input:     NewInput(),
		camera:    NewCamera(baseWidth, baseHeight, zoom),
	}
	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, "levels")
		if err != nil {
			log.Printf("Game: file watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	if err := g.load(); err != nil {
		g.watcher.Close()
		return nil, err
	}
	return g, nil
}

// load builds a fresh world from the current prefabs. Bad prefab files
// fall back to the defaults rather than stopping the game.
func (g *Game) load() error {
	cfg, err := system.LoadEnemyConfig()
	if err != nil {
		log.Printf("Game: enemy config: %v", err)
	}
	tuning, specs, err := system.LoadTuning()
	if err != nil {
		log.Printf("Game: tuning: %v", err)
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("Game: player: %v", err)
	}

	world, err := system.LoadWorld(g.levelName, system.Options{
		Config:      &cfg,
		Tuning:      tuning,
		Projectiles: specs,
		Seed:        g.seed,
	})
	if err != nil {
		return fmt.Errorf("load level %s: %w", g.levelName, err)
	}

	if g.world != nil {
		g.world.Teardown()
	}
	g.world = world
	g.playerSpec = spec
	g.player = world.SpawnPlayer(spec.Health, spec.IFrames)
	g.facing = 1
	g.thrown = false

	b := world.Level.Bounds()
	g.camera.SetWorldBounds(b.Width, b.Height)
	p := g.player.Position()
	g.camera.SnapTo(p.X, p.Y)
	return nil
}

func (g *Game) reload(reason string) {
	log.Printf("Game: reloading (%s)", reason)
	if err := g.load(); err != nil {
		log.Printf("Game: reload failed, keeping the current level: %v", err)
	}
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()
	if g.input.Quit {
		g.close()
		return ebiten.Termination
	}
	if g.input.DebugToggled {
		g.debug = !g.debug
	}
	if path, ok := g.watcher.Poll(); ok {
		g.reload(path + " changed")
	}
	if g.input.ReloadPressed {
		g.reload("requested")
	}

	g.updatePlayer()
	g.world.Update(time.Second / time.Duration(ebiten.TPS()))

	if !g.player.Health.IsAlive() {
		g.reload("player died")
	}
	p := g.player.Position()
	g.camera.Update(p.X, p.Y)
	return nil
}

func (g *Game) updatePlayer() {
	in := g.input
	vel := g.player.Velocity()
	vx := in.MoveX * g.playerSpec.MoveSpeed
	if in.MoveX != 0 {
		g.facing = common.Sign(in.MoveX)
	}
	vy := vel.Y
	if in.JumpPressed && g.player.Body.Contacts().Grounded {
		vy = -g.playerSpec.JumpSpeed
	}
	// knockback owns the horizontal velocity while i-frames run
	if g.player.Health.IFrames > 0 && in.MoveX == 0 {
		vx = vel.X
	}
	g.player.SetVelocity(vx, vy)

	now := g.world.Now()
	if in.ThrowPressed && (!g.thrown || now-g.lastThrow >= g.playerSpec.ThrowCooldown) {
		w, _ := g.player.Body.Size()
		pos := g.player.Position().Add(common.V(g.facing*w, -4))
		if g.world.Throw(pos, g.facing) != nil {
			g.lastThrow = now
			g.thrown = true
		}
	}
}

func (g *Game) close() {
	if g.world != nil {
		g.world.Teardown()
	}
	g.watcher.Close()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Aliceblue)
	g.drawLevel(screen)

	for _, e := range g.world.Enemies.Dying() {
		g.drawEnemy(screen, e)
	}
	for _, e := range g.world.Enemies.Enemies() {
		g.drawEnemy(screen, e)
	}

	snow := g.world.Assets.Resolve(assets.TextureSnowball)
	for _, p := range g.world.Projectiles.Projectiles() {
		pos := p.Position()
		x, y := g.camera.WorldToScreen(pos.X, pos.Y)
		r := p.Spec().Radius * g.camera.Zoom()
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), snow.Color, true)
	}

	pt := g.world.Assets.Resolve(assets.TexturePlayer)
	pc := color.Color(pt.Color)
	if g.player.Health.IFrames > 0 && g.frames/4%2 == 0 {
		pc = withAlpha(pt.Color, 0.4)
	}
	g.fillCentered(screen, g.player.Position(), pt.Width, pt.Height, pc)

	if g.debug {
		drawPhysics(screen, g.world.Physics, g.camera)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  HP: %d/%d  Enemies: %d  Snowballs: %d  Seed: %d",
		ebiten.ActualFPS(), g.player.Health.Current, g.player.Health.Max,
		g.world.Enemies.Count(), g.world.Projectiles.Count(), g.world.Rand.Seed()))
}

func (g *Game) drawLevel(screen *ebiten.Image) {
	lvl := g.world.Level
	ts := lvl.TileSize
	for _, ly := range lvl.AllLayers() {
		c, ok := colornames.Map[ly.Color()]
		if !ok {
			c = colornames.Slategray
		}
		for y := 0; y < ly.Height(); y++ {
			for x := 0; x < ly.Width(); x++ {
				if ly.At(x, y) == 0 {
					continue
				}
				sx, sy := g.camera.WorldToScreen(float64(x)*ts, float64(y)*ts)
				size := float32(ts * g.camera.Zoom())
				vector.DrawFilledRect(screen, float32(sx), float32(sy), size, size, c, false)
			}
		}
	}
}

func (g *Game) drawEnemy(screen *ebiten.Image, e enemy.Enemy) {
	t, ok := e.(textured)
	if !ok {
		return
	}
	tex := t.Texture()
	c := color.Color(tex.Color)
	if f, ok := e.(fader); ok && f.Alpha() < 1 {
		if f.Alpha() <= 0 {
			return
		}
		c = withAlpha(tex.Color, f.Alpha())
	}
	g.fillCentered(screen, e.Position(), tex.Width, tex.Height, c)

	if fz, ok := e.(*enemy.Freezable); ok {
		if ice := fz.Ice(); ice != nil && ice.Alive() {
			it := ice.Texture()
			s := ice.Scale()
			g.fillCentered(screen, ice.Position(), it.Width*s, it.Height*s, withAlpha(it.Color, 0.6))
		}
	}
}

func (g *Game) fillCentered(screen *ebiten.Image, center common.Vec, w, h float64, c color.Color) {
	x, y := g.camera.WorldToScreen(center.X-w/2, center.Y-h/2)
	z := g.camera.Zoom()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*z), float32(h*z), c, false)
}

func withAlpha(c color.RGBA, a float64) color.Color {
	a = common.Clamp(a, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
