// Command surfaces prints the patrol surfaces found in a level and the
// enemies a given seed places on them.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/milk9111/pengu-adventures/enemy"
	"github.com/milk9111/pengu-adventures/levels"
	"github.com/milk9111/pengu-adventures/surface"
	"github.com/milk9111/pengu-adventures/system"
)

func main() {
	levelName := flag.String("level", "level1", "level name in levels/")
	seed := flag.Int64("seed", 1, "enemy placement seed")
	noScript := flag.Bool("noscript", false, "skip the level's placement script")
	flag.Parse()

	cfg, err := system.LoadEnemyConfig()
	if err != nil {
		log.Printf("enemy config: %v", err)
	}
	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	start := lvl.SpawnPosition()
	surfaces := surface.FindValidSurfaces(lvl.Collision(), surface.Options{
		MinTilesWidth: cfg.MinSurfaceWidth,
		ExcludeAreas:  []surface.ExcludeArea{{X: start.X, Y: start.Y, Radius: cfg.SafeDistance}},
		Headroom:      cfg.SurfaceHeadroom,
	})

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ROW\tTILES\tSTART\tEND\tWIDTH\tPATROL\n")
	for _, s := range surfaces {
		patrol := s.Width - 2*cfg.PatrolMargin
		mark := ""
		if patrol < cfg.MinPatrolWidth {
			mark = " (too short)"
		}
		fmt.Fprintf(tw, "%d\t%d-%d\t%.0f\t%.0f\t%.0f\t%.0f%s\n", s.TileY, s.TileStartX, s.TileEndX, s.StartX, s.EndX, s.Width, patrol, mark)
	}
	tw.Flush()

	tuning, specs, err := system.LoadTuning()
	if err != nil {
		log.Printf("tuning: %v", err)
	}
	world, err := system.NewWorld(lvl, system.Options{Config: &cfg, Tuning: tuning, Projectiles: specs, Seed: *seed, NoScript: *noScript})
	if err != nil {
		log.Fatal(err)
	}
	defer world.Teardown()

	fmt.Println()
	tw = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tKIND\tX\tY\n")
	for _, e := range world.Enemies.Enemies() {
		p := e.Position()
		fmt.Fprintf(tw, "%v\t%s\t%.0f\t%.0f\n", e.ID(), kind(e), p.X, p.Y)
	}
	tw.Flush()
}

func kind(e enemy.Enemy) string {
	switch e.(type) {
	case *enemy.Basic:
		return "basic"
	case *enemy.Freezable:
		return "freezable"
	case *enemy.Snowman:
		return "snowman"
	}
	return "unknown"
}
