// Package surface finds horizontal runs of solid tiles that enemies can
// patrol.
package surface

import (
	"math"
	"sort"

	"github.com/milk9111/pengu-adventures/levels"
)

// Surface is one run of collidable tiles on a single row. Tile fields are
// grid units (TileEndX exclusive); the rest are world units, with Y the top
// edge of the row.
type Surface struct {
	TileStartX int
	TileEndX   int
	TileY      int
	TilesCount int

	StartX  float64
	EndX    float64
	CenterX float64
	Y       float64
	Width   float64
}

// ExcludeArea rejects any surface whose center falls inside the circle.
type ExcludeArea struct {
	X, Y   float64
	Radius float64
}

type Options struct {
	MinTilesWidth int
	ExcludeAreas  []ExcludeArea
	// TileSize overrides the grid's tile size when > 0.
	TileSize float64
	// Headroom, when > 0, only counts a tile if that many tiles above it
	// are free.
	Headroom int
}

// FindValidSurfaces scans the grid row by row, left to right, and returns
// the runs that are wide enough and clear of every exclusion area. Results
// are in scan order.
func FindValidSurfaces(grid levels.Grid, opts Options) []Surface {
	if grid == nil {
		return nil
	}
	tileSize := opts.TileSize
	if tileSize <= 0 {
		tileSize = grid.TileSize()
	}
	minTiles := opts.MinTilesWidth
	if minTiles < 1 {
		minTiles = 1
	}

	standable := func(x, y int) bool {
		if !grid.IsCollidableAt(x, y) {
			return false
		}
		for h := 1; h <= opts.Headroom; h++ {
			if grid.IsCollidableAt(x, y-h) {
				return false
			}
		}
		return true
	}

	surfaces := []Surface{}
	width, height := grid.Width(), grid.Height()
	for y := 0; y < height; y++ {
		runStart := -1
		for x := 0; x <= width; x++ {
			if x < width && standable(x, y) {
				if runStart < 0 {
					runStart = x
				}
				continue
			}
			if runStart < 0 {
				continue
			}
			s := newSurface(runStart, x, y, tileSize)
			runStart = -1
			if s.TilesCount < minTiles || excluded(s, opts.ExcludeAreas) {
				continue
			}
			surfaces = append(surfaces, s)
		}
	}
	return surfaces
}

func newSurface(startTile, endTile, row int, tileSize float64) Surface {
	count := endTile - startTile
	startX := float64(startTile) * tileSize
	width := float64(count) * tileSize
	return Surface{
		TileStartX: startTile,
		TileEndX:   endTile,
		TileY:      row,
		TilesCount: count,
		StartX:     startX,
		EndX:       startX + width,
		CenterX:    startX + width/2,
		Y:          float64(row) * tileSize,
		Width:      width,
	}
}

func excluded(s Surface, areas []ExcludeArea) bool {
	for _, a := range areas {
		if math.Hypot(s.CenterX-a.X, s.Y-a.Y) < a.Radius {
			return true
		}
	}
	return false
}

// LargestSurfaces returns up to n surfaces ordered by width, widest first.
// Equal widths keep their scan order. The input is not modified.
func LargestSurfaces(surfaces []Surface, n int) []Surface {
	if n <= 0 || len(surfaces) == 0 {
		return nil
	}
	out := append([]Surface(nil), surfaces...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Width > out[j].Width })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
