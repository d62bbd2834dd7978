package surface

import (
	"math"
	"strings"
	"testing"

	"github.com/milk9111/pengu-adventures/levels"
)

func TestFindValidSurfacesScenarios(t *testing.T) {
	cases := []struct {
		name      string
		rows      []string
		minTiles  int
		wantTiles []int
	}{
		{"full_row", []string{strings.Repeat("#", 20)}, 5, []int{20}},
		{"too_narrow", []string{"..####.."}, 5, nil},
		{"empty_grid", []string{"....", "...."}, 1, nil},
		{"run_at_right_edge", []string{"...#####"}, 5, []int{5}},
		{"two_rows_not_merged", []string{"######", "######"}, 3, []int{6, 6}},
		{"gap_splits_run", []string{"###.####"}, 3, []int{3, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FindValidSurfaces(levels.NewGrid(32, tc.rows...), Options{MinTilesWidth: tc.minTiles})
			if got == nil {
				t.Fatalf("result must be an empty slice, not nil")
			}
			if len(got) != len(tc.wantTiles) {
				t.Fatalf("got %d surfaces, want %d: %+v", len(got), len(tc.wantTiles), got)
			}
			for i, s := range got {
				if s.TilesCount != tc.wantTiles[i] {
					t.Fatalf("surface %d tiles = %d, want %d", i, s.TilesCount, tc.wantTiles[i])
				}
			}
		})
	}
}

func TestSurfaceGeometryInvariants(t *testing.T) {
	grid := levels.NewGrid(16,
		"..#####...##########",
		"....................",
		"#########.....######",
	)
	for _, s := range FindValidSurfaces(grid, Options{MinTilesWidth: 2}) {
		if s.Width != s.EndX-s.StartX {
			t.Fatalf("width %v != endX-startX %v", s.Width, s.EndX-s.StartX)
		}
		if float64(s.TilesCount)*16 != s.Width {
			t.Fatalf("tilesCount*tileSize %v != width %v", float64(s.TilesCount)*16, s.Width)
		}
		if s.CenterX != (s.StartX+s.EndX)/2 {
			t.Fatalf("center %v not midway", s.CenterX)
		}
		if s.Y != float64(s.TileY)*16 {
			t.Fatalf("y %v does not match row %d", s.Y, s.TileY)
		}
	}
}

func TestScanOrderIsRowMajor(t *testing.T) {
	grid := levels.NewGrid(10,
		"##..###",
		"###.##.",
	)
	got := FindValidSurfaces(grid, Options{MinTilesWidth: 2})
	want := [][2]int{{0, 0}, {4, 0}, {0, 1}, {4, 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d surfaces, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.TileStartX != want[i][0] || s.TileY != want[i][1] {
			t.Fatalf("surface %d at (%d,%d), want %v", i, s.TileStartX, s.TileY, want[i])
		}
	}
}

func TestExclusionAreas(t *testing.T) {
	grid := levels.NewGrid(10,
		"#####.....#####",
	)
	// first run centered at x=25, second at x=125, both at y=0
	cases := []struct {
		name  string
		areas []ExcludeArea
		want  int
	}{
		{"none", nil, 2},
		{"covers_first", []ExcludeArea{{X: 25, Y: 0, Radius: 30}}, 1},
		{"covers_both", []ExcludeArea{{X: 25, Y: 0, Radius: 5}, {X: 125, Y: 0, Radius: 5}}, 0},
		{"misses", []ExcludeArea{{X: 75, Y: 0, Radius: 10}}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FindValidSurfaces(grid, Options{MinTilesWidth: 3, ExcludeAreas: tc.areas})
			if len(got) != tc.want {
				t.Fatalf("got %d, want %d", len(got), tc.want)
			}
			for _, s := range got {
				for _, a := range tc.areas {
					if math.Hypot(s.CenterX-a.X, s.Y-a.Y) < a.Radius {
						t.Fatalf("surface %+v inside exclusion %+v", s, a)
					}
				}
			}
		})
	}
}

func TestPropertiesOverGeneratedGrids(t *testing.T) {
	// deterministic pseudo-random grids
	seed := uint32(12345)
	next := func() uint32 {
		seed = seed*1664525 + 1013904223
		return seed >> 16
	}
	for n := 0; n < 50; n++ {
		rows := make([]string, 6)
		for y := range rows {
			var b strings.Builder
			for x := 0; x < 24; x++ {
				if next()%3 != 0 {
					b.WriteByte('#')
				} else {
					b.WriteByte('.')
				}
			}
			rows[y] = b.String()
		}
		minTiles := int(next()%4) + 1
		area := ExcludeArea{X: float64(next() % 240), Y: float64(next() % 60), Radius: float64(next() % 80)}
		for _, s := range FindValidSurfaces(levels.NewGrid(10, rows...), Options{MinTilesWidth: minTiles, ExcludeAreas: []ExcludeArea{area}}) {
			if s.TilesCount < minTiles {
				t.Fatalf("grid %d: tiles %d < min %d", n, s.TilesCount, minTiles)
			}
			if math.Hypot(s.CenterX-area.X, s.Y-area.Y) < area.Radius {
				t.Fatalf("grid %d: surface inside exclusion", n)
			}
			if float64(s.TilesCount)*10 != s.Width {
				t.Fatalf("grid %d: width mismatch", n)
			}
		}
	}
}

func TestHeadroom(t *testing.T) {
	grid := levels.NewGrid(10,
		"..##....",
		"########",
	)
	got := FindValidSurfaces(grid, Options{MinTilesWidth: 2, Headroom: 1})
	// row 0 run (2 tiles), row 1 splits around the covered tiles
	want := []int{2, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i].TilesCount != want[i] {
			t.Fatalf("surface %d tiles = %d, want %d", i, got[i].TilesCount, want[i])
		}
	}
}

func TestLargestSurfaces(t *testing.T) {
	in := []Surface{{Width: 10, TileY: 0}, {Width: 30, TileY: 1}, {Width: 10, TileY: 2}, {Width: 20, TileY: 3}}
	got := LargestSurfaces(in, 3)
	wantRows := []int{1, 3, 0}
	if len(got) != 3 {
		t.Fatalf("got %d", len(got))
	}
	for i, r := range wantRows {
		if got[i].TileY != r {
			t.Fatalf("position %d row %d, want %d", i, got[i].TileY, r)
		}
	}
	if in[0].Width != 10 || in[1].Width != 30 {
		t.Fatalf("input was reordered")
	}
	if LargestSurfaces(in, 0) != nil {
		t.Fatalf("n=0 should return nil")
	}
}
