package levels

import (
	"errors"
	"testing"
)

const tinyLevel = `{
	"width": 3, "height": 2, "tile_size": 16,
	"layers": [[0,0,0, 1,1,0], [0,0,1, 0,0,0], [1,2]],
	"layer_meta": [{"name":"ground","physics":true},{"name":"ledge","physics":true},{"name":"broken","physics":true}],
	"spawn_x": 1, "spawn_y": 0,
	"entities": [{"type":"snowman","x":2,"y":0,"props":{"facing":"left"}}]
}`

func TestParseBuildsLayers(t *testing.T) {
	lvl, err := Parse([]byte(tinyLevel))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lvl.AllLayers()) != 2 {
		t.Fatalf("expected the malformed layer to be skipped, got %d layers", len(lvl.AllLayers()))
	}
	g := lvl.Collision()
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 1, true},
		{1, 1, true},
		{2, 1, false},
		{2, 0, true},
		{0, 0, false},
		{-1, 0, false},
		{3, 1, false},
	}
	for _, tc := range cases {
		if got := g.IsCollidableAt(tc.x, tc.y); got != tc.want {
			t.Fatalf("IsCollidableAt(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if g.TileSize() != 16 || g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("unexpected grid dims %dx%d@%v", g.Width(), g.Height(), g.TileSize())
	}
	if sp := lvl.SpawnPosition(); sp.X != 24 || sp.Y != 8 {
		t.Fatalf("SpawnPosition = %+v", sp)
	}
	if f := lvl.Entities[0].Prop("facing", "right"); f != "left" {
		t.Fatalf("facing prop = %q", f)
	}
}

func TestLayerNotFound(t *testing.T) {
	lvl, err := Parse([]byte(tinyLevel))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := lvl.Layer("lava"); !errors.Is(err, ErrLayerNotFound) {
		t.Fatalf("expected ErrLayerNotFound, got %v", err)
	}
	ly, err := lvl.Layer("ledge")
	if err != nil || ly.At(2, 0) != 1 {
		t.Fatalf("Layer(ledge) = %v, %v", ly, err)
	}
}

func TestParseRejectsBadDimensions(t *testing.T) {
	if _, err := Parse([]byte(`{"width":0,"height":3}`)); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestEmbeddedLevelLoads(t *testing.T) {
	lvl, err := Load("level1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := lvl.Layer("ground"); err != nil {
		t.Fatalf("ground layer: %v", err)
	}
	if lvl.Script == "" {
		t.Fatalf("level1 should reference a script")
	}
	if _, err := LoadScript(lvl.Script); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}

func TestTileGrid(t *testing.T) {
	g := NewGrid(32, "..##", "####")
	if g.Width() != 4 || g.Height() != 2 {
		t.Fatalf("dims %dx%d", g.Width(), g.Height())
	}
	if g.IsCollidableAt(0, 0) || !g.IsCollidableAt(2, 0) || !g.IsCollidableAt(0, 1) {
		t.Fatalf("unexpected cells")
	}
}
