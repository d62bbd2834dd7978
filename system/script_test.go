package system

import (
	"strings"
	"testing"

	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/enemy"
)

func TestRunScriptPlacesEnemies(t *testing.T) {
	g := newRig(t, openConfig(), nil, fixedRand(0))
	src := `
ts := tile_size
id := spawn_basic(5 * ts, 10 * ts, 3 * ts, 7 * ts)
spawn_freezable(player_start.x + 200, 10 * ts, 0, 0)
for i := 0; i < 2; i++ {
	spawn_snowman(20 * ts + i * ts, 4 * ts, i == 0 ? "left" : "right")
}
`
	n, err := g.enemies.RunScript("test", []byte(src), common.V(64, 320), 32)
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if n != 4 || g.enemies.Count() != 4 {
		t.Fatalf("placed %d, Count %d, want 4", n, g.enemies.Count())
	}

	all := g.enemies.Enemies()
	b := all[0].(*enemy.Basic)
	if a, c := b.Patrol(); a != 96 || c != 224 {
		t.Fatalf("patrol = (%v, %v)", a, c)
	}
	if body := g.world.Fake(b.ID()); body.Pos.Y+body.H/2 != 320 {
		t.Fatalf("basic not standing at y=320: %+v", body.Pos)
	}
	if f := g.world.Fake(all[1].ID()); f.Pos.X != 264 {
		t.Fatalf("freezable x = %v, want player_start.x + 200", f.Pos.X)
	}
	if s := all[2].(*enemy.Snowman); s.Facing() != enemy.FacingLeft {
		t.Fatalf("first snowman faces %v", s.Facing())
	}
	if s := all[3].(*enemy.Snowman); s.Facing() != enemy.FacingRight {
		t.Fatalf("second snowman faces %v", s.Facing())
	}
}

func TestRunScriptErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		placed int
		want   string
	}{
		{name: "syntax", src: `spawn_basic(`, want: "script bad"},
		{name: "wrong arity", src: `spawn_basic(1, 2, 3)`, want: "wrong number of arguments"},
		{name: "not a number", src: `spawn_freezable("a", 2, 3, 4)`, want: "x"},
		{name: "bad facing", src: `spawn_basic(0, 0, 0, 10)
spawn_snowman(0, 0, "up")`, placed: 1, want: "unknown facing"},
		{name: "facing not a string", src: `spawn_snowman(0, 0, 1)`, want: "facing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newRig(t, openConfig(), nil, fixedRand(0))
			n, err := g.enemies.RunScript("bad", []byte(tc.src), common.V(0, 0), 32)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tc.want)
			}
			if n != tc.placed || g.enemies.Count() != tc.placed {
				t.Fatalf("placed %d, Count %d, want %d", n, g.enemies.Count(), tc.placed)
			}
		})
	}
}

func TestRunScriptStopsRunawayLoop(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the script timeout")
	}
	g := newRig(t, openConfig(), nil, fixedRand(0))
	_, err := g.enemies.RunScript("loop", []byte(`for {}`), common.V(0, 0), 32)
	if err == nil {
		t.Fatalf("expected the timeout to stop the script")
	}
}
