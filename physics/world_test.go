package physics

import (
	"testing"
	"time"

	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/ecs"
	"github.com/milk9111/pengu-adventures/levels"
)

const frame = 16 * time.Millisecond

func TestMergeTilesBuildsRectangles(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		want int
	}{
		{"empty", []string{"....", "...."}, 0},
		{"one_row", []string{"####"}, 1},
		{"block", []string{"##", "##"}, 1},
		{"split_row", []string{"##.##"}, 2},
		{"l_shape", []string{"#..", "###"}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			boxes := mergeTiles(levels.NewGrid(10, tc.rows...))
			if len(boxes) != tc.want {
				t.Fatalf("got %d boxes, want %d", len(boxes), tc.want)
			}
		})
	}
}

func TestMergeTilesCoversWorldUnits(t *testing.T) {
	boxes := mergeTiles(levels.NewGrid(32, "..###"))
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	bb := boxes[0]
	if bb.L != 64 || bb.R != 160 || bb.B != 0 || bb.T != 32 {
		t.Fatalf("unexpected box %+v", bb)
	}
}

func TestLayerGroups(t *testing.T) {
	w := NewWorld()
	g := w.AddTileLayer("ground", levels.NewGrid(32, "###"))
	if !g.Terrain() {
		t.Fatalf("layer group should be terrain")
	}
	if again := w.AddTileLayer("ground", levels.NewGrid(32, "#")); again != g {
		t.Fatalf("re-adding a layer should return its group")
	}
	got, err := w.LayerGroup("ground")
	if err != nil || got != g {
		t.Fatalf("LayerGroup = %v, %v", got, err)
	}
	if _, err := w.LayerGroup("lava"); err == nil {
		t.Fatalf("expected error for unknown layer")
	}
	if GroupEnemy.Terrain() || GroupIceBlock.Terrain() {
		t.Fatalf("actor groups must not be terrain")
	}
}

func TestAddRemoveBody(t *testing.T) {
	w := NewWorld()
	reg := ecs.NewRegistry()
	e := reg.Create()
	b := w.AddBody(e, BodySpec{Group: GroupEnemy, Width: 20, Height: 20, Position: common.V(50, 60)})
	if b == nil || !w.Has(e) {
		t.Fatalf("body not registered")
	}
	if p := b.Position(); p.X != 50 || p.Y != 60 {
		t.Fatalf("Position = %+v", p)
	}
	b.SetVelocity(3, -4)
	if v := b.Velocity(); v.X != 3 || v.Y != -4 {
		t.Fatalf("Velocity = %+v", v)
	}
	if w.BodyCount(GroupEnemy) != 1 {
		t.Fatalf("BodyCount = %d", w.BodyCount(GroupEnemy))
	}
	if !w.RemoveBody(e) || w.RemoveBody(e) {
		t.Fatalf("RemoveBody should succeed once")
	}
	if w.Has(e) {
		t.Fatalf("body still present")
	}
}

func TestOverlapDispatchesAfterStepInRegistrationOrder(t *testing.T) {
	w := NewWorld()
	reg := ecs.NewRegistry()
	player, enemy := reg.Create(), reg.Create()
	w.AddBody(player, BodySpec{Group: GroupPlayer, Width: 20, Height: 20, Position: common.V(100, 100)})
	w.AddBody(enemy, BodySpec{Group: GroupEnemy, Width: 20, Height: 20, Position: common.V(105, 100)})

	var gotA, gotB ecs.Entity
	calls := 0
	w.OnOverlap(GroupEnemy, GroupPlayer, func(a, b ecs.Entity) {
		calls++
		gotA, gotB = a, b
	})
	w.Step(frame)

	if calls == 0 {
		t.Fatalf("overlap handler not called")
	}
	if gotA != enemy || gotB != player {
		t.Fatalf("handler args = (%v, %v), want (%v, %v)", gotA, gotB, enemy, player)
	}
}

func TestHandlersSkipBodiesRemovedEarlierInTheBatch(t *testing.T) {
	w := NewWorld()
	reg := ecs.NewRegistry()
	shot, enemy := reg.Create(), reg.Create()
	w.AddBody(shot, BodySpec{Group: GroupProjectile, Radius: 6, Position: common.V(100, 100)})
	w.AddBody(enemy, BodySpec{Group: GroupEnemy, Width: 20, Height: 20, Position: common.V(100, 100)})

	second := 0
	w.OnOverlap(GroupProjectile, GroupEnemy, func(a, b ecs.Entity) {
		w.RemoveBody(a)
	})
	w.OnOverlap(GroupProjectile, GroupEnemy, func(a, b ecs.Entity) {
		second++
	})
	w.Step(frame)

	if w.Has(shot) {
		t.Fatalf("projectile should be removed by the first handler")
	}
	if second != 0 {
		t.Fatalf("stale handler ran %d times", second)
	}
}

func TestContactsReportWall(t *testing.T) {
	w := NewWorld()
	w.AddTileLayer("walls", levels.NewGrid(32,
		"...#",
		"...#",
		"...#",
	))
	reg := ecs.NewRegistry()
	e := reg.Create()
	b := w.AddBody(e, BodySpec{Group: GroupEnemy, Width: 20, Height: 20, Position: common.V(40, 48)})

	for i := 0; i < 60; i++ {
		b.SetVelocity(200, 0)
		w.Step(frame)
	}
	if got := b.Contacts().Wall; got != WallRight {
		t.Fatalf("Wall = %v, want WallRight (x=%.1f)", got, b.Position().X)
	}
}

func TestShapeGroup(t *testing.T) {
	w := NewWorld()
	ground := w.AddTileLayer("ground", levels.NewGrid(32, "####"))
	reg := ecs.NewRegistry()
	e := reg.Create()
	w.AddBody(e, BodySpec{Group: GroupEnemy, Kind: Kinematic, Width: 10, Height: 10})

	if g := w.ShapeGroup(w.bodies[e].shape); g != GroupEnemy {
		t.Fatalf("body shape group = %v", g)
	}
	var terrain Group
	for shape, ref := range w.shapes {
		if !ref.entity.Valid() {
			terrain = w.ShapeGroup(shape)
		}
	}
	if terrain != ground {
		t.Fatalf("tile shape group = %v, want %v", terrain, ground)
	}
	if g := w.ShapeGroup(nil); g != GroupNone {
		t.Fatalf("nil shape group = %v", g)
	}
}
