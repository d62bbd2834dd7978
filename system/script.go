package system

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/enemy"
)

// scriptTimeout bounds a placement script so a runaway loop cannot hang
// level loading.
const scriptTimeout = 2 * time.Second

// RunScript executes a tengo placement script against the enemy system.
// Scripts see spawn_basic(x, y, left, right), spawn_freezable(x, y, left,
// right), spawn_snowman(x, y, facing), tile_size and player_start. The y
// argument is the top of the surface the enemy stands on. It returns how
// many enemies the script placed.
func (s *EnemySystem) RunScript(name string, src []byte, playerStart common.Vec, tileSize float64) (int, error) {
	if s == nil {
		return 0, nil
	}
	placed := 0

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("tile_size", tileSize)
	_ = script.Add("player_start", map[string]any{"x": playerStart.X, "y": playerStart.Y})

	_ = script.Add("spawn_basic", &tengo.UserFunction{Name: "spawn_basic", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := scriptFloats(args, "x", "y", "left", "right")
		if err != nil {
			return nil, err
		}
		e := s.AddBasic(common.Vec{X: v[0], Y: v[1]}, v[2], v[3])
		placed++
		return &tengo.Int{Value: int64(e.ID())}, nil
	}})
	_ = script.Add("spawn_freezable", &tengo.UserFunction{Name: "spawn_freezable", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := scriptFloats(args, "x", "y", "left", "right")
		if err != nil {
			return nil, err
		}
		e := s.AddFreezable(common.Vec{X: v[0], Y: v[1]}, v[2], v[3])
		placed++
		return &tengo.Int{Value: int64(e.ID())}, nil
	}})
	_ = script.Add("spawn_snowman", &tengo.UserFunction{Name: "spawn_snowman", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, err := scriptFloats(args[:2], "x", "y")
		if err != nil {
			return nil, err
		}
		dir, ok := tengo.ToString(args[2])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "facing", Expected: "string", Found: args[2].TypeName()}
		}
		facing, err := enemy.ParseFacing(dir)
		if err != nil {
			return nil, err
		}
		e := s.AddSnowman(common.Vec{X: v[0], Y: v[1]}, facing)
		placed++
		return &tengo.Int{Value: int64(e.ID())}, nil
	}})

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if _, err := script.RunContext(ctx); err != nil {
		return placed, fmt.Errorf("system: script %s: %w", name, err)
	}
	return placed, nil
}

func scriptFloats(args []tengo.Object, names ...string) ([]float64, error) {
	if len(args) != len(names) {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: names[i], Expected: "number", Found: a.TypeName()}
		}
		out[i] = f
	}
	return out, nil
}
