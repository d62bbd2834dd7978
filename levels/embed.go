package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/milk9111/pengu-adventures/common"
)

//go:embed *.json *.tengo
var LevelsFS embed.FS

var ErrLayerNotFound = errors.New("levels: layer not found")

// Level is a tile map stored as JSON. Each layer is a flat row-major slice
// of Width*Height tile values; zero is empty.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`
	// Script names a placement script next to the level file.
	Script string `json:"script,omitempty"`

	layers []*Layer
}

type LayerMeta struct {
	Name    string `json:"name"`
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Entity is a hand-placed object in tile coordinates.
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Prop returns a string property or def.
func (e Entity) Prop(key, def string) string {
	v, ok := e.Props[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

// Load reads a level from the embedded levels. The .json suffix is optional.
func Load(name string) (*Level, error) {
	return LoadFromFS(LevelsFS, name)
}

func LoadFromFS(fsys fs.FS, name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", clean, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, ".json")
	}
	return lvl, nil
}

// LoadScript reads a placement script stored beside the levels.
func LoadScript(name string) ([]byte, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	return fs.ReadFile(LevelsFS, clean)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = common.TileSize
	}
	lvl.buildLayers()
	return &lvl, nil
}

func (l *Level) buildLayers() {
	l.layers = l.layers[:0]
	for i, tiles := range l.Layers {
		meta := LayerMeta{Name: fmt.Sprintf("layer%d", i)}
		if i < len(l.LayerMeta) {
			meta = l.LayerMeta[i]
			if meta.Name == "" {
				meta.Name = fmt.Sprintf("layer%d", i)
			}
		}
		if len(tiles) != l.Width*l.Height {
			// skipped rather than failing the whole level
			continue
		}
		l.layers = append(l.layers, &Layer{
			meta:     meta,
			tiles:    tiles,
			width:    l.Width,
			height:   l.Height,
			tileSize: l.TileSize,
		})
	}
}

// Layer returns the named layer or ErrLayerNotFound.
func (l *Level) Layer(name string) (*Layer, error) {
	if l == nil {
		return nil, ErrLayerNotFound
	}
	for _, ly := range l.layers {
		if ly.meta.Name == name {
			return ly, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLayerNotFound, name)
}

// AllLayers returns the valid layers in draw order.
func (l *Level) AllLayers() []*Layer {
	if l == nil {
		return nil
	}
	return l.layers
}

// PhysicsLayers returns layers whose tiles collide.
func (l *Level) PhysicsLayers() []*Layer {
	if l == nil {
		return nil
	}
	var out []*Layer
	for _, ly := range l.layers {
		if ly.meta.Physics {
			out = append(out, ly)
		}
	}
	return out
}

// Collision is the union of every physics layer.
func (l *Level) Collision() Grid {
	return unionGrid{layers: l.PhysicsLayers(), width: l.Width, height: l.Height, tileSize: l.TileSize}
}

// SpawnPosition is the player spawn in world units, centered in its tile.
func (l *Level) SpawnPosition() common.Vec {
	if l == nil {
		return common.Vec{}
	}
	return TileCenter(l.SpawnX, l.SpawnY, l.TileSize)
}

// Bounds is the playable area in world units.
func (l *Level) Bounds() common.Rect {
	if l == nil {
		return common.Rect{}
	}
	return common.Rect{Width: float64(l.Width) * l.TileSize, Height: float64(l.Height) * l.TileSize}
}

// TileCenter converts tile coordinates to the world-space tile center.
func TileCenter(x, y int, tileSize float64) common.Vec {
	return common.Vec{X: (float64(x) + 0.5) * tileSize, Y: (float64(y) + 0.5) * tileSize}
}

func cleanLevelPath(name string) string {
	s := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
