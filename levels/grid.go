package levels

// Grid answers tile collision queries in tile coordinates.
type Grid interface {
	IsCollidableAt(x, y int) bool
	Width() int
	Height() int
	TileSize() float64
}

// Layer is one tile layer of a level.
type Layer struct {
	meta     LayerMeta
	tiles    []int
	width    int
	height   int
	tileSize float64
}

func (l *Layer) Name() string      { return l.meta.Name }
func (l *Layer) Physics() bool     { return l.meta.Physics }
func (l *Layer) Color() string     { return l.meta.Color }
func (l *Layer) Width() int        { return l.width }
func (l *Layer) Height() int       { return l.height }
func (l *Layer) TileSize() float64 { return l.tileSize }

// At returns the tile value, or 0 outside the layer.
func (l *Layer) At(x, y int) int {
	if l == nil || x < 0 || y < 0 || x >= l.width || y >= l.height {
		return 0
	}
	return l.tiles[y*l.width+x]
}

func (l *Layer) IsCollidableAt(x, y int) bool {
	return l.At(x, y) != 0
}

type unionGrid struct {
	layers   []*Layer
	width    int
	height   int
	tileSize float64
}

func (u unionGrid) IsCollidableAt(x, y int) bool {
	for _, ly := range u.layers {
		if ly.IsCollidableAt(x, y) {
			return true
		}
	}
	return false
}

func (u unionGrid) Width() int        { return u.width }
func (u unionGrid) Height() int       { return u.height }
func (u unionGrid) TileSize() float64 { return u.tileSize }

// TileGrid is an in-memory Grid built from text rows, where '#' marks a
// collidable tile. Useful for tests and small scripted maps.
type TileGrid struct {
	cells    [][]bool
	width    int
	tileSize float64
}

func NewGrid(tileSize float64, rows ...string) *TileGrid {
	g := &TileGrid{tileSize: tileSize}
	for _, row := range rows {
		cells := make([]bool, len(row))
		for i, c := range row {
			cells[i] = c == '#'
		}
		if len(cells) > g.width {
			g.width = len(cells)
		}
		g.cells = append(g.cells, cells)
	}
	return g
}

func (g *TileGrid) IsCollidableAt(x, y int) bool {
	if g == nil || y < 0 || y >= len(g.cells) || x < 0 || x >= len(g.cells[y]) {
		return false
	}
	return g.cells[y][x]
}

func (g *TileGrid) Width() int        { return g.width }
func (g *TileGrid) Height() int       { return len(g.cells) }
func (g *TileGrid) TileSize() float64 { return g.tileSize }
