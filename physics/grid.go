// Package physics is the platformer core: a static tile grid, per-axis AABB
// movement resolution against it, kinematic bodies for players and enemies,
// and stomp/side-hit classification between them.
//
// World space is +Y up and every box is addressed by its center. The package
// holds no rendering handles and performs no I/O; a tick is a pure function
// of (body, intent, grid, dt).
package physics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/automoto/stompgrid/shared/gamemath"
	"github.com/automoto/stompgrid/shared/leveldata"
	"github.com/solarlune/resolv"
)

// ErrDegenerateBox is returned for queries with a non-positive or NaN extent.
var ErrDegenerateBox = errors.New("query box must have positive width and height")

// spaceCellSize is the resolv cell size in space units; one cell per tile.
const spaceCellSize = 16

// Tile is a static, axis-aligned unit of level geometry.
type Tile struct {
	CenterX, CenterY float64
	Width, Height    float64
	Kind             leveldata.TileKind
	Glyph            rune
}

func (t Tile) Left() float64   { return t.CenterX - t.Width/2 }
func (t Tile) Right() float64  { return t.CenterX + t.Width/2 }
func (t Tile) Bottom() float64 { return t.CenterY - t.Height/2 }
func (t Tile) Top() float64    { return t.CenterY + t.Height/2 }

// Blocks reports whether the tile stops motion.
func (t Tile) Blocks() bool { return t.Kind == leveldata.Solid }

func (t Tile) overlaps(left, right, bottom, top float64) bool {
	return gamemath.Overlap(left, right, t.Left(), t.Right()) &&
		gamemath.Overlap(bottom, top, t.Bottom(), t.Top())
}

// Grid stores the static tiles of a level in stable row-major order and
// answers overlap queries through a resolv spatial hash keyed by tile cell.
// A Grid is immutable after construction and safe for concurrent queries.
type Grid struct {
	tiles    []Tile
	cells    []cell
	space    *resolv.Space
	cols     int
	rows     int
	tileSize float64
	originX  float64
	originY  float64
}

type cell struct{ col, row int }

// NewGrid builds a grid from parsed level data.
func NewGrid(data *leveldata.CollisionData) *Grid {
	g := &Grid{
		tiles:    make([]Tile, 0, len(data.Tiles)),
		cells:    make([]cell, 0, len(data.Tiles)),
		cols:     data.Cols,
		rows:     data.Rows,
		tileSize: data.TileSize,
		originX:  data.OriginX,
		originY:  data.OriginY,
	}

	for _, spec := range data.Tiles {
		if spec.Col >= g.cols {
			g.cols = spec.Col + 1
		}
		if spec.Row >= g.rows {
			g.rows = spec.Row + 1
		}
	}

	if g.cols > 0 && g.rows > 0 {
		g.space = resolv.NewSpace(g.cols*spaceCellSize, g.rows*spaceCellSize, spaceCellSize, spaceCellSize)
	}

	for i, spec := range data.Tiles {
		x, y := data.TileCenter(spec.Col, spec.Row)
		g.tiles = append(g.tiles, Tile{
			CenterX: x,
			CenterY: y,
			Width:   data.TileSize,
			Height:  data.TileSize,
			Kind:    spec.Kind,
			Glyph:   spec.Glyph,
		})
		g.cells = append(g.cells, cell{spec.Col, spec.Row})

		obj := resolv.NewObject(
			float64(spec.Col*spaceCellSize), float64(spec.Row*spaceCellSize),
			spaceCellSize, spaceCellSize,
			spec.Kind.String(),
		)
		obj.Data = i
		g.space.Add(obj)
	}

	return g
}

// Build parses map rows into a grid and the list of enemy spawn points.
// Enemy markers are never part of the grid.
func Build(rows []string, tileSize float64, opts ...BuildOption) (*Grid, []leveldata.SpawnPoint, error) {
	parse := leveldata.DefaultParseOptions()
	parse.TileSize = tileSize
	for _, opt := range opts {
		opt(&parse)
	}
	data, err := leveldata.ParseRows(rows, parse)
	if err != nil {
		return nil, nil, fmt.Errorf("build grid: %w", err)
	}
	return NewGrid(data), data.EnemySpawns, nil
}

// BuildOption adjusts how Build parses rows.
type BuildOption func(*leveldata.ParseOptions)

// WithOrigin places the center of the top-left cell at (x, y).
func WithOrigin(x, y float64) BuildOption {
	return func(o *leveldata.ParseOptions) {
		o.OriginX, o.OriginY = x, y
	}
}

// WithLegend overrides the character legend.
func WithLegend(legend leveldata.Legend) BuildOption {
	return func(o *leveldata.ParseOptions) {
		o.Legend = legend
	}
}

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// Tile returns the i-th tile in grid order.
func (g *Grid) Tile(i int) Tile { return g.tiles[i] }

// Tiles returns a copy of all tiles in grid order.
func (g *Grid) Tiles() []Tile {
	return append([]Tile(nil), g.tiles...)
}

// Bounds returns the world-space extents covered by the grid cells.
func (g *Grid) Bounds() (left, right, bottom, top float64) {
	half := g.tileSize / 2
	left = g.originX - half
	right = g.originX + float64(g.cols)*g.tileSize - half
	top = g.originY + half
	bottom = g.originY - float64(g.rows)*g.tileSize + half
	return left, right, bottom, top
}

// Query returns every tile whose box strictly overlaps the box centered at
// (x, y) with the given width and height, in grid order. Boxes that merely
// touch a tile do not collide with it.
func (g *Grid) Query(x, y, width, height float64) ([]Tile, error) {
	if !(width > 0) || !(height > 0) || math.IsNaN(x) || math.IsNaN(y) {
		return nil, fmt.Errorf("%w: %vx%v at (%v, %v)", ErrDegenerateBox, width, height, x, y)
	}
	if g.space == nil {
		return nil, nil
	}

	left, right := x-width/2, x+width/2
	bottom, top := y-height/2, y+height/2

	// Candidate cells, padded by one so float rounding can only add candidates.
	colLo, colHi, ok := g.span((left-g.originX)/g.tileSize+0.5, (right-g.originX)/g.tileSize+0.5, g.cols)
	if !ok {
		return nil, nil
	}
	rowLo, rowHi, ok := g.span((g.originY-top)/g.tileSize+0.5, (g.originY-bottom)/g.tileSize+0.5, g.rows)
	if !ok {
		return nil, nil
	}

	var indices []int
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			c := g.space.Cell(col, row)
			if c == nil {
				continue
			}
			for _, obj := range c.Objects {
				i, ok := obj.Data.(int)
				if !ok || g.cells[i] != (cell{col, row}) {
					continue
				}
				if g.tiles[i].overlaps(left, right, bottom, top) {
					indices = append(indices, i)
				}
			}
		}
	}
	if len(indices) == 0 {
		return nil, nil
	}

	sort.Ints(indices)
	hits := make([]Tile, len(indices))
	for n, i := range indices {
		hits[n] = g.tiles[i]
	}
	return hits, nil
}

// span converts a fractional cell range to padded, clamped integer bounds.
func (g *Grid) span(lo, hi float64, n int) (int, int, bool) {
	lo = math.Floor(lo) - 1
	hi = math.Floor(hi) + 1
	if hi < 0 || lo > float64(n-1) {
		return 0, 0, false
	}
	lo = gamemath.ClampFloat(lo, 0, float64(n-1))
	hi = gamemath.ClampFloat(hi, 0, float64(n-1))
	return int(lo), int(hi), true
}

// queryLinear is the reference scan Query must agree with.
func (g *Grid) queryLinear(x, y, width, height float64) []Tile {
	left, right := x-width/2, x+width/2
	bottom, top := y-height/2, y+height/2
	var hits []Tile
	for _, t := range g.tiles {
		if t.overlaps(left, right, bottom, top) {
			hits = append(hits, t)
		}
	}
	return hits
}
