// Package leveldata provides level parsing shared by the physics core and the
// session. It has no dependencies on resolv or donburi.
package leveldata

import "errors"

var (
	// ErrInvalidTileSize is returned when a level is parsed with a non-positive tile size.
	ErrInvalidTileSize = errors.New("tile size must be positive")
	// ErrNoLevels is returned by LoadAllLevels when the directory holds no level files.
	ErrNoLevels = errors.New("no level files found")
	// ErrInfiniteMap is returned for TMX maps saved with infinite="1".
	ErrInfiniteMap = errors.New("infinite TMX maps are not supported")
)

// TileKind tags a static tile. Only Solid tiles block motion.
type TileKind int

const (
	Solid TileKind = iota
	Item
)

func (k TileKind) String() string {
	switch k {
	case Solid:
		return "solid"
	case Item:
		return "item"
	default:
		return "unknown"
	}
}

// TileSpec is one parsed tile, addressed by grid cell. Row 0 is the topmost row.
type TileSpec struct {
	Col, Row int
	Kind     TileKind
	Glyph    rune // source character, e.g. 'G' ground or 'B' brick
}

// SpawnPoint is a world-space spawn location (tile center).
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// CollisionData holds all collision-relevant data parsed from a level.
type CollisionData struct {
	Tiles       []TileSpec
	EnemySpawns []SpawnPoint
	PlayerSpawn *SpawnPoint

	Cols, Rows int
	TileSize   float64
	OriginX    float64
	OriginY    float64
}

// TileCenter converts a grid cell to the world-space center of that cell.
func (d *CollisionData) TileCenter(col, row int) (x, y float64) {
	return float64(col)*d.TileSize + d.OriginX, d.OriginY - float64(row)*d.TileSize
}
