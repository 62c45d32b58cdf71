package leveldata

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"unicode/utf8"
)

// Marker is what a map character stands for.
type Marker int

const (
	MarkEmpty Marker = iota
	MarkSolid
	MarkItem
	MarkEnemySpawn
	MarkPlayerSpawn
)

var markerNames = map[string]Marker{
	"empty":  MarkEmpty,
	"solid":  MarkSolid,
	"item":   MarkItem,
	"enemy":  MarkEnemySpawn,
	"player": MarkPlayerSpawn,
}

// Legend maps map characters to markers. Characters missing from the legend are empty.
type Legend map[rune]Marker

// DefaultLegend is the legend of the bundled text levels.
//
//	. empty   G ground   B brick   ? item block   E enemy   P player
func DefaultLegend() Legend {
	return Legend{
		'.': MarkEmpty,
		'G': MarkSolid,
		'B': MarkSolid,
		'?': MarkItem,
		'E': MarkEnemySpawn,
		'P': MarkPlayerSpawn,
	}
}

// ParseLegend builds a Legend from single-character keys and marker names
// ("empty", "solid", "item", "enemy", "player").
func ParseLegend(m map[string]string) (Legend, error) {
	legend := make(Legend, len(m))
	for key, name := range m {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("legend key %q must be a single character", key)
		}
		marker, ok := markerNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("legend %q: unknown marker %q", key, name)
		}
		r, _ := utf8.DecodeRuneInString(key)
		legend[r] = marker
	}
	return legend, nil
}

// ParseOptions controls how map rows become world coordinates.
type ParseOptions struct {
	TileSize float64
	OriginX  float64
	OriginY  float64
	Legend   Legend // nil means DefaultLegend
}

// DefaultParseOptions matches the layout of the bundled levels: unit tiles with
// the top-left tile centered at (-5, 8).
func DefaultParseOptions() ParseOptions {
	return ParseOptions{TileSize: 1, OriginX: -5, OriginY: 8}
}

// ParseRows converts an ordered sequence of map rows into collision data.
// Unrecognized characters are treated as empty space. Spawn markers are not
// tiles; they are returned separately, with enemy spawns ordered left to right
// the same way LoadCollisionData orders them.
func ParseRows(rows []string, opts ParseOptions) (*CollisionData, error) {
	if !(opts.TileSize > 0) {
		return nil, fmt.Errorf("parse rows: %w (got %v)", ErrInvalidTileSize, opts.TileSize)
	}
	legend := opts.Legend
	if legend == nil {
		legend = DefaultLegend()
	}

	data := &CollisionData{
		Rows:     len(rows),
		TileSize: opts.TileSize,
		OriginX:  opts.OriginX,
		OriginY:  opts.OriginY,
	}

	for r, row := range rows {
		c := 0
		for _, ch := range row {
			switch marker := legend[ch]; marker {
			case MarkSolid, MarkItem:
				kind := Solid
				if marker == MarkItem {
					kind = Item
				}
				data.Tiles = append(data.Tiles, TileSpec{Col: c, Row: r, Kind: kind, Glyph: ch})
			case MarkEnemySpawn:
				x, y := data.TileCenter(c, r)
				data.EnemySpawns = append(data.EnemySpawns, SpawnPoint{X: x, Y: y, Index: len(data.EnemySpawns)})
			case MarkPlayerSpawn:
				if data.PlayerSpawn == nil {
					x, y := data.TileCenter(c, r)
					data.PlayerSpawn = &SpawnPoint{X: x, Y: y}
				}
			}
			c++
		}
		if c > data.Cols {
			data.Cols = c
		}
	}

	sortSpawns(data.EnemySpawns)
	return data, nil
}

// ReadRows reads map rows from r, one per line. Trailing blank lines are dropped.
func ReadRows(r io.Reader) ([]string, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

// LoadRows parses a text map file from fsys.
func LoadRows(fsys fs.FS, path string, opts ParseOptions) (*CollisionData, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	data, err := ParseRows(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return data, nil
}

// sortSpawns orders spawns left-to-right, then top-to-bottom, and renumbers them.
func sortSpawns(spawns []SpawnPoint) {
	sort.SliceStable(spawns, func(i, j int) bool {
		if spawns[i].X != spawns[j].X {
			return spawns[i].X < spawns[j].X
		}
		return spawns[i].Y > spawns[j].Y
	})
	for i := range spawns {
		spawns[i].Index = i
	}
}
