package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lafriks/go-tiled"
)

// TMX layer and object group names read by LoadCollisionData.
const (
	LayerSolid        = "solid"
	LayerItems        = "items"
	GroupEnemies      = "Enemies"
	GroupPlayerSpawn  = "PlayerSpawn"
	propertyGlyph     = "glyph"
	defaultSolidGlyph = 'G'
	defaultItemGlyph  = '?'
)

// LoadCollisionData parses a TMX file into collision data. Tiles on the
// "solid" layer become Solid tiles, tiles on the "items" layer become Item
// tiles; objects in the "Enemies" and "PlayerSpawn" groups become spawns.
// Tiled pixel coordinates are mapped onto the same world grid as text maps,
// using opts for tile size and origin. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS.
func LoadCollisionData(fsys fs.FS, tmxPath string, opts ParseOptions) (*CollisionData, error) {
	if !(opts.TileSize > 0) {
		return nil, fmt.Errorf("load TMX %s: %w (got %v)", tmxPath, ErrInvalidTileSize, opts.TileSize)
	}
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.Infinite {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, ErrInfiniteMap)
	}

	data := &CollisionData{
		Cols:     levelMap.Width,
		Rows:     levelMap.Height,
		TileSize: opts.TileSize,
		OriginX:  opts.OriginX,
		OriginY:  opts.OriginY,
	}

	for _, layer := range levelMap.Layers {
		var kind TileKind
		switch layer.Name {
		case LayerSolid:
			kind = Solid
		case LayerItems:
			kind = Item
		default:
			continue
		}
		if len(layer.Tiles) < levelMap.Width*levelMap.Height {
			return nil, fmt.Errorf("load TMX %s: layer %q has %d tiles, want %d",
				tmxPath, layer.Name, len(layer.Tiles), levelMap.Width*levelMap.Height)
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				data.Tiles = append(data.Tiles, TileSpec{
					Col:   x,
					Row:   y,
					Kind:  kind,
					Glyph: tileGlyph(tile, kind),
				})
			}
		}
	}

	// Grid order is row-major regardless of how layers were stacked.
	sort.SliceStable(data.Tiles, func(i, j int) bool {
		a, b := data.Tiles[i], data.Tiles[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	toWorld := func(px, py float64) (float64, float64) {
		return (px/tileW-0.5)*opts.TileSize + opts.OriginX, opts.OriginY - (py/tileH-0.5)*opts.TileSize
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupEnemies:
			for _, o := range og.Objects {
				x, y := toWorld(o.X, o.Y)
				data.EnemySpawns = append(data.EnemySpawns, SpawnPoint{X: x, Y: y})
			}
		case GroupPlayerSpawn:
			if data.PlayerSpawn != nil || len(og.Objects) == 0 {
				continue
			}
			o := og.Objects[0]
			x, y := toWorld(o.X, o.Y)
			data.PlayerSpawn = &SpawnPoint{X: x, Y: y, Index: o.Properties.GetInt("spawnIndex")}
		}
	}

	// Sort spawns left-to-right for consistent enemy ids
	sortSpawns(data.EnemySpawns)

	return data, nil
}

func tileGlyph(tile *tiled.LayerTile, kind TileKind) rune {
	if tile.Tileset != nil {
		if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
			if g := tilesetTile.Properties.GetString(propertyGlyph); g != "" {
				r, _ := utf8.DecodeRuneInString(g)
				return r
			}
		}
	}
	if kind == Item {
		return defaultItemGlyph
	}
	return defaultSolidGlyph
}

// LoadLevel loads a single level, choosing the parser by extension
// (".tmx" for Tiled maps, anything else as a text map).
func LoadLevel(fsys fs.FS, levelPath string, opts ParseOptions) (*CollisionData, error) {
	if strings.EqualFold(path.Ext(levelPath), ".tmx") {
		return LoadCollisionData(fsys, levelPath, opts)
	}
	return LoadRows(fsys, levelPath, opts)
}

// LoadAllLevels discovers all .txt and .tmx files in levelsDir within fsys,
// loads collision data for each, and returns a map keyed by stem name plus a
// sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string, opts ParseOptions) (map[string]*CollisionData, []string, error) {
	var matches []string
	for _, pattern := range []string{levelsDir + "/*.txt", levelsDir + "/*.tmx"} {
		m, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, m...)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", ErrNoLevels, levelsDir)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))

	for _, p := range matches {
		stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if _, dup := levels[stem]; dup {
			return nil, nil, fmt.Errorf("duplicate level name %q (%s)", stem, p)
		}
		data, err := LoadLevel(fsys, p, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
