package leveldata_test

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/automoto/stompgrid/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitOptions() leveldata.ParseOptions {
	return leveldata.ParseOptions{TileSize: 1}
}

func TestParseRowsCoordinates(t *testing.T) {
	data, err := leveldata.ParseRows([]string{"G?", ".B"}, leveldata.ParseOptions{TileSize: 2, OriginX: -5, OriginY: 8})
	require.NoError(t, err)

	require.Len(t, data.Tiles, 3)
	assert.Equal(t, leveldata.TileSpec{Col: 0, Row: 0, Kind: leveldata.Solid, Glyph: 'G'}, data.Tiles[0])
	assert.Equal(t, leveldata.TileSpec{Col: 1, Row: 0, Kind: leveldata.Item, Glyph: '?'}, data.Tiles[1])
	assert.Equal(t, leveldata.TileSpec{Col: 1, Row: 1, Kind: leveldata.Solid, Glyph: 'B'}, data.Tiles[2])

	x, y := data.TileCenter(1, 1)
	assert.Equal(t, -3.0, x)
	assert.Equal(t, 6.0, y)
	assert.Equal(t, 2, data.Cols)
	assert.Equal(t, 2, data.Rows)
}

func TestParseRowsSpawnsAreNotTiles(t *testing.T) {
	data, err := leveldata.ParseRows([]string{"E.P", "GEP"}, unitOptions())
	require.NoError(t, err)

	require.Len(t, data.Tiles, 1)
	assert.Equal(t, 'G', data.Tiles[0].Glyph)

	require.Len(t, data.EnemySpawns, 2)
	assert.Equal(t, leveldata.SpawnPoint{X: 0, Y: 0, Index: 0}, data.EnemySpawns[0])
	assert.Equal(t, leveldata.SpawnPoint{X: 1, Y: -1, Index: 1}, data.EnemySpawns[1])

	// First player marker wins.
	require.NotNil(t, data.PlayerSpawn)
	assert.Equal(t, 2.0, data.PlayerSpawn.X)
	assert.Equal(t, 0.0, data.PlayerSpawn.Y)
}

func TestParseRowsOrdersEnemySpawnsLeftToRight(t *testing.T) {
	data, err := leveldata.ParseRows([]string{"...E", "E...", "E..."}, unitOptions())
	require.NoError(t, err)

	assert.Equal(t, []leveldata.SpawnPoint{
		{X: 0, Y: -1, Index: 0},
		{X: 0, Y: -2, Index: 1},
		{X: 3, Y: 0, Index: 2},
	}, data.EnemySpawns)
}

func TestParseRowsLenient(t *testing.T) {
	data, err := leveldata.ParseRows([]string{"x#G", "", "Z"}, unitOptions())
	require.NoError(t, err)

	require.Len(t, data.Tiles, 1)
	assert.Equal(t, 2, data.Tiles[0].Col)
	assert.Equal(t, 3, data.Cols)
	assert.Equal(t, 3, data.Rows)
	assert.Empty(t, data.EnemySpawns)
	assert.Nil(t, data.PlayerSpawn)
}

func TestParseRowsInvalidTileSize(t *testing.T) {
	for _, size := range []float64{0, -1} {
		_, err := leveldata.ParseRows([]string{"G"}, leveldata.ParseOptions{TileSize: size})
		assert.ErrorIs(t, err, leveldata.ErrInvalidTileSize)
	}
}

func TestParseLegend(t *testing.T) {
	legend, err := leveldata.ParseLegend(map[string]string{"#": "solid", "*": "Item", "m": "enemy"})
	require.NoError(t, err)

	data, err := leveldata.ParseRows([]string{"#*mG"}, leveldata.ParseOptions{TileSize: 1, Legend: legend})
	require.NoError(t, err)
	require.Len(t, data.Tiles, 2)
	assert.Equal(t, leveldata.Solid, data.Tiles[0].Kind)
	assert.Equal(t, leveldata.Item, data.Tiles[1].Kind)
	assert.Len(t, data.EnemySpawns, 1)

	_, err = leveldata.ParseLegend(map[string]string{"ab": "solid"})
	assert.Error(t, err)
	_, err = leveldata.ParseLegend(map[string]string{"a": "lava"})
	assert.Error(t, err)
}

func TestReadRowsTrimsTrailingBlankLines(t *testing.T) {
	rows, err := leveldata.ReadRows(strings.NewReader("..G\r\n\nGGG\n\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"..G", "", "GGG"}, rows)
}

func TestLoadRows(t *testing.T) {
	data, err := leveldata.LoadRows(os.DirFS("testdata"), "hill.txt", unitOptions())
	require.NoError(t, err)

	assert.Len(t, data.Tiles, 8)
	assert.Len(t, data.EnemySpawns, 1)
	require.NotNil(t, data.PlayerSpawn)
	assert.Equal(t, 3.0, data.PlayerSpawn.X)
	assert.Equal(t, -1.0, data.PlayerSpawn.Y)

	_, err = leveldata.LoadRows(os.DirFS("testdata"), "missing.txt", unitOptions())
	assert.Error(t, err)
}

func TestLoadCollisionData(t *testing.T) {
	data, err := leveldata.LoadCollisionData(os.DirFS("testdata"), "arena.tmx", unitOptions())
	require.NoError(t, err)

	assert.Equal(t, 6, data.Cols)
	assert.Equal(t, 3, data.Rows)
	require.Len(t, data.Tiles, 8)

	// Row-major across both layers.
	assert.Equal(t, leveldata.TileSpec{Col: 2, Row: 0, Kind: leveldata.Item, Glyph: '?'}, data.Tiles[0])
	assert.Equal(t, leveldata.TileSpec{Col: 5, Row: 1, Kind: leveldata.Solid, Glyph: 'B'}, data.Tiles[1])
	for i, tile := range data.Tiles[2:] {
		assert.Equal(t, leveldata.TileSpec{Col: i, Row: 2, Kind: leveldata.Solid, Glyph: 'G'}, tile)
	}

	require.Len(t, data.EnemySpawns, 2)
	assert.Equal(t, leveldata.SpawnPoint{X: 0, Y: -1, Index: 0}, data.EnemySpawns[0])
	assert.Equal(t, leveldata.SpawnPoint{X: 2, Y: -1, Index: 1}, data.EnemySpawns[1])

	require.NotNil(t, data.PlayerSpawn)
	assert.Equal(t, 4.0, data.PlayerSpawn.X)
	assert.Equal(t, 0.0, data.PlayerSpawn.Y)
}

func TestLoadCollisionDataRejectsInfiniteMap(t *testing.T) {
	fsys := fstest.MapFS{
		"endless.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="30" height="20" tilewidth="16" tileheight="16" infinite="1" nextlayerid="2" nextobjectid="1">
 <objectgroup id="1" name="Enemies"/>
</map>
`)},
	}

	_, err := leveldata.LoadCollisionData(fsys, "endless.tmx", unitOptions())
	assert.ErrorIs(t, err, leveldata.ErrInfiniteMap)
	assert.ErrorContains(t, err, "endless.tmx")
}

func TestLoadAllLevels(t *testing.T) {
	levels, names, err := leveldata.LoadAllLevels(os.DirFS("."), "testdata", unitOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"arena", "hill"}, names)
	assert.Len(t, levels, 2)

	_, _, err = leveldata.LoadAllLevels(fstest.MapFS{}, "levels", unitOptions())
	assert.ErrorIs(t, err, leveldata.ErrNoLevels)
}

func TestLoadAllLevelsRejectsDuplicateStems(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/a.txt": {Data: []byte("G\n")},
		"levels/a.tmx": {Data: []byte("<map/>")},
	}
	_, _, err := leveldata.LoadAllLevels(fsys, "levels", unitOptions())
	assert.Error(t, err)
}
