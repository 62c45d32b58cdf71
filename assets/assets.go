// Package assets bundles the stock levels and watches level directories on
// disk for edits.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/automoto/stompgrid/shared/leveldata"
)

//go:embed all:levels
var levelFS embed.FS

const (
	levelsDir = "levels"

	// DefaultLevel is the bundled level used when none is named.
	DefaultLevel = "world1"
)

// LevelsFS exposes the bundled level files rooted at their directory.
func LevelsFS() fs.FS {
	sub, err := fs.Sub(levelFS, levelsDir)
	if err != nil {
		panic(fmt.Sprintf("bundled levels: %v", err))
	}
	return sub
}

// LoadLevels parses every bundled level, keyed by file stem.
func LoadLevels(opts leveldata.ParseOptions) (map[string]*leveldata.CollisionData, []string, error) {
	return leveldata.LoadAllLevels(levelFS, levelsDir, opts)
}

// Open resolves a level reference. An empty ref is DefaultLevel; a bare name
// without extension or directory names a bundled level; anything else is read
// from disk.
func Open(ref string, opts leveldata.ParseOptions) (*leveldata.CollisionData, error) {
	if ref == "" {
		ref = DefaultLevel
	}
	if isBundledName(ref) {
		return openBundled(ref, opts)
	}
	dir, file := filepath.Split(ref)
	if dir == "" {
		dir = "."
	}
	data, err := leveldata.LoadLevel(os.DirFS(dir), file, opts)
	if err != nil {
		return nil, fmt.Errorf("open level %s: %w", ref, err)
	}
	return data, nil
}

func isBundledName(ref string) bool {
	return filepath.Ext(ref) == "" && !strings.ContainsAny(ref, `/\`)
}

func openBundled(name string, opts leveldata.ParseOptions) (*leveldata.CollisionData, error) {
	for _, ext := range []string{".txt", ".tmx"} {
		p := levelsDir + "/" + name + ext
		if _, err := fs.Stat(levelFS, p); err != nil {
			continue
		}
		data, err := leveldata.LoadLevel(levelFS, p, opts)
		if err != nil {
			return nil, fmt.Errorf("open bundled level %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("bundled level %q: %w", name, fs.ErrNotExist)
}
