package game

import (
	"fmt"

	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/shared/leveldata"
)

// ParseOptions maps the level settings onto map parsing options. A configured
// legend is layered over the default one.
func ParseOptions(s config.Settings) (leveldata.ParseOptions, error) {
	opts := leveldata.ParseOptions{
		TileSize: s.Level.TileSize,
		OriginX:  s.Level.OriginX,
		OriginY:  s.Level.OriginY,
	}
	if len(s.Level.Legend) > 0 {
		overrides, err := leveldata.ParseLegend(s.Level.Legend)
		if err != nil {
			return leveldata.ParseOptions{}, fmt.Errorf("level legend: %w", err)
		}
		legend := leveldata.DefaultLegend()
		for r, m := range overrides {
			legend[r] = m
		}
		opts.Legend = legend
	}
	return opts, nil
}
