package factory

import (
	"glyphcrawl/assets"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/system"
)

// NewTileset creates the shared tile entities. Walkable tiles also get the
// sound system so stepping on them is heard.
func NewTileset(w *ecs.World, set *system.Set) gamemap.Tileset {
	mk := func(d assets.TileDef) *ecs.Entity {
		specs := []ecs.Spec{
			{System: set.Appearance, Params: []any{d.Ch, d.Fg, d.Bg}},
			{System: set.Tile, Params: []any{d.Diggable, d.Walkable, d.BlocksLight}},
			{System: set.Descriptible, Params: []any{d.Name, d.Description}},
		}
		if d.Walkable && d.Ch != "" {
			specs = append(specs, ecs.Spec{System: set.Sound})
		}
		return w.CreateEntity("", specs...)
	}
	return gamemap.Tileset{
		Null:       mk(assets.TileNull),
		Floor:      mk(assets.TileFloor),
		Wall:       mk(assets.TileWall),
		StairsUp:   mk(assets.TileStairsUp),
		StairsDown: mk(assets.TileStairsDown),
	}
}
