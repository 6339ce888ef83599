package gamemap

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

// TileKind is the builder's vocabulary for one cell of a level layout.
type TileKind uint8

const (
	KindWall TileKind = iota
	KindFloor
	KindStairsUp
	KindStairsDown
)

// Tileset holds the shared tile entities. Tiles are flyweights: every floor
// cell refers to the same Floor entity, which is how IsEmptyFloor recognises
// floor.
type Tileset struct {
	Null       *ecs.Entity
	Floor      *ecs.Entity
	Wall       *ecs.Entity
	StairsUp   *ecs.Entity
	StairsDown *ecs.Entity
}

// ForKind returns the tile entity for k.
func (ts Tileset) ForKind(k TileKind) *ecs.Entity {
	switch k {
	case KindFloor:
		return ts.Floor
	case KindStairsUp:
		return ts.StairsUp
	case KindStairsDown:
		return ts.StairsDown
	default:
		return ts.Wall
	}
}

// Grid turns per-depth layouts indexed [z][y][x] into the [z][x][y] tile
// grid the Map expects.
func (ts Tileset) Grid(levels [][][]TileKind) [][][]*ecs.Entity {
	out := make([][][]*ecs.Entity, len(levels))
	for z, rows := range levels {
		if len(rows) == 0 {
			continue
		}
		w := len(rows[0])
		out[z] = make([][]*ecs.Entity, w)
		for x := 0; x < w; x++ {
			out[z][x] = make([]*ecs.Entity, len(rows))
			for y := range rows {
				out[z][x][y] = ts.ForKind(rows[y][x])
			}
		}
	}
	return out
}

func tileOf(e *ecs.Entity) component.Tile {
	if t := ecs.Get[*component.Tile](e, component.CTile); t != nil {
		return *t
	}
	return component.Tile{}
}
