package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

type base struct {
	id   ecs.SystemID
	name string
}

func (b base) ID() ecs.SystemID { return b.id }
func (b base) Name() string     { return b.name }

// marker is a system with an empty component.
type marker[T any] struct{ base }

func (marker[T]) CreateComponent(...any) ecs.Component {
	var v T
	return v
}

// PositionSystem params: x, y, z (default -1 each).
type PositionSystem struct{ base }

func (PositionSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Position{
		X: ecs.IntParam(p, 0, -1),
		Y: ecs.IntParam(p, 1, -1),
		Z: ecs.IntParam(p, 2, -1),
	}
}

// AppearanceSystem params: ch, fg, bg.
type AppearanceSystem struct{ base }

func (AppearanceSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Appearance{
		Ch: ecs.StringParam(p, 0, ""),
		Fg: ecs.StringParam(p, 1, "white"),
		Bg: ecs.StringParam(p, 2, "black"),
	}
}

// TileSystem params: diggable, walkable, blocksLight.
type TileSystem struct{ base }

func (TileSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Tile{
		Diggable:    ecs.BoolParam(p, 0, false),
		Walkable:    ecs.BoolParam(p, 1, true),
		BlocksLight: ecs.BoolParam(p, 2, false),
	}
}

// DescriptibleSystem params: name, description, article. The article may be
// a component.Article or a decoded map with "one" and "many" keys.
type DescriptibleSystem struct{ base }

func (DescriptibleSystem) CreateComponent(p ...any) ecs.Component {
	d := &component.Descriptible{
		Name:        ecs.StringParam(p, 0, ""),
		Description: ecs.StringParam(p, 1, ""),
		Article:     component.DefaultArticle,
	}
	if len(p) > 2 {
		switch a := p[2].(type) {
		case component.Article:
			d.Article = a
		case map[string]any:
			d.Article = component.Article{
				One:  ecs.StringParam([]any{a["one"]}, 0, component.DefaultArticle.One),
				Many: ecs.StringParam([]any{a["many"]}, 0, component.DefaultArticle.Many),
			}
		}
	}
	return d
}

// ItemSystem params: name.
type ItemSystem struct{ base }

func (ItemSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Item{Name: ecs.StringParam(p, 0, "")}
}

// AttackSystem params: attack value (default 1).
type AttackSystem struct{ base }

func (AttackSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Attack{Value: ecs.IntParam(p, 0, 1)}
}

// PerceptionSystem params: radius (default 5).
type PerceptionSystem struct{ base }

func (PerceptionSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Perception{Radius: ecs.IntParam(p, 0, 5)}
}

// InventorySystem params: size (default 10).
type InventorySystem struct{ base }

func (InventorySystem) CreateComponent(p ...any) ecs.Component {
	size := ecs.IntParam(p, 0, 10)
	return &component.Inventory{Size: size, Items: make([]*ecs.Entity, size)}
}
