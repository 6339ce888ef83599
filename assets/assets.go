// Package assets holds the built-in game data: being and item templates,
// tile definitions and player defaults.
package assets

import _ "embed"

// Templates is the built-in template file.
//
//go:embed templates.yaml
var Templates []byte

// TileDef describes one kind of map tile.
type TileDef struct {
	Ch          string
	Fg, Bg      string
	Diggable    bool
	Walkable    bool
	BlocksLight bool
	Name        string
	Description string
}

// Tile definitions.
var (
	TileNull  = TileDef{Walkable: true}
	TileFloor = TileDef{Ch: ".", Fg: "white", Bg: "black", Walkable: true, Name: "floor"}
	TileWall  = TileDef{
		Ch: "#", Fg: "goldenrod", Bg: "black",
		Diggable: true, BlocksLight: true,
		Name: "wall", Description: "A rough earthen wall, pitted and uneven.",
	}
	TileStairsUp   = TileDef{Ch: "<", Fg: "white", Bg: "black", Walkable: true, Name: "stairs up", Description: "A staircase leading up."}
	TileStairsDown = TileDef{Ch: ">", Fg: "white", Bg: "black", Walkable: true, Name: "stairs down", Description: "A staircase leading down."}
)

// Player defaults.
const (
	PlayerGlyph       = "@"
	PlayerName        = "you"
	PlayerDescription = "That's you, friend!"
	PlayerHP          = 40
	PlayerAttack      = 10
	PlayerSight       = 15
	PlayerInventory   = 10
)
