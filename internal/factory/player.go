package factory

import (
	"glyphcrawl/assets"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/system"
)

// PlayerID is the fixed entity id of the player.
const PlayerID = "player"

// PlayerAssemblage lists the player's systems. sight overrides the default
// sight radius when positive.
func PlayerAssemblage(set *system.Set, sight int) ecs.Assemblage {
	if sight <= 0 {
		sight = assets.PlayerSight
	}
	return ecs.Assemblage{
		{System: set.Player},
		{System: set.Descriptible, Params: []any{assets.PlayerName, assets.PlayerDescription}},
		{System: set.Appearance, Params: []any{assets.PlayerGlyph, "white", "black"}},
		{System: set.Sight, Params: []any{sight}},
		{System: set.Position},
		{System: set.Destructible, Params: []any{assets.PlayerHP, assets.PlayerHP}},
		{System: set.Attack, Params: []any{assets.PlayerAttack}},
		{System: set.Perception},
		{System: set.MessageLogger},
		{System: set.Inventory, Params: []any{assets.PlayerInventory}},
		{System: set.Sound},
	}
}

// NewPlayer creates the player entity.
func NewPlayer(w *ecs.World, set *system.Set, sight int) *ecs.Entity {
	return PlayerAssemblage(set, sight).CreateInstance(w, PlayerID)
}
