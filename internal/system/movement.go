package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveNone   MoveResult = iota // nothing happened
	MoveOK                       // position updated
	MoveDig                      // wall dug, mover stayed put
	MoveAttack                   // bumped a destructible target
	MoveTouch                    // bumped a target that cannot be attacked
	MovePeace                    // two non-players bumped, nothing happened
)

func (r MoveResult) String() string {
	switch r {
	case MoveOK:
		return "ok"
	case MoveDig:
		return "dig"
	case MoveAttack:
		return "attack"
	case MoveTouch:
		return "touch"
	case MovePeace:
		return "peace"
	default:
		return "none"
	}
}

// TryMove resolves e's attempt to enter (x, y, z). A being there is touched,
// a player digs diggable tiles, and walkable tiles are entered. Anything else
// is a silent no-op. An error means the map index refused the move, in which
// case e's position is left unchanged.
func TryMove(w *ecs.World, e *ecs.Entity, x, y, z int) (MoveResult, error) {
	m := MapOf(w)
	if m == nil {
		return MoveNone, nil
	}
	cell := m.GetAt(x, y, z)
	if cell.Being != nil {
		if cell.Being == e {
			return MoveNone, nil
		}
		return TryTouch(w, e, cell.Being), nil
	}
	if m.IsNullTile(cell.Tile) {
		return MoveNone, nil
	}
	tile := ecs.Get[*component.Tile](cell.Tile, component.CTile)
	if tile == nil {
		return MoveNone, nil
	}
	if e.HasSystem(component.CPlayer) && tile.Diggable {
		Dig(w, e, x, y, z)
		return MoveDig, nil
	}
	if !tile.Walkable {
		return MoveNone, nil
	}

	pos := ecs.Get[*component.Position](e, component.CPosition)
	if pos == nil {
		return MoveNone, nil
	}
	old := *pos
	cell.Tile.DispatchEvent(EventTrampled, TrampledEvent{By: e, X: x, Y: y, Z: z})
	e.DispatchEvent(EventMoveTo, MoveToEvent{Tile: cell.Tile, Items: cell.Items, X: x, Y: y, Z: z})
	e.UpdateComponent(component.CPosition, &component.Position{X: x, Y: y, Z: z})
	if err := m.UpdateBeingPosition(e, &old); err != nil {
		e.UpdateComponent(component.CPosition, &old)
		return MoveNone, err
	}
	return MoveOK, nil
}

// TryTouch resolves e bumping into target. Two non-players never interact.
func TryTouch(w *ecs.World, e, target *ecs.Entity) MoveResult {
	if !e.HasSystem(component.CPlayer) && !target.HasSystem(component.CPlayer) {
		return MovePeace
	}
	if e.HasSystem(component.CAttack) && target.HasSystem(component.CDestructible) {
		TryAttack(w, e, target)
		return MoveAttack
	}
	target.DispatchEvent(EventTouch, TouchEvent{By: e})
	return MoveTouch
}

// Dig turns the tile at (x, y, z) into floor on behalf of e. It reports
// whether the tile changed; a dig event is dispatched on e when it did.
func Dig(w *ecs.World, e *ecs.Entity, x, y, z int) bool {
	m := MapOf(w)
	if m == nil || !m.Dig(x, y, z) {
		return false
	}
	e.DispatchEvent(EventDig, DigEvent{X: x, Y: y, Z: z})
	return true
}

// directions are the eight neighbours plus standing still.
var directions = [9][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	{0, 0},
}
