// Package system holds every system of a play session together with the
// movement, combat, perception and inventory rules they share.
package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

// Set is one instance of every system, bound to a world.
type Set struct {
	Player        *PlayerSystem
	Position      PositionSystem
	Appearance    AppearanceSystem
	Tile          TileSystem
	Descriptible  DescriptibleSystem
	Item          ItemSystem
	Destructible  DestructibleSystem
	Attack        AttackSystem
	Perception    PerceptionSystem
	Sight         SightSystem
	Movement      MovementSystem
	Fungus        FungusSystem
	Inventory     InventorySystem
	MessageLogger *MessageLoggerSystem
	Bat           *BatSystem
	BigSlime      *BigSlimeSystem
	SmallSlime    *SmallSlimeSystem
	Sound         *SoundSystem

	all    []ecs.System
	byName map[string]ecs.System
}

// NewSet builds the systems for w and registers them in SystemID order, so
// the player system always ticks first.
func NewSet(w *ecs.World, rng Rand) *Set {
	s := &Set{
		Player:        &PlayerSystem{marker: marker[component.Player]{base{component.CPlayer, "player"}}, w: w},
		Position:      PositionSystem{base{component.CPosition, "position"}},
		Appearance:    AppearanceSystem{base{component.CAppearance, "appearance"}},
		Tile:          TileSystem{base{component.CTile, "tile"}},
		Descriptible:  DescriptibleSystem{base{component.CDescriptible, "descriptible"}},
		Item:          ItemSystem{base{component.CItem, "item"}},
		Destructible:  DestructibleSystem{base{component.CDestructible, "destructible"}},
		Attack:        AttackSystem{base{component.CAttack, "attack"}},
		Perception:    PerceptionSystem{base{component.CPerception, "perception"}},
		Sight:         SightSystem{base{component.CSight, "sight"}},
		Movement:      MovementSystem{base: base{component.CMovement, "movement"}, rng: rng},
		Fungus:        FungusSystem{base: base{component.CFungus, "fungus"}, w: w, rng: rng},
		Inventory:     InventorySystem{base{component.CInventory, "inventory"}},
		MessageLogger: &MessageLoggerSystem{marker: marker[component.MessageLogger]{base{component.CMessageLogger, "messageLogger"}}, w: w},
		Bat:           &BatSystem{marker: marker[component.Bat]{base{component.CBat, "bat"}}, w: w, rng: rng},
		BigSlime:      &BigSlimeSystem{marker: marker[component.BigSlime]{base{component.CBigSlime, "bigSlime"}}, w: w, rng: rng},
		SmallSlime:    &SmallSlimeSystem{marker: marker[component.SmallSlime]{base{component.CSmallSlime, "smallSlime"}}, w: w},
		Sound:         &SoundSystem{marker: marker[component.Sound]{base{component.CSound, "sound"}}, w: w},
	}
	s.all = []ecs.System{
		s.Player, s.Position, s.Appearance, s.Tile, s.Descriptible, s.Item,
		s.Destructible, s.Attack, s.Perception, s.Sight, s.Movement, s.Fungus,
		s.Inventory, s.MessageLogger, s.Bat, s.BigSlime, s.SmallSlime, s.Sound,
	}
	s.byName = make(map[string]ecs.System, len(s.all))
	for _, sys := range s.all {
		s.byName[sys.Name()] = sys
		w.RegisterSystem(sys)
	}
	return s
}

// ByName looks a system up by the name used in data templates.
func (s *Set) ByName(name string) (ecs.System, bool) {
	sys, ok := s.byName[name]
	return sys, ok
}

// All returns the systems in registration order.
func (s *Set) All() []ecs.System {
	out := make([]ecs.System, len(s.all))
	copy(out, s.all)
	return out
}
