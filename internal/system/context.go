package system

import (
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/event"
	"glyphcrawl/internal/gamemap"
)

// Rand is the random source systems draw from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Creator builds a being from a named template.
type Creator interface {
	Create(name string) (*ecs.Entity, error)
}

// SoundPlayer plays a named sound effect at a map position.
type SoundPlayer interface {
	Play(name string, x, y, z int)
}

// MapOf returns the map stored in the world context, or nil.
func MapOf(w *ecs.World) *gamemap.Map {
	m, _ := w.GetVal(ecs.KeyMap).(*gamemap.Map)
	return m
}

// PlayerOf returns the player entity stored in the world context, or nil.
func PlayerOf(w *ecs.World) *ecs.Entity {
	p, _ := w.GetVal(ecs.KeyPlayer).(*ecs.Entity)
	return p
}

// GameOf returns the game-level dispatcher, or nil.
func GameOf(w *ecs.World) *event.Dispatcher {
	d, _ := w.GetVal(ecs.KeyGame).(*event.Dispatcher)
	return d
}

// BeingsOf returns the being template repository, or nil.
func BeingsOf(w *ecs.World) Creator {
	c, _ := w.GetVal(ecs.KeyBeings).(Creator)
	return c
}

// DamageOf returns the combat damage rule. Flat damage is the default.
func DamageOf(w *ecs.World) DamagePolicy {
	if d, ok := w.GetVal(ecs.KeyCombat).(DamagePolicy); ok {
		return d
	}
	return FlatDamage{}
}

func sendGame(w *ecs.World, name string, payload any) {
	if g := GameOf(w); g != nil {
		g.DispatchEvent(name, payload)
	}
}

func playSound(w *ecs.World, name string, x, y, z int) {
	if s, ok := w.GetVal(ecs.KeySound).(SoundPlayer); ok {
		s.Play(name, x, y, z)
	}
}
