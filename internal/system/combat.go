package system

import (
	"fmt"
	"math"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

// DamagePolicy turns attack and defense values into damage.
type DamagePolicy interface {
	Damage(attack, defense int) int
}

// FlatDamage deals max(0, attack-defense).
type FlatDamage struct{}

func (FlatDamage) Damage(attack, defense int) int {
	return max(0, attack-defense)
}

// RandomDamage deals 1 + floor(r * max(0, attack-defense)) for r in [0, 1).
type RandomDamage struct {
	Rand interface{ Float64() float64 }
}

func (d RandomDamage) Damage(attack, defense int) int {
	return 1 + int(math.Floor(d.Rand.Float64()*float64(max(0, attack-defense))))
}

// ParseDamagePolicy maps a configuration name to a policy.
func ParseDamagePolicy(name string, rng Rand) (DamagePolicy, error) {
	switch name {
	case "", "flat":
		return FlatDamage{}, nil
	case "random":
		return RandomDamage{Rand: rng}, nil
	}
	return nil, fmt.Errorf("unknown damage policy %q", name)
}

// TryAttack applies e's attack to target's hit points and announces it on
// both. Death is left to the destructible system. It returns the damage.
func TryAttack(w *ecs.World, e, target *ecs.Entity) int {
	atk := ecs.Get[*component.Attack](e, component.CAttack)
	d := ecs.Get[*component.Destructible](target, component.CDestructible)
	if atk == nil || d == nil {
		return 0
	}
	dmg := DamageOf(w).Damage(atk.Value, d.Defense)
	ecs.Modify(target, component.CDestructible, func(d *component.Destructible) {
		d.HP -= dmg
	})
	ev := AttackEvent{Source: e, Target: target, Damage: dmg}
	e.DispatchEvent(EventAttack, ev)
	target.DispatchEvent(EventDamaged, ev)
	return dmg
}
