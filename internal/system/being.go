package system

import (
	"fmt"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/event"
	"glyphcrawl/internal/fov"
)

// DestructibleSystem params: hp, maxHp, defense (default 2, 10, 0). Its
// update removes every entity whose hp reached zero, firing the death event
// first.
type DestructibleSystem struct{ base }

func (DestructibleSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Destructible{
		HP:      ecs.IntParam(p, 0, 2),
		MaxHP:   ecs.IntParam(p, 1, 10),
		Defense: ecs.IntParam(p, 2, 0),
	}
}

func (s DestructibleSystem) Update(entities []*ecs.Entity, w *ecs.World) error {
	m := MapOf(w)
	if m == nil {
		return nil
	}
	for _, e := range entities {
		d := ecs.Get[*component.Destructible](e, s.id)
		if d == nil || d.HP > 0 {
			continue
		}
		e.DispatchEvent(EventDeath, DeathEvent{Entity: e})
		m.RemoveBeing(e)
	}
	return nil
}

// PlayerSystem reports the end of the game when its entity dies.
type PlayerSystem struct {
	marker[component.Player]
	w         *ecs.World
	listeners map[*ecs.Entity]playerListeners
}

type playerListeners struct {
	death, messages event.ListenerID
}

func (s *PlayerSystem) Update(entities []*ecs.Entity, w *ecs.World) error {
	for _, e := range entities {
		if d := ecs.Get[*component.Destructible](e, component.CDestructible); d != nil && d.HP <= 0 {
			sendGame(w, GameLose, e)
		}
	}
	return nil
}

func (s *PlayerSystem) MountEntity(e *ecs.Entity, _ ecs.Component) {
	if s.listeners == nil {
		s.listeners = make(map[*ecs.Entity]playerListeners)
	}
	s.listeners[e] = playerListeners{
		death: event.On(&e.Dispatcher, EventDeath, func(DeathEvent) {
			sendGame(s.w, GameLose, e)
		}),
		messages: event.On(&e.Dispatcher, EventMessages, func(ev MessagesEvent) {
			for _, m := range ev.Messages {
				sendGame(s.w, GameSendMessage, m.Text)
			}
		}),
	}
}

// UnmountEntity removes only the listeners MountEntity attached.
func (s *PlayerSystem) UnmountEntity(e *ecs.Entity) {
	l, ok := s.listeners[e]
	if !ok {
		return
	}
	e.RemoveEventListener(EventDeath, l.death)
	e.RemoveEventListener(EventMessages, l.messages)
	delete(s.listeners, e)
}

// SightSystem params: radius (default 10). Visibility is recomputed only
// when the entity moved since the last computation.
type SightSystem struct{ base }

func (SightSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Sight{
		Radius:       ecs.IntParam(p, 0, 10),
		LastPosition: component.Position{X: -1, Y: -1, Z: -1},
	}
}

func (s SightSystem) Update(entities []*ecs.Entity, w *ecs.World) error {
	m := MapOf(w)
	if m == nil {
		return nil
	}
	for _, e := range entities {
		sight := ecs.Get[*component.Sight](e, s.id)
		pos := ecs.Get[*component.Position](e, component.CPosition)
		if sight == nil || pos == nil {
			continue
		}
		if sight.Visible != nil && sight.LastPosition == *pos {
			continue
		}
		z := pos.Z
		lm := fov.Lights(pos.X, pos.Y, sight.Radius, func(x, y int) bool {
			return m.BlocksLight(x, y, z)
		})
		e.UpdateComponent(s.id, &component.Sight{
			Radius:       sight.Radius,
			Visible:      lm,
			LastPosition: *pos,
			Direction:    sight.Direction,
		})
		if e.HasSystem(component.CPlayer) {
			lm.Each(func(c fov.Cell, _ float64) {
				m.SetExplored(c.X, c.Y, z, true)
			})
		}
	}
	return nil
}

// MovementSystem params: kind (default "random").
type MovementSystem struct {
	base
	rng Rand
}

func (MovementSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Movement{Kind: ecs.StringParam(p, 0, component.MoveRandom)}
}

func (s MovementSystem) Update(entities []*ecs.Entity, w *ecs.World) error {
	for _, e := range entities {
		mv := ecs.Get[*component.Movement](e, s.id)
		pos := ecs.Get[*component.Position](e, component.CPosition)
		if mv == nil || pos == nil {
			continue
		}
		switch mv.Kind {
		case component.MoveRandom:
			d := directions[s.rng.Intn(len(directions))]
			if _, err := TryMove(w, e, pos.X+d[0], pos.Y+d[1], pos.Z); err != nil {
				return err
			}
		}
	}
	return nil
}

// FungusGrowthChance is the per-tick chance that a fungus tries to spread.
const FungusGrowthChance = 0.02

// FungusSystem params: growths remaining (default 5).
type FungusSystem struct {
	base
	w   *ecs.World
	rng Rand
}

func (FungusSystem) CreateComponent(p ...any) ecs.Component {
	return &component.Fungus{GrowthsRemaining: ecs.IntParam(p, 0, 5)}
}

func (s FungusSystem) MountEntity(e *ecs.Entity, _ ecs.Component) {
	event.On(&e.Dispatcher, EventDeath, func(DeathEvent) {
		soundAt(s.w, e, "grass-dig")
	})
}

func (s FungusSystem) Update(entities []*ecs.Entity, w *ecs.World) error {
	m := MapOf(w)
	beings := BeingsOf(w)
	if m == nil || beings == nil {
		return nil
	}
	for _, e := range entities {
		f := ecs.Get[*component.Fungus](e, s.id)
		pos := ecs.Get[*component.Position](e, component.CPosition)
		if f == nil || pos == nil || f.GrowthsRemaining <= 0 {
			continue
		}
		if s.rng.Float64() > FungusGrowthChance {
			continue
		}
		dx := s.rng.Intn(3) - 1
		dy := s.rng.Intn(3) - 1
		if dx == 0 && dy == 0 {
			continue
		}
		x, y, z := pos.X+dx, pos.Y+dy, pos.Z
		if !m.IsEmptyFloor(x, y, z) {
			continue
		}
		child, err := beings.Create("fungus")
		if err != nil {
			return err
		}
		if child == nil {
			continue
		}
		child.UpdateComponent(component.CPosition, &component.Position{X: x, Y: y, Z: z})
		playSound(w, "grass-dig", x, y, z)
		if err := m.AddBeing(child); err != nil {
			return err
		}
		f.GrowthsRemaining--
		BroadcastMessage(w, child, EventMessage, "The fungus is spreading!")
	}
	return nil
}

// MessageLoggerSystem turns combat and broadcast events on its entity into
// game log lines.
type MessageLoggerSystem struct {
	marker[component.MessageLogger]
	w *ecs.World
}

func (s *MessageLoggerSystem) MountEntity(e *ecs.Entity, _ ecs.Component) {
	event.On(&e.Dispatcher, EventAttack, func(ev AttackEvent) {
		sendGame(s.w, GameSendMessage, fmt.Sprintf("You strike the %s for %d damage.", nameOf(ev.Target), ev.Damage))
	})
	event.On(&e.Dispatcher, EventDamaged, func(ev AttackEvent) {
		sendGame(s.w, GameSendMessage, fmt.Sprintf("The %s hits you for %d damage.", nameOf(ev.Source), ev.Damage))
	})
	event.On(&e.Dispatcher, EventMessage, func(ev MessageEvent) {
		for _, msg := range ev.Messages {
			sendGame(s.w, GameSendMessage, msg)
		}
	})
}

// BatSystem makes bats squeak now and then.
type BatSystem struct {
	marker[component.Bat]
	w   *ecs.World
	rng Rand
}

func (s *BatSystem) MountEntity(e *ecs.Entity, _ ecs.Component) {
	event.On(&e.Dispatcher, EventDamaged, func(AttackEvent) { soundAt(s.w, e, "bat-hurt") })
	event.On(&e.Dispatcher, EventDeath, func(DeathEvent) { soundAt(s.w, e, "bat-death") })
}

func (s *BatSystem) Update(entities []*ecs.Entity, w *ecs.World) error {
	for _, e := range entities {
		if s.rng.Float64()*100 > 10 {
			continue
		}
		soundAt(w, e, "bat-idle")
	}
	return nil
}

// BigSlimeSystem splits a dying big slime into up to three small ones.
type BigSlimeSystem struct {
	marker[component.BigSlime]
	w   *ecs.World
	rng Rand
}

func (s *BigSlimeSystem) MountEntity(e *ecs.Entity, _ ecs.Component) {
	event.On(&e.Dispatcher, EventDamaged, func(AttackEvent) { soundAt(s.w, e, "big-slime") })
	event.On(&e.Dispatcher, EventMoveTo, func(ev MoveToEvent) { playSound(s.w, "big-slime", ev.X, ev.Y, ev.Z) })
	event.On(&e.Dispatcher, EventDeath, func(DeathEvent) {
		soundAt(s.w, e, "slime")
		s.split(e)
	})
}

func (s *BigSlimeSystem) split(e *ecs.Entity) {
	m := MapOf(s.w)
	beings := BeingsOf(s.w)
	pos := ecs.Get[*component.Position](e, component.CPosition)
	if m == nil || beings == nil || pos == nil {
		return
	}
	for _, i := range pick(s.rng, len(directions), 3) {
		x, y := pos.X+directions[i][0], pos.Y+directions[i][1]
		if !m.IsEmptyFloor(x, y, pos.Z) {
			continue
		}
		small, err := beings.Create("SmallSlime")
		if err != nil || small == nil {
			s.w.Logger().Sugar().Warnw("slime split failed", "error", err)
			return
		}
		small.UpdateComponent(component.CPosition, &component.Position{X: x, Y: y, Z: pos.Z})
		if err := m.AddBeing(small); err != nil {
			s.w.DestroyEntity(small)
		}
	}
}

// SmallSlimeSystem only makes noise.
type SmallSlimeSystem struct {
	marker[component.SmallSlime]
	w *ecs.World
}

func (s *SmallSlimeSystem) MountEntity(e *ecs.Entity, _ ecs.Component) {
	event.On(&e.Dispatcher, EventDamaged, func(AttackEvent) { soundAt(s.w, e, "small-slime") })
	event.On(&e.Dispatcher, EventDeath, func(DeathEvent) { soundAt(s.w, e, "slime") })
	event.On(&e.Dispatcher, EventMoveTo, func(ev MoveToEvent) { playSound(s.w, "small-slime", ev.X, ev.Y, ev.Z) })
}

// SoundSystem plays footsteps and dig sounds for beings, and trample sounds
// for tiles.
type SoundSystem struct {
	marker[component.Sound]
	w *ecs.World
}

func (s *SoundSystem) MountEntity(e *ecs.Entity, _ ecs.Component) {
	event.On(&e.Dispatcher, EventMoveTo, func(ev MoveToEvent) {
		playSound(s.w, "footstep", ev.X, ev.Y, ev.Z)
	})
	event.On(&e.Dispatcher, EventDig, func(ev DigEvent) {
		playSound(s.w, "stone-dig", ev.X, ev.Y, ev.Z)
	})
	event.On(&e.Dispatcher, EventTrampled, func(ev TrampledEvent) {
		playSound(s.w, "trample:"+nameOf(e), ev.X, ev.Y, ev.Z)
	})
}

func soundAt(w *ecs.World, e *ecs.Entity, name string) {
	if p := ecs.Get[*component.Position](e, component.CPosition); p != nil {
		playSound(w, name, p.X, p.Y, p.Z)
	}
}

func nameOf(e *ecs.Entity) string {
	if d := ecs.Get[*component.Descriptible](e, component.CDescriptible); d != nil && d.Name != "" {
		return d.Name
	}
	return "something"
}

// pick returns k distinct indices in [0, n) in random order.
func pick(rng Rand, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	k = min(k, n)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
