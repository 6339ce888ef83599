package system

import (
	"testing"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/event"
	"glyphcrawl/internal/gamemap"
)

// stubRand cycles through ints for Intn and always returns f from Float64.
type stubRand struct {
	ints []int
	i    int
	f    float64
}

func (r *stubRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)]
	r.i++
	return v % n
}

func (r *stubRand) Float64() float64 { return r.f }

// creatorFunc adapts a function to Creator.
type creatorFunc func(name string) (*ecs.Entity, error)

func (f creatorFunc) Create(name string) (*ecs.Entity, error) { return f(name) }

type fixture struct {
	w        *ecs.World
	set      *Set
	m        *gamemap.Map
	game     *event.Dispatcher
	messages []string
	lost     int
	sounds   []string
}

func (f *fixture) Play(name string, x, y, z int) { f.sounds = append(f.sounds, name) }

// newFixture builds a one-depth map from rows of '.' floor and '#' wall.
func newFixture(t *testing.T, rng Rand, rows ...string) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	f := &fixture{w: w, set: NewSet(w, rng), game: &event.Dispatcher{}}
	tile := func(ch string, dig, walk, blocks bool) *ecs.Entity {
		return w.CreateEntity("",
			ecs.Spec{System: f.set.Appearance, Params: []any{ch}},
			ecs.Spec{System: f.set.Tile, Params: []any{dig, walk, blocks}},
			ecs.Spec{System: f.set.Descriptible, Params: []any{"tile"}},
		)
	}
	ts := gamemap.Tileset{
		Null:       tile("", false, true, false),
		Floor:      tile(".", false, true, false),
		Wall:       tile("#", true, false, true),
		StairsUp:   tile("<", false, true, false),
		StairsDown: tile(">", false, true, false),
	}
	kinds := make([][]gamemap.TileKind, len(rows))
	for y, row := range rows {
		kinds[y] = make([]gamemap.TileKind, len(row))
		for x, ch := range row {
			if ch == '.' {
				kinds[y][x] = gamemap.KindFloor
			}
		}
	}
	m, err := gamemap.New(w, ts.Grid([][][]gamemap.TileKind{kinds}), ts, gamemap.WithRand(rng))
	if err != nil {
		t.Fatal(err)
	}
	f.m = m
	w.SetVal(ecs.KeyMap, m)
	w.SetVal(ecs.KeyGame, f.game)
	w.SetVal(ecs.KeySound, SoundPlayer(f))
	event.On(f.game, GameSendMessage, func(s string) { f.messages = append(f.messages, s) })
	f.game.AddEventListener(GameLose, func(any) { f.lost++ })
	return f
}

// spawn creates a being with the given extra specs and indexes it at (x, y).
func (f *fixture) spawn(t *testing.T, x, y int, specs ...ecs.Spec) *ecs.Entity {
	t.Helper()
	specs = append([]ecs.Spec{{System: f.set.Position, Params: []any{x, y, 0}}}, specs...)
	e := f.w.CreateEntity("", specs...)
	if err := f.m.AddBeing(e); err != nil {
		t.Fatal(err)
	}
	return e
}

func (f *fixture) player(t *testing.T, x, y int) *ecs.Entity {
	t.Helper()
	p := f.spawn(t, x, y,
		ecs.Spec{System: f.set.Player},
		ecs.Spec{System: f.set.Descriptible, Params: []any{"you"}},
		ecs.Spec{System: f.set.Destructible, Params: []any{40, 40, 0}},
		ecs.Spec{System: f.set.Attack, Params: []any{10}},
		ecs.Spec{System: f.set.Perception},
		ecs.Spec{System: f.set.MessageLogger},
		ecs.Spec{System: f.set.Inventory, Params: []any{2}},
		ecs.Spec{System: f.set.Sound},
	)
	f.w.SetVal(ecs.KeyPlayer, p)
	return p
}

func posOf(e *ecs.Entity) component.Position {
	return *ecs.Get[*component.Position](e, component.CPosition)
}

func hpOf(e *ecs.Entity) int {
	return ecs.Get[*component.Destructible](e, component.CDestructible).HP
}
