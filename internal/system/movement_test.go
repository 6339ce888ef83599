package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

var room = []string{
	"#######",
	"#.....#",
	"#.....#",
	"#.....#",
	"#######",
}

func TestTryMoveSteps(t *testing.T) {
	f := newFixture(t, &stubRand{}, room...)
	p := f.player(t, 2, 2)
	trampled := 0
	f.m.Tileset().Floor.AddEventListener(EventTrampled, func(any) { trampled++ })
	var moved MoveToEvent
	p.AddEventListener(EventMoveTo, func(v any) { moved = v.(MoveToEvent) })

	res, err := TryMove(f.w, p, 3, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveOK, res)
	assert.Equal(t, component.Position{X: 3, Y: 2, Z: 0}, posOf(p))
	assert.Nil(t, f.m.GetBeingAt(2, 2, 0))
	assert.Same(t, p, f.m.GetBeingAt(3, 2, 0))
	assert.Equal(t, 1, trampled)
	assert.Equal(t, 3, moved.X)
	assert.Contains(t, f.sounds, "footstep")
}

func TestTryMoveSelfAndNullTile(t *testing.T) {
	f := newFixture(t, &stubRand{}, room...)
	p := f.player(t, 1, 1)

	res, err := TryMove(f.w, p, 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, res)

	res, err = TryMove(f.w, p, -1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, res)
	assert.Equal(t, component.Position{X: 1, Y: 1, Z: 0}, posOf(p))
}

func TestTryMoveDig(t *testing.T) {
	f := newFixture(t, &stubRand{}, room...)
	p := f.player(t, 1, 2)
	digs := 0
	p.AddEventListener(EventDig, func(any) { digs++ })

	res, err := TryMove(f.w, p, 0, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveDig, res)
	assert.Same(t, f.m.Tileset().Floor, f.m.GetTile(0, 2, 0))
	assert.Equal(t, component.Position{X: 1, Y: 2, Z: 0}, posOf(p))
	assert.Equal(t, 1, digs)
	assert.Equal(t, []string{"stone-dig"}, f.sounds)
}

func TestTryMoveMonsterCannotDig(t *testing.T) {
	f := newFixture(t, &stubRand{}, room...)
	m := f.spawn(t, 1, 2)
	res, err := TryMove(f.w, m, 0, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveNone, res)
	assert.Same(t, f.m.Tileset().Wall, f.m.GetTile(0, 2, 0))
}

func TestPeaceBetweenMonsters(t *testing.T) {
	f := newFixture(t, &stubRand{}, room...)
	a := f.spawn(t, 1, 1, ecs.Spec{System: f.set.Attack, Params: []any{4}})
	b := f.spawn(t, 2, 1, ecs.Spec{System: f.set.Destructible, Params: []any{5, 5, 0}})
	events := 0
	a.AddEventListener(EventAttack, func(any) { events++ })
	b.AddEventListener(EventDamaged, func(any) { events++ })

	res, err := TryMove(f.w, a, 2, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, MovePeace, res)
	assert.Equal(t, 5, hpOf(b))
	assert.Zero(t, events)
	assert.Equal(t, component.Position{X: 1, Y: 1, Z: 0}, posOf(a))
}

func TestTouchWithoutAttack(t *testing.T) {
	f := newFixture(t, &stubRand{}, room...)
	p := f.player(t, 1, 1)
	door := f.spawn(t, 2, 1)
	var by *ecs.Entity
	door.AddEventListener(EventTouch, func(v any) { by = v.(TouchEvent).By })

	res, err := TryMove(f.w, p, 2, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveTouch, res)
	assert.Same(t, p, by)
}

func TestMovementSystemStaysOnFloor(t *testing.T) {
	rng := &stubRand{ints: []int{0, 1, 2, 3, 4, 5, 6, 7, 8}}
	f := newFixture(t, rng, room...)
	bat := f.spawn(t, 3, 2, ecs.Spec{System: f.set.Movement})
	for i := 0; i < 30; i++ {
		require.NoError(t, f.w.Tick())
		p := posOf(bat)
		require.Same(t, bat, f.m.GetBeingAt(p.X, p.Y, p.Z))
		require.Same(t, f.m.Tileset().Floor, f.m.GetTile(p.X, p.Y, p.Z))
	}
	assert.Equal(t, 1, f.m.BeingCount())
}

func TestMoveResultString(t *testing.T) {
	assert.Equal(t, "dig", MoveDig.String())
	assert.Equal(t, "none", MoveResult(99).String())
}
