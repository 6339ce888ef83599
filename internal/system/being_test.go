package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

var bigRoom = []string{
	"#########",
	"#.......#",
	"#.......#",
	"#.......#",
	"#.......#",
	"#.......#",
	"#########",
}

// neighbourCycle makes Intn(3)-1 pairs walk the eight neighbours in order.
var neighbourCycle = []int{0, 0, 1, 0, 2, 0, 0, 1, 2, 1, 0, 2, 1, 2, 2, 2}

func TestFungusSpreadCap(t *testing.T) {
	rng := &stubRand{ints: neighbourCycle, f: 0}
	f := newFixture(t, rng, bigRoom...)
	spawned := 0
	f.w.SetVal(ecs.KeyBeings, creatorFunc(func(name string) (*ecs.Entity, error) {
		require.Equal(t, "fungus", name)
		spawned++
		return f.w.CreateEntity("",
			ecs.Spec{System: f.set.Position},
			ecs.Spec{System: f.set.Fungus, Params: []any{0}},
			ecs.Spec{System: f.set.Perception},
		), nil
	}))
	parent := f.spawn(t, 4, 3,
		ecs.Spec{System: f.set.Fungus, Params: []any{5}},
		ecs.Spec{System: f.set.Perception},
	)
	f.player(t, 1, 1)

	for i := 0; i < 40; i++ {
		require.NoError(t, f.w.Tick())
	}
	assert.Equal(t, 5, spawned)
	assert.Equal(t, 7, f.m.BeingCount(), "parent, player and five children")
	assert.Zero(t, ecs.Get[*component.Fungus](parent, component.CFungus).GrowthsRemaining)
	assert.Contains(t, f.messages, "The fungus is spreading!")
	assert.Contains(t, f.sounds, "grass-dig")
}

func TestFungusNeedsLuck(t *testing.T) {
	rng := &stubRand{ints: neighbourCycle, f: 0.5}
	f := newFixture(t, rng, bigRoom...)
	f.w.SetVal(ecs.KeyBeings, creatorFunc(func(string) (*ecs.Entity, error) {
		t.Fatal("no spawn expected")
		return nil, nil
	}))
	f.spawn(t, 4, 3, ecs.Spec{System: f.set.Fungus})
	for i := 0; i < 10; i++ {
		require.NoError(t, f.w.Tick())
	}
}

func TestBigSlimeSplits(t *testing.T) {
	rng := &stubRand{ints: []int{0, 1, 2, 3}}
	f := newFixture(t, rng, bigRoom...)
	var smalls []*ecs.Entity
	f.w.SetVal(ecs.KeyBeings, creatorFunc(func(name string) (*ecs.Entity, error) {
		require.Equal(t, "SmallSlime", name)
		e := f.w.CreateEntity("",
			ecs.Spec{System: f.set.Position},
			ecs.Spec{System: f.set.SmallSlime},
			ecs.Spec{System: f.set.Destructible, Params: []any{3, 3, 0}},
		)
		smalls = append(smalls, e)
		return e, nil
	}))
	slime := f.spawn(t, 4, 3,
		ecs.Spec{System: f.set.BigSlime},
		ecs.Spec{System: f.set.Destructible, Params: []any{0, 10, 0}},
	)

	require.NoError(t, f.w.Tick())
	assert.False(t, slime.Alive())
	assert.Len(t, smalls, 3)
	assert.Equal(t, 3, f.m.BeingCount())
	for _, s := range smalls {
		p := posOf(s)
		assert.Same(t, s, f.m.GetBeingAt(p.X, p.Y, p.Z))
		assert.LessOrEqual(t, abs(p.X-4), 1)
		assert.LessOrEqual(t, abs(p.Y-3), 1)
	}
	assert.Contains(t, f.sounds, "slime")
}

func TestBatIdleSound(t *testing.T) {
	f := newFixture(t, &stubRand{f: 0.05}, bigRoom...)
	f.spawn(t, 2, 2, ecs.Spec{System: f.set.Bat})
	require.NoError(t, f.w.Tick())
	assert.Equal(t, []string{"bat-idle"}, f.sounds)

	quiet := newFixture(t, &stubRand{f: 0.5}, bigRoom...)
	quiet.spawn(t, 2, 2, ecs.Spec{System: quiet.set.Bat})
	require.NoError(t, quiet.w.Tick())
	assert.Empty(t, quiet.sounds)
}

func TestBatHurtSound(t *testing.T) {
	f := newFixture(t, &stubRand{f: 0.9}, bigRoom...)
	p := f.player(t, 1, 1)
	bat := f.spawn(t, 2, 1, ecs.Spec{System: f.set.Bat}, ecs.Spec{System: f.set.Destructible, Params: []any{3, 3, 0}})
	TryAttack(f.w, p, bat)
	assert.Equal(t, []string{"bat-hurt"}, f.sounds)
	require.NoError(t, f.w.Tick())
	assert.Equal(t, []string{"bat-hurt", "bat-death"}, f.sounds)
}

func TestPlayerMessagesEvent(t *testing.T) {
	f := newFixture(t, &stubRand{}, bigRoom...)
	p := f.player(t, 1, 1)
	p.DispatchEvent(EventMessages, MessagesEvent{Messages: []Message{{Text: "a", Kind: "seen"}, {Text: "b"}}})
	assert.Equal(t, []string{"a", "b"}, f.messages)
}

func TestPlayerUnmountKeepsOtherListeners(t *testing.T) {
	f := newFixture(t, &stubRand{}, bigRoom...)
	p := f.player(t, 1, 1)
	other := 0
	p.AddEventListener(EventMessages, func(any) { other++ })

	f.w.UnmountSystem(p, f.set.Player)
	p.DispatchEvent(EventMessages, MessagesEvent{Messages: []Message{{Text: "a"}}})
	p.DispatchEvent(EventDeath, DeathEvent{Entity: p})

	assert.Equal(t, 1, other)
	assert.Empty(t, f.messages)
	assert.Equal(t, 0, f.lost)
	assert.Equal(t, 1, p.ListenerCount(EventMessages))
	assert.Equal(t, 0, p.ListenerCount(EventDeath))
}

func TestSetByName(t *testing.T) {
	f := newFixture(t, &stubRand{}, ".")
	sys, ok := f.set.ByName("messageLogger")
	require.True(t, ok)
	assert.Equal(t, component.CMessageLogger, sys.ID())
	_, ok = f.set.ByName("teleport")
	assert.False(t, ok)

	all := f.set.All()
	require.NotEmpty(t, all)
	assert.Equal(t, component.CPlayer, all[0].ID())
	assert.Equal(t, f.w.Systems()[0].ID(), component.CPlayer)
}

func TestDescriptibleArticle(t *testing.T) {
	f := newFixture(t, &stubRand{}, ".")
	d := f.set.Descriptible.CreateComponent("apple", "red", map[string]any{"one": "an"}).(*component.Descriptible)
	assert.Equal(t, component.Article{One: "an", Many: "many"}, d.Article)
	d = f.set.Descriptible.CreateComponent("rock").(*component.Descriptible)
	assert.Equal(t, component.DefaultArticle, d.Article)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
