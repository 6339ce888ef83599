package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphcrawl/internal/ecs"
)

func TestInventorySlots(t *testing.T) {
	f := newFixture(t, &stubRand{}, bigRoom...)
	p := f.player(t, 1, 1)
	a, b, c := f.w.CreateEntity("a"), f.w.CreateEntity("b"), f.w.CreateEntity("c")

	assert.True(t, CanAddItem(p))
	assert.True(t, AddItem(p, a))
	assert.True(t, AddItem(p, b))
	assert.False(t, CanAddItem(p))
	assert.False(t, AddItem(p, c))
	assert.Same(t, b, GetItem(p, 1))
	assert.Nil(t, GetItem(p, 5))

	RemoveItem(p, 0)
	assert.Nil(t, GetItem(p, 0))
	assert.True(t, AddItem(p, c))
	assert.Equal(t, []*ecs.Entity{c, b}, GetItems(p))

	rock := f.spawn(t, 3, 3)
	assert.False(t, AddItem(rock, a), "no inventory")
	assert.Nil(t, GetItems(rock))
}

func TestPickupAndDrop(t *testing.T) {
	f := newFixture(t, &stubRand{}, bigRoom...)
	p := f.player(t, 2, 2)
	items := []*ecs.Entity{f.w.CreateEntity("x"), f.w.CreateEntity("y"), f.w.CreateEntity("z")}
	for _, it := range items {
		f.m.AddItem(2, 2, 0, it)
	}

	assert.False(t, PickupItems(f.w, p, []int{0, 1, 2}), "only two slots")
	assert.Equal(t, []*ecs.Entity{items[0], items[1]}, GetItems(p))
	assert.Equal(t, []*ecs.Entity{items[2]}, f.m.GetItemsAt(2, 2, 0))

	require.True(t, DropItem(f.w, p, 0))
	assert.Nil(t, GetItem(p, 0))
	assert.Equal(t, []*ecs.Entity{items[2], items[0]}, f.m.GetItemsAt(2, 2, 0))
	assert.False(t, DropItem(f.w, p, 0))

	assert.True(t, PickupItems(f.w, p, []int{1}))
	assert.Equal(t, []*ecs.Entity{items[2]}, f.m.GetItemsAt(2, 2, 0))
}

func TestDropWithoutMapKeepsItem(t *testing.T) {
	w := ecs.NewWorld()
	set := NewSet(w, &stubRand{})
	p := w.CreateEntity("p",
		ecs.Spec{System: set.Position, Params: []any{1, 1, 0}},
		ecs.Spec{System: set.Inventory, Params: []any{2}},
	)
	apple := w.CreateEntity("apple")
	require.True(t, AddItem(p, apple))

	assert.False(t, DropItem(w, p, 0))
	assert.Same(t, apple, GetItem(p, 0))
}
