package fov

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// grid builds a blocks predicate from rows of '#' (opaque) and '.' (clear).
func grid(rows ...string) BlocksFunc {
	return func(x, y int) bool {
		if y < 0 || y >= len(rows) || x < 0 || x >= len(rows[y]) {
			return true
		}
		return rows[y][x] == '#'
	}
}

func visible(cx, cy, radius int, blocks BlocksFunc) map[Cell]bool {
	out := map[Cell]bool{}
	Compute(cx, cy, radius, blocks, func(x, y, _ int, _ float64) {
		out[Cell{x, y}] = true
	})
	return out
}

func TestComputeOpenRoom(t *testing.T) {
	blocks := grid(
		".......",
		".......",
		".......",
		".......",
		".......",
	)
	v := visible(3, 2, 5, blocks)
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			assert.True(t, v[Cell{x, y}], "expected (%d,%d) visible", x, y)
		}
	}
}

func TestComputeWallBlocks(t *testing.T) {
	blocks := grid(
		"#######",
		"#..#..#",
		"#######",
	)
	v := visible(1, 1, 8, blocks)
	assert.True(t, v[Cell{1, 1}], "origin")
	assert.True(t, v[Cell{2, 1}])
	assert.True(t, v[Cell{3, 1}], "wall itself is seen")
	assert.False(t, v[Cell{4, 1}], "cell behind wall")
	assert.False(t, v[Cell{5, 1}], "cell behind wall")
}

func TestComputeRadius(t *testing.T) {
	blocks := func(int, int) bool { return false }
	v := visible(0, 0, 3, blocks)
	assert.True(t, v[Cell{2, 0}])
	assert.False(t, v[Cell{3, 0}], "distance equal to radius is outside")
	assert.False(t, v[Cell{5, 5}])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.12, Round2(0.129))
	assert.Equal(t, 1.1, Round2(1.1))
	assert.Equal(t, 0.0, Round2(0.009))
}

func TestLight(t *testing.T) {
	assert.Equal(t, 1.1, Light(0, 0, 0, 0, 10, 1))
	assert.Equal(t, 0.1, Light(0, 0, 10, 0, 10, 1), "edge of radius gets ambient only")
	assert.Equal(t, 0.1, Light(0, 0, 8, 8, 10, 1), "beyond radius clamps")
	// sqrt(1 - 5/10) = 0.7071
	assert.Equal(t, 0.8, Light(0, 0, 3, 2, 10, 1))
}

func TestLightsAndEqual(t *testing.T) {
	blocks := grid(
		".....",
		".....",
		".....",
	)
	a := Lights(2, 1, 4, blocks)
	b := Lights(2, 1, 4, blocks)
	assert.NotSame(t, a, b)
	assert.True(t, a.Equal(b))
	v, ok := a.At(2, 1)
	assert.True(t, ok)
	assert.Equal(t, 1.1, v)
	_, ok = a.At(40, 40)
	assert.False(t, ok)

	c := Lights(0, 0, 4, blocks)
	assert.False(t, a.Equal(c))

	var nilMap *Lightmap
	assert.Zero(t, nilMap.Len())
}
