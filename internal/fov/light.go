package fov

import "math"

// Cell is a 2D grid coordinate.
type Cell struct {
	X, Y int
}

// Lightmap holds the light level of every lit cell on one depth.
type Lightmap struct {
	cells map[Cell]float64
}

// NewLightmap returns an empty lightmap.
func NewLightmap() *Lightmap {
	return &Lightmap{cells: make(map[Cell]float64)}
}

// Set stores the light level of (x, y).
func (l *Lightmap) Set(x, y int, light float64) {
	l.cells[Cell{x, y}] = light
}

// At returns the light level of (x, y) and whether it is lit.
func (l *Lightmap) At(x, y int) (float64, bool) {
	if l == nil {
		return 0, false
	}
	v, ok := l.cells[Cell{x, y}]
	return v, ok
}

// Len returns the number of lit cells.
func (l *Lightmap) Len() int {
	if l == nil {
		return 0
	}
	return len(l.cells)
}

// Each calls fn for every lit cell in unspecified order.
func (l *Lightmap) Each(fn func(c Cell, light float64)) {
	if l == nil {
		return
	}
	for c, v := range l.cells {
		fn(c, v)
	}
}

// Equal reports whether both maps light the same cells at the same levels.
func (l *Lightmap) Equal(o *Lightmap) bool {
	if l.Len() != o.Len() {
		return false
	}
	for c, v := range l.cells {
		if ov, ok := o.cells[c]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Round2 floors v to two decimal places. Light values are kept at this
// precision so memoized colour blending hits its cache.
func Round2(v float64) float64 {
	return math.Floor(v*100) / 100
}

// Light returns the light level at (x, y) as seen from (cx, cy): a 0.1
// ambient floor plus visibility scaled by a square-root falloff over the
// manhattan distance.
func Light(cx, cy, x, y, radius int, visibility float64) float64 {
	if radius <= 0 {
		return Round2(0.1 + visibility)
	}
	d := float64(abs(x-cx) + abs(y-cy))
	f := 1 - d/float64(radius)
	f = math.Max(0, math.Min(1, f))
	return Round2(0.1 + visibility*math.Sqrt(f))
}

// Lights runs Compute and collects the result as a lightmap.
func Lights(cx, cy, radius int, blocks BlocksFunc) *Lightmap {
	lm := NewLightmap()
	Compute(cx, cy, radius, blocks, func(x, y, _ int, vis float64) {
		lm.Set(x, y, Light(cx, cy, x, y, radius, vis))
	})
	return lm
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
