package render

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// DimLight is the light level explored cells are drawn with once they are
// out of sight.
const DimLight = 0.1

type lightKey struct {
	color string
	light float64
}

// ColorCache memoizes lit colours. Light levels come from fov lightmaps,
// which round to two decimals, so the key space stays small.
type ColorCache struct {
	mu     sync.Mutex
	colors map[lightKey]tcell.Color
}

// NewColorCache returns an empty cache.
func NewColorCache() *ColorCache {
	return &ColorCache{colors: make(map[lightKey]tcell.Color)}
}

// LightedColor scales the named colour by light, each channel rounded.
// Unknown names are treated as white.
func (c *ColorCache) LightedColor(name string, light float64) tcell.Color {
	key := lightKey{name, light}
	c.mu.Lock()
	defer c.mu.Unlock()
	if col, ok := c.colors[key]; ok {
		return col
	}
	col := scale(name, light)
	c.colors[key] = col
	return col
}

// Len reports how many colours are cached.
func (c *ColorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.colors)
}

var defaultColors = NewColorCache()

// LightedColor scales a named colour by light using a shared cache.
func LightedColor(name string, light float64) tcell.Color {
	return defaultColors.LightedColor(name, light)
}

// NamedColor resolves a colour name, falling back to def.
func NamedColor(name string, def tcell.Color) tcell.Color {
	if name == "" {
		return def
	}
	if col := tcell.GetColor(name); col != tcell.ColorDefault {
		return col
	}
	return def
}

func scale(name string, light float64) tcell.Color {
	r, g, b := NamedColor(name, tcell.ColorWhite).RGB()
	if r < 0 {
		r, g, b = 255, 255, 255
	}
	ch := func(v int32) int32 {
		return int32(min(255, max(0, math.Round(float64(v)*light))))
	}
	return tcell.NewRGBColor(ch(r), ch(g), ch(b))
}
