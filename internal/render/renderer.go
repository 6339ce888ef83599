// Package render draws a play session onto a tcell screen.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/fov"
	"glyphcrawl/internal/gamemap"
)

// View is everything one frame needs.
type View struct {
	Map      *gamemap.Map
	Center   component.Position // the player's position, or where it last stood
	Lights   *fov.Lightmap      // cells the player currently sees
	HP       int
	MaxHP    int
	Depth    int
	Items    int
	Slots    int
	Messages []string
}

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	colors *ColorCache
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0),
		colors: defaultColors,
	}
}

// Screen returns the screen drawn on.
func (r *Renderer) Screen() tcell.Screen { return r.screen }

// Camera returns the camera of the last frame.
func (r *Renderer) Camera() *Camera { return r.camera }

// DrawFrame renders the map around v.Center and the HUD, then shows the
// screen.
func (r *Renderer) DrawFrame(v View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(0, h-HUDRows)
	if v.Map != nil {
		r.camera.Follow(v.Center.X, v.Center.Y, v.Map.Width(), v.Map.Height())
		r.drawMap(v)
	}
	r.DrawHUD(v)
	r.screen.Show()
}

// drawMap draws lit cells at their light level with items and beings on
// top, and remembered cells dimmed to tile glyphs only.
func (r *Renderer) drawMap(v View) {
	z := v.Center.Z
	for sy := 0; sy < r.camera.ViewHeight; sy++ {
		for sx := 0; sx < r.camera.ViewWidth; sx++ {
			x, y := r.camera.ScreenToWorld(sx, sy)
			if !v.Map.InBounds(x, y, z) {
				continue
			}
			if light, ok := v.Lights.At(x, y); ok && light > 0 {
				r.drawEntity(sx, sy, r.topmost(v.Map, x, y, z), light)
				continue
			}
			if v.Map.IsExplored(x, y, z) {
				r.drawEntity(sx, sy, v.Map.GetTile(x, y, z), DimLight)
			}
		}
	}
}

// topmost returns the being at (x, y, z), else the last item dropped there,
// else the tile.
func (r *Renderer) topmost(m *gamemap.Map, x, y, z int) *ecs.Entity {
	if b := m.GetBeingAt(x, y, z); b != nil {
		return b
	}
	if items := m.GetItemsAt(x, y, z); len(items) > 0 {
		return items[len(items)-1]
	}
	return m.GetTile(x, y, z)
}

func (r *Renderer) drawEntity(sx, sy int, e *ecs.Entity, light float64) {
	a := ecs.Get[*component.Appearance](e, component.CAppearance)
	if a == nil || a.Ch == "" {
		return
	}
	style := tcell.StyleDefault.
		Foreground(r.colors.LightedColor(a.Fg, light)).
		Background(NamedColor(a.Bg, tcell.ColorBlack))
	r.putGlyph(sx, sy, a.Ch, style)
}

// putGlyph draws a single glyph (ASCII or multi-rune) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
