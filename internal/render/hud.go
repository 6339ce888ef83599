package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved below the map.
const HUDRows = 5

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(v View) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)

	status := fmt.Sprintf("HP: %d/%d  Depth: %d  Pack: %d/%d", v.HP, v.MaxHP, v.Depth+1, v.Items, v.Slots)
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Last three messages.
	start := max(0, len(v.Messages)-3)
	for i, msg := range v.Messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, advancing by each rune's display width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}

// DrawCentered writes lines centered on the screen, starting at row y.
func (r *Renderer) DrawCentered(y int, style tcell.Style, lines ...string) {
	w, _ := r.screen.Size()
	for i, l := range lines {
		x := max(0, (w-runewidth.StringWidth(l))/2)
		r.drawText(x, y+i, l, style)
	}
}
