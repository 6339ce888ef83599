package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/system"
)

// runInventoryScreen opens a blocking inventory UI where the player can drop
// an item. Dropping spends the turn; closing the screen does not.
func (g *Game) runInventoryScreen() error {
	p := g.session.Player()
	inv := ecs.Get[*component.Inventory](p, component.CInventory)
	if inv == nil {
		return nil
	}
	cursor := 0
	for {
		cursor = max(0, min(cursor, inv.Size-1))
		g.drawInventoryScreen(p, inv.Size, cursor)

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape:
				return nil
			case tcell.KeyUp:
				cursor--
			case tcell.KeyDown:
				cursor++
			case tcell.KeyEnter:
				return g.dropAt(cursor)
			case tcell.KeyRune:
				switch r := ev.Rune(); {
				case r == 'k':
					cursor--
				case r == 'j':
					cursor++
				case r == 'd':
					return g.dropAt(cursor)
				case r >= 'a' && r < 'a'+rune(inv.Size):
					cursor = int(r - 'a')
				}
			}
		}
	}
}

func (g *Game) dropAt(slot int) error {
	if system.GetItem(g.session.Player(), slot) == nil {
		return nil
	}
	return g.session.Drop(slot)
}

func (g *Game) drawInventoryScreen(p *ecs.Entity, size, cursor int) {
	g.screen.Clear()
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	sel := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)

	g.putText(2, 1, "Inventory", white)
	for i := 0; i < size; i++ {
		name := "-"
		if item := system.GetItem(p, i); item != nil {
			name = describeItem(item)
		}
		style := white
		if i == cursor {
			style = sel
		}
		g.putText(2, 3+i, fmt.Sprintf("%c) %s", 'a'+i, name), style)
	}
	g.putText(2, 4+size, "[Enter/d] Drop  [Esc] Close", gray)
	g.screen.Show()
}
