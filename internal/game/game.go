// Package game runs play sessions: the headless Session and the terminal
// front-end that drives it.
package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/config"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/render"
	"glyphcrawl/internal/system"
)

// Game is the terminal front-end: it turns key presses into session actions
// and draws the session after every player turn.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	cfg      *config.Config
	log      *zap.Logger
	opts     []SessionOption
	session  *Session
}

// New creates a Game on an initialised screen. opts are passed to every
// session the game starts.
func New(screen tcell.Screen, cfg *config.Config, log *zap.Logger, opts ...SessionOption) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		cfg:      cfg,
		log:      log,
		opts:     opts,
	}
}

// Session returns the session being played.
func (g *Game) Session() *Session { return g.session }

// Refresh redraws the current session.
func (g *Game) Refresh() {
	if g.session != nil {
		g.renderer.DrawFrame(g.view())
	}
}

func (g *Game) view() render.View {
	s := g.session
	v := render.View{
		Map:      s.Map(),
		Center:   s.Position(),
		Lights:   s.Lights(),
		Depth:    s.Position().Z,
		Messages: s.Messages(),
	}
	p := s.Player()
	if d := ecs.Get[*component.Destructible](p, component.CDestructible); d != nil {
		v.HP, v.MaxHP = d.HP, d.MaxHP
	}
	if inv := ecs.Get[*component.Inventory](p, component.CInventory); inv != nil {
		v.Slots = inv.Size
		for _, it := range system.GetItems(p) {
			if it != nil {
				v.Items++
			}
		}
	}
	return v
}

// Start begins a fresh session and draws it.
func (g *Game) Start() error {
	s, err := NewSession(g.cfg, g.log, g.opts...)
	if err != nil {
		return err
	}
	g.session = s
	s.World().SetVal(ecs.KeyDisplay, g)
	s.addMessage("Use hjklyubn or arrow keys to move. > and < take the stairs.")
	g.Refresh()
	return nil
}

// Run is the main loop. It supports consecutive runs through the end screen
// and returns when the player quits or the screen goes away.
func (g *Game) Run() error {
	defer g.screen.Fini()

	for {
		if err := g.Start(); err != nil {
			return err
		}
		for g.session.State() == StatePlaying {
			ev := g.screen.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return nil
			case *tcell.EventResize:
				g.screen.Sync()
				g.Refresh()
			case *tcell.EventKey:
				action := keyToAction(ev)
				if action == ActionQuit {
					return nil
				}
				if err := g.processAction(action); err != nil {
					g.log.Error("turn failed", zap.Error(err))
					return err
				}
				g.Refresh()
			}
		}

		g.saveRun()
		if !g.showEndScreen() {
			return nil
		}
	}
}

// processAction applies one action to the session.
func (g *Game) processAction(action Action) error {
	s := g.session
	var err error
	switch action {
	case ActionNone:
		return nil
	case ActionWait:
		err = s.Wait()
	case ActionPickup:
		err = s.Pickup()
	case ActionInventory:
		err = g.runInventoryScreen()
	case ActionWin:
		s.Win()
	case ActionLose:
		s.Lose()
	default:
		dx, dy, dz := actionToDelta(action)
		if dx != 0 || dy != 0 || dz != 0 {
			err = s.Move(dx, dy, dz)
		}
	}
	if errors.Is(err, ErrGameOver) {
		return nil
	}
	return err
}

func (g *Game) saveRun() {
	if !g.cfg.RunLog.Enabled {
		return
	}
	if err := SaveRunLog(g.session.Run()); err != nil {
		g.log.Warn("save run log", zap.Error(err))
	}
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// showEndScreen renders the run summary and returns true if the player
// wants to try again, false to quit.
func (g *Game) showEndScreen() bool {
	run := g.session.Run()
	won := g.session.State() == StateWon

	type killEntry struct {
		name  string
		count int
	}
	var kills []killEntry
	for n, c := range run.Kills {
		kills = append(kills, killEntry{n, c})
	}
	sort.Slice(kills, func(i, j int) bool {
		if kills[i].count != kills[j].count {
			return kills[i].count > kills[j].count
		}
		return kills[i].name < kills[j].name
	})

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		if won {
			g.putText(2, y, "You won! Congratulations!", gold)
			badge := "[VICTORY]"
			g.putText(sw-len(badge)-1, y, badge, green)
		} else {
			g.putText(2, y, "You lose! Too bad...", gold)
			badge := "[DEFEAT]"
			g.putText(sw-len(badge)-1, y, badge, red)
		}
		y += 2

		label(y, "Deepest Level:", fmt.Sprintf("%d", run.DeepestLevel))
		y++
		label(y, "Turns Survived:", fmt.Sprintf("%d", run.Turns))
		y += 2

		label(y, "Beings Slain:", fmt.Sprintf("%d", run.TotalKills()))
		y++
		if len(kills) > 0 {
			breakdown := ""
			for _, e := range kills {
				breakdown += fmt.Sprintf("%s×%d  ", e.name, e.count)
			}
			runes := []rune(breakdown)
			if maxRunes := sw - 6; maxRunes > 0 && len(runes) > maxRunes {
				runes = runes[:maxRunes]
			}
			g.putText(4, y, string(runes), dim)
			y++
		}
		y++

		label(y, "Damage Dealt:", fmt.Sprintf("%d", run.DamageDealt))
		y++
		label(y, "Damage Taken:", fmt.Sprintf("%d", run.DamageTaken))
		y += 2

		if !won && run.CauseOfDeath != "" {
			label(y, "Killed By:", run.CauseOfDeath)
		}
		y += 2

		sep(y)
		y += 2

		g.putText(2, y, "[R] Try Again", green)
		g.putText(18, y, "[Q] Quit", red)

		g.screen.Show()

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return false
		case *tcell.EventResize:
			g.screen.Sync()
			continue
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		}
	}
}
