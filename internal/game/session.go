package game

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/config"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/event"
	"glyphcrawl/internal/factory"
	"glyphcrawl/internal/fov"
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/generate"
	"glyphcrawl/internal/system"
)

// ErrGameOver is returned by actions attempted after the game ended.
var ErrGameOver = errors.New("game is over")

// State is the session's outcome so far.
type State uint8

const (
	StatePlaying State = iota
	StateLost
	StateWon
)

func (s State) String() string {
	switch s {
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	default:
		return "playing"
	}
}

// MaxMessages is how many log lines a session keeps.
const MaxMessages = 50

// Display is refreshed at the start of every player turn.
type Display interface {
	Refresh()
}

// Session is one headless play-through: a world, its map and the player.
// Front-ends feed it actions and read its state back.
type Session struct {
	log    *zap.Logger
	cfg    *config.Config
	rng    *rand.Rand
	world  *ecs.World
	set    *system.Set
	beings *factory.Repo
	items  *factory.Repo
	gmap   *gamemap.Map
	player *ecs.Entity
	game   *event.Dispatcher

	messages []string
	state    State
	lastPos  component.Position
	run      RunLog
}

// SessionOption customises NewSession.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	rng       *rand.Rand
	templates *factory.TemplateFile
	layout    [][][]gamemap.TileKind
	sound     system.SoundPlayer
}

// WithRand overrides the seeded random source.
func WithRand(rng *rand.Rand) SessionOption {
	return func(o *sessionOptions) { o.rng = rng }
}

// WithTemplates uses f instead of loading the configured templates.
func WithTemplates(f *factory.TemplateFile) SessionOption {
	return func(o *sessionOptions) { o.templates = f }
}

// WithLayout uses a fixed dungeon layout, indexed [z][y][x], instead of
// generating one.
func WithLayout(levels [][][]gamemap.TileKind) SessionOption {
	return func(o *sessionOptions) { o.layout = levels }
}

// WithSound routes sound effects to p.
func WithSound(p system.SoundPlayer) SessionOption {
	return func(o *sessionOptions) { o.sound = p }
}

// NewSession builds the dungeon, places the player on the top depth,
// populates every depth and runs the first world tick.
func NewSession(cfg *config.Config, log *zap.Logger, opts ...SessionOption) (*Session, error) {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(cfg.Game.SeedValue()))
	}
	if o.sound == nil {
		o.sound = soundLog{log: log}
	}
	if o.templates == nil {
		f, err := factory.LoadTemplates(cfg.Game.Templates)
		if err != nil {
			return nil, err
		}
		o.templates = f
	}
	damage, err := system.ParseDamagePolicy(cfg.Combat.Damage, o.rng)
	if err != nil {
		return nil, err
	}

	s := &Session{
		log:  log,
		cfg:  cfg,
		rng:  o.rng,
		game: &event.Dispatcher{},
		run:  newRunLog(cfg.Game.Seed),
	}
	s.world = ecs.NewWorld(ecs.WithLogger(log))
	s.world.SetVal(ecs.KeyGame, s.game)
	s.world.SetVal(ecs.KeyCombat, damage)
	s.world.SetVal(ecs.KeySound, o.sound)
	s.bindGameEvents()

	s.set = system.NewSet(s.world, o.rng)
	s.beings, s.items, err = factory.NewRepositories(s.world, s.set, o.templates, o.rng)
	if err != nil {
		return nil, err
	}
	s.world.SetVal(ecs.KeyBeings, s.beings)
	s.world.SetVal(ecs.KeyItems, s.items)

	levels := o.layout
	if levels == nil {
		gen := generate.DefaultConfig(cfg.Game.Width, cfg.Game.Height, cfg.Game.Depth, o.rng)
		if levels, err = generate.Generate(gen); err != nil {
			return nil, err
		}
	}
	ts := factory.NewTileset(s.world, s.set)
	s.gmap, err = gamemap.New(s.world, ts.Grid(levels), ts, gamemap.WithRand(o.rng))
	if err != nil {
		return nil, err
	}
	s.world.SetVal(ecs.KeyMap, s.gmap)

	s.player = factory.NewPlayer(s.world, s.set, cfg.Sight.PlayerRadius)
	s.world.SetVal(ecs.KeyPlayer, s.player)
	s.bindPlayerEvents()
	if err := s.gmap.AddBeingAtRandomPosition(s.player, 0); err != nil {
		return nil, fmt.Errorf("place player: %w", err)
	}
	if err := s.gmap.Populate(s.beings, s.items, cfg.Game.BeingsPerFloor, cfg.Game.ItemsPerFloor); err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}
	s.trackPosition()

	sched := s.gmap.Scheduler()
	sched.Add(&worldActor{s: s}, true)
	sched.Add(&playerActor{s: s}, true)
	if err := s.gmap.Engine().Start(); err != nil {
		return nil, err
	}

	log.Info("session started",
		zap.String("seed", cfg.Game.Seed),
		zap.Int("width", s.gmap.Width()),
		zap.Int("height", s.gmap.Height()),
		zap.Int("depth", s.gmap.Depth()),
		zap.Int("beings", s.gmap.BeingCount()),
	)
	return s, nil
}

func (s *Session) bindGameEvents() {
	event.On(s.game, system.GameSendMessage, s.addMessage)
	s.game.AddEventListener(system.GameLose, func(any) { s.finish(StateLost) })
	s.game.AddEventListener(system.GameWin, func(any) { s.finish(StateWon) })
}

// bindPlayerEvents records combat on the player for the run summary.
func (s *Session) bindPlayerEvents() {
	event.On(&s.player.Dispatcher, system.EventAttack, func(ev system.AttackEvent) {
		s.run.DamageDealt += ev.Damage
		if d := ecs.Get[*component.Destructible](ev.Target, component.CDestructible); d != nil && d.HP <= 0 {
			s.run.Kills[describe(ev.Target)]++
		}
	})
	event.On(&s.player.Dispatcher, system.EventDamaged, func(ev system.AttackEvent) {
		s.run.DamageTaken += ev.Damage
		if ev.Damage > 0 {
			s.run.CauseOfDeath = describe(ev.Source)
		}
	})
}

// finish moves the session to a final state. Only the first call counts.
func (s *Session) finish(st State) {
	if s.state != StatePlaying {
		return
	}
	s.state = st
	s.run.Victory = st == StateWon
	switch st {
	case StateLost:
		s.addMessage("You have died... Press [Enter] to continue!")
	case StateWon:
		s.addMessage("You have won!")
	}
	s.log.Info("session over",
		zap.Stringer("state", st),
		zap.Int("turns", s.run.Turns),
		zap.Int("deepest", s.run.DeepestLevel),
	)
}

func (s *Session) addMessage(msg string) {
	s.messages = append(s.messages, msg)
	if len(s.messages) > MaxMessages {
		s.messages = s.messages[len(s.messages)-MaxMessages:]
	}
}

// trackPosition remembers where the player stands, so the last view
// survives the player's removal on death.
func (s *Session) trackPosition() {
	if p := ecs.Get[*component.Position](s.player, component.CPosition); p != nil {
		s.lastPos = *p
		s.run.DeepestLevel = max(s.run.DeepestLevel, p.Z+1)
	}
}

// Move tries to move the player by (dx, dy, dz) and then lets the world take
// its turn. A depth change only succeeds from the matching stairs tile.
func (s *Session) Move(dx, dy, dz int) error {
	if s.state != StatePlaying {
		return ErrGameOver
	}
	pos := ecs.Get[*component.Position](s.player, component.CPosition)
	if pos == nil {
		return ErrGameOver
	}
	x, y, z := pos.X+dx, pos.Y+dy, pos.Z+dz
	if dz != 0 {
		ts := s.gmap.Tileset()
		here := s.gmap.GetTile(pos.X, pos.Y, pos.Z)
		switch {
		case dz < 0 && here != ts.StairsUp:
			s.addMessage("You can't go up here!")
			return s.endTurn()
		case dz > 0 && here != ts.StairsDown:
			s.addMessage("You can't go down here!")
			return s.endTurn()
		}
	}
	res, err := system.TryMove(s.world, s.player, x, y, z)
	if err != nil {
		return err
	}
	if dz != 0 && res == system.MoveOK {
		if dz < 0 {
			s.addMessage(fmt.Sprintf("You ascend to level %d!", z+1))
		} else {
			s.addMessage(fmt.Sprintf("You descend to level %d!", z+1))
		}
	}
	s.trackPosition()
	return s.endTurn()
}

// Wait passes the turn.
func (s *Session) Wait() error {
	if s.state != StatePlaying {
		return ErrGameOver
	}
	return s.endTurn()
}

// Pickup takes every item under the player that fits in the inventory.
func (s *Session) Pickup() error {
	if s.state != StatePlaying {
		return ErrGameOver
	}
	pos := ecs.Get[*component.Position](s.player, component.CPosition)
	if pos == nil {
		return ErrGameOver
	}
	stack := s.gmap.GetItemsAt(pos.X, pos.Y, pos.Z)
	if len(stack) == 0 {
		s.addMessage("There is nothing here to pick up.")
		return nil
	}
	indices := make([]int, len(stack))
	for i := range indices {
		indices[i] = i
	}
	if system.PickupItems(s.world, s.player, indices) {
		if len(stack) == 1 {
			s.addMessage(fmt.Sprintf("You pick up %s.", describeItem(stack[0])))
		} else {
			s.addMessage("You pick up several items.")
		}
	} else {
		s.addMessage("Your inventory is full! Not all items were picked up.")
	}
	return s.endTurn()
}

// Drop puts the item in inventory slot i on the floor.
func (s *Session) Drop(i int) error {
	if s.state != StatePlaying {
		return ErrGameOver
	}
	item := system.GetItem(s.player, i)
	if item == nil || !system.DropItem(s.world, s.player, i) {
		s.addMessage("You have nothing to drop there.")
		return nil
	}
	s.addMessage(fmt.Sprintf("You drop %s.", describeItem(item)))
	return s.endTurn()
}

// Win ends the game as a victory.
func (s *Session) Win() { s.game.DispatchEvent(system.GameWin, s.player) }

// Lose ends the game as a defeat.
func (s *Session) Lose() { s.game.DispatchEvent(system.GameLose, s.player) }

// endTurn hands control to the engine, which ticks the world and stops at
// the player's next turn.
func (s *Session) endTurn() error {
	s.run.Turns++
	return s.gmap.Engine().Unlock()
}

// State reports whether the game is still running.
func (s *Session) State() State { return s.state }

// Messages returns the message log, oldest first.
func (s *Session) Messages() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// World returns the session's world.
func (s *Session) World() *ecs.World { return s.world }

// Map returns the session's map.
func (s *Session) Map() *gamemap.Map { return s.gmap }

// Player returns the player entity.
func (s *Session) Player() *ecs.Entity { return s.player }

// Position returns where the player stands, or stood when it died.
func (s *Session) Position() component.Position { return s.lastPos }

// Lights returns the cells the player currently sees.
func (s *Session) Lights() *fov.Lightmap {
	if sight := ecs.Get[*component.Sight](s.player, component.CSight); sight != nil {
		return sight.Visible
	}
	return nil
}

// Run returns a copy of the statistics gathered so far.
func (s *Session) Run() RunLog {
	r := s.run
	r.Kills = make(map[string]int, len(s.run.Kills))
	for k, v := range s.run.Kills {
		r.Kills[k] = v
	}
	return r
}

// worldActor ticks every system once per turn.
type worldActor struct{ s *Session }

func (a *worldActor) Act() error {
	err := a.s.world.Tick()
	a.s.trackPosition()
	return err
}

// playerActor hands control back to the front-end.
type playerActor struct{ s *Session }

func (a *playerActor) Act() error {
	if d := ecs.Get[*component.Destructible](a.s.player, component.CDestructible); d != nil && d.HP < 1 {
		a.s.game.DispatchEvent(system.GameLose, a.s.player)
	}
	if d, ok := a.s.world.GetVal(ecs.KeyDisplay).(Display); ok {
		d.Refresh()
	}
	a.s.gmap.Engine().Lock()
	return nil
}

func describe(e *ecs.Entity) string {
	if d := ecs.Get[*component.Descriptible](e, component.CDescriptible); d != nil && d.Name != "" {
		return d.Name
	}
	return "something"
}

func describeItem(e *ecs.Entity) string {
	d := ecs.Get[*component.Descriptible](e, component.CDescriptible)
	if d == nil || d.Name == "" {
		if it := ecs.Get[*component.Item](e, component.CItem); it != nil && it.Name != "" {
			return "the " + it.Name
		}
		return "something"
	}
	return d.Article.One + " " + d.Name
}

// soundLog stands in for an audio device: it logs every effect at debug.
type soundLog struct{ log *zap.Logger }

func (l soundLog) Play(name string, x, y, z int) {
	l.log.Debug("sound", zap.String("name", name), zap.Int("x", x), zap.Int("y", y), zap.Int("z", z))
}
