package game

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/config"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/factory"
	"glyphcrawl/internal/gamemap"
)

const testTemplates = `
items:
  - name: rock
    systems:
      - system: item
        params: [rock]
      - system: appearance
        params: ["*", white]
      - system: descriptible
        params: [rock, "A small stone.", {one: a, many: some}]
`

// twoDepths is a pair of levels with one floor cell at (1,1) on the top
// depth and stairs joining the depths at (2,1).
func twoDepths() [][][]gamemap.TileKind {
	const (
		w = gamemap.KindWall
		f = gamemap.KindFloor
		u = gamemap.KindStairsUp
		d = gamemap.KindStairsDown
	)
	return [][][]gamemap.TileKind{
		{
			{w, w, w, w},
			{w, f, d, w},
			{w, w, w, w},
		},
		{
			{w, w, w, w},
			{w, f, u, w},
			{w, w, w, w},
		},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Game.Seed = "test"
	cfg.Game.BeingsPerFloor = 0
	cfg.Game.ItemsPerFloor = 0
	cfg.RunLog.Enabled = false
	return cfg
}

func testOptions(t *testing.T) []SessionOption {
	t.Helper()
	f, err := factory.ParseTemplates([]byte(testTemplates))
	if err != nil {
		t.Fatal(err)
	}
	return []SessionOption{
		WithRand(rand.New(rand.NewSource(1))),
		WithTemplates(f),
		WithLayout(twoDepths()),
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(testConfig(), nil, testOptions(t)...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func lastMessage(s *Session) string {
	msgs := s.Messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func countMessages(s *Session, substr string) int {
	n := 0
	for _, m := range s.Messages() {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}

type countDisplay struct{ n int }

func (d *countDisplay) Refresh() { d.n++ }

func TestNewSession(t *testing.T) {
	s := newTestSession(t)
	if s.State() != StatePlaying {
		t.Fatalf("state = %v; want playing", s.State())
	}
	if got := s.Position(); got != (component.Position{X: 1, Y: 1, Z: 0}) {
		t.Errorf("position = %+v; want (1,1,0)", got)
	}
	if s.Map().GetBeingAt(1, 1, 0) != s.Player() {
		t.Error("player not indexed on the map")
	}
	if s.World().GetVal(ecs.KeyPlayer) != s.Player() {
		t.Error("player not stored in the world context")
	}
	if run := s.Run(); run.Turns != 0 || run.DeepestLevel != 1 || run.Seed != "test" {
		t.Errorf("run = %+v", run)
	}
	if s.Lights() == nil {
		t.Error("player should have computed its field of view")
	}
}

func TestMoveAcrossStairs(t *testing.T) {
	s := newTestSession(t)

	if err := s.Move(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "You can't go down here!" {
		t.Errorf("message = %q", got)
	}
	if s.Position().Z != 0 {
		t.Fatalf("descended from a floor tile")
	}

	if err := s.Move(1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Move(0, 0, -1); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "You can't go up here!" {
		t.Errorf("message = %q", got)
	}

	if err := s.Move(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "You descend to level 2!" {
		t.Errorf("message = %q", got)
	}
	if got := s.Position(); got != (component.Position{X: 2, Y: 1, Z: 1}) {
		t.Fatalf("position = %+v; want (2,1,1)", got)
	}
	if s.Map().GetBeingAt(2, 1, 0) != nil {
		t.Error("player still indexed on the depth it left")
	}

	if err := s.Move(0, 0, -1); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "You ascend to level 1!" {
		t.Errorf("message = %q", got)
	}

	run := s.Run()
	if run.Turns != 5 {
		t.Errorf("turns = %d; want 5", run.Turns)
	}
	if run.DeepestLevel != 2 {
		t.Errorf("deepest = %d; want 2", run.DeepestLevel)
	}
}

func TestPickupAndDrop(t *testing.T) {
	s := newTestSession(t)

	if err := s.Pickup(); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "There is nothing here to pick up." {
		t.Errorf("message = %q", got)
	}
	if s.Run().Turns != 0 {
		t.Error("an empty pickup must not spend a turn")
	}

	rock, err := s.items.Create("rock")
	if err != nil {
		t.Fatal(err)
	}
	s.Map().AddItem(1, 1, 0, rock)
	if err := s.Pickup(); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "You pick up a rock." {
		t.Errorf("message = %q", got)
	}
	if len(s.Map().GetItemsAt(1, 1, 0)) != 0 {
		t.Error("rock still on the floor")
	}

	if err := s.Drop(3); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "You have nothing to drop there." {
		t.Errorf("message = %q", got)
	}

	if err := s.Drop(0); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "You drop a rock." {
		t.Errorf("message = %q", got)
	}
	if items := s.Map().GetItemsAt(1, 1, 0); len(items) != 1 || items[0] != rock {
		t.Errorf("floor = %v; want the rock", items)
	}
	if s.Run().Turns != 2 {
		t.Errorf("turns = %d; want 2", s.Run().Turns)
	}
}

func TestPickupSeveral(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 2; i++ {
		rock, err := s.items.Create("rock")
		if err != nil {
			t.Fatal(err)
		}
		s.Map().AddItem(1, 1, 0, rock)
	}
	if err := s.Pickup(); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(s); got != "You pick up several items." {
		t.Errorf("message = %q", got)
	}
}

func TestLoseIsFinal(t *testing.T) {
	s := newTestSession(t)
	s.Lose()
	s.Lose()
	s.Win()

	if s.State() != StateLost {
		t.Fatalf("state = %v; want lost", s.State())
	}
	if n := countMessages(s, "You have died"); n != 1 {
		t.Errorf("death message shown %d times", n)
	}
	if s.Run().Victory {
		t.Error("lost run recorded as a victory")
	}
	if err := s.Wait(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Wait after game over = %v; want ErrGameOver", err)
	}
	if err := s.Move(1, 0, 0); !errors.Is(err, ErrGameOver) {
		t.Errorf("Move after game over = %v; want ErrGameOver", err)
	}
}

func TestWin(t *testing.T) {
	s := newTestSession(t)
	s.Win()
	if s.State() != StateWon {
		t.Fatalf("state = %v; want won", s.State())
	}
	if got := lastMessage(s); got != "You have won!" {
		t.Errorf("message = %q", got)
	}
	if !s.Run().Victory {
		t.Error("victory not recorded")
	}
}

func TestPlayerDeathEndsGame(t *testing.T) {
	s := newTestSession(t)
	ecs.Get[*component.Destructible](s.Player(), component.CDestructible).HP = 0

	if err := s.Wait(); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateLost {
		t.Fatalf("state = %v; want lost", s.State())
	}
	if n := countMessages(s, "You have died"); n != 1 {
		t.Errorf("death message shown %d times", n)
	}
	if s.Map().GetBeingAt(1, 1, 0) != nil {
		t.Error("dead player still on the map")
	}
	if got := s.Position(); got != (component.Position{X: 1, Y: 1, Z: 0}) {
		t.Errorf("position = %+v; want last known (1,1,0)", got)
	}
}

func TestDisplayRefreshedEachTurn(t *testing.T) {
	s := newTestSession(t)
	d := &countDisplay{}
	s.World().SetVal(ecs.KeyDisplay, d)

	for i := 0; i < 3; i++ {
		if err := s.Wait(); err != nil {
			t.Fatal(err)
		}
	}
	if d.n != 3 {
		t.Errorf("refreshed %d times; want 3", d.n)
	}
}

func TestMessagesCapped(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < MaxMessages+10; i++ {
		s.addMessage("tick")
	}
	if got := len(s.Messages()); got != MaxMessages {
		t.Errorf("kept %d messages; want %d", got, MaxMessages)
	}
}

func TestDescribeItem(t *testing.T) {
	s := newTestSession(t)
	rock, err := s.items.Create("rock")
	if err != nil {
		t.Fatal(err)
	}
	if got := describeItem(rock); got != "a rock" {
		t.Errorf("describeItem = %q; want %q", got, "a rock")
	}
	if got := describe(s.Map().Tileset().Floor); got == "" {
		t.Error("describe returned an empty name")
	}
}
