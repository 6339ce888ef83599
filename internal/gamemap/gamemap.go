// Package gamemap is the spatial authority of a play session: tiles, beings
// and items on a width x height x depth grid, explored state, and the turn
// engine that paces actors.
package gamemap

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/fov"
	"glyphcrawl/internal/turn"
)

// MaxFloorSamples bounds the rejection sampling of GetRandomFloorPosition.
const MaxFloorSamples = 1024

var (
	ErrOutOfBounds     = errors.New("being's position is out of bounds")
	ErrOccupied        = errors.New("tried to add a being at an occupied position")
	ErrNoFloorPosition = errors.New("cannot get random floor position")
	ErrEmptyGrid       = errors.New("tile grid is empty")
	ErrNoPosition      = errors.New("being has no position")
)

// Rand is the subset of *math/rand.Rand the map samples with.
type Rand interface {
	Intn(n int) int
}

// Spawner creates random entities, typically a template repository.
type Spawner interface {
	IsEmpty() bool
	CreateRandom() (*ecs.Entity, error)
}

// Option configures a Map.
type Option func(*Map)

// WithRand sets the random source used for placement.
func WithRand(r Rand) Option {
	return func(m *Map) { m.rng = r }
}

// Map indexes tiles, beings and items by position.
type Map struct {
	world   *ecs.World
	tileset Tileset
	tiles   [][][]*ecs.Entity // [z][x][y]

	width, height, depth int

	beings   map[component.Position]*ecs.Entity
	items    map[component.Position][]*ecs.Entity
	explored [][][]bool

	scheduler *turn.Scheduler
	engine    *turn.Engine
	rng       Rand
}

// New builds a map over a depth-major tile grid. Width and height are taken
// from the first level.
func New(w *ecs.World, tiles [][][]*ecs.Entity, ts Tileset, opts ...Option) (*Map, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	m := &Map{
		world:   w,
		tileset: ts,
		tiles:   tiles,
		depth:   len(tiles),
		width:   len(tiles[0]),
		height:  len(tiles[0][0]),
		beings:  make(map[component.Position]*ecs.Entity),
		items:   make(map[component.Position][]*ecs.Entity),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(m)
	}
	m.scheduler = turn.NewScheduler()
	m.engine = turn.NewEngine(m.scheduler)

	m.explored = make([][][]bool, m.depth)
	for z := range m.explored {
		m.explored[z] = make([][]bool, m.width)
		for x := range m.explored[z] {
			m.explored[z][x] = make([]bool, m.height)
		}
	}
	return m, nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }
func (m *Map) Depth() int  { return m.depth }

// Tileset returns the shared tile entities.
func (m *Map) Tileset() Tileset { return m.tileset }

// Engine returns the turn engine owned by the map.
func (m *Map) Engine() *turn.Engine { return m.engine }

// Scheduler returns the scheduler driven by the engine.
func (m *Map) Scheduler() *turn.Scheduler { return m.scheduler }

// InBounds reports whether (x, y, z) is on the grid.
func (m *Map) InBounds(x, y, z int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height && z >= 0 && z < m.depth
}

// GetTile returns the tile at (x, y, z), or the null tile off the grid.
func (m *Map) GetTile(x, y, z int) *ecs.Entity {
	if !m.InBounds(x, y, z) {
		return m.tileset.Null
	}
	if t := m.tiles[z][x][y]; t != nil {
		return t
	}
	return m.tileset.Null
}

// IsNullTile reports whether t is the null tile.
func (m *Map) IsNullTile(t *ecs.Entity) bool {
	return t == nil || t == m.tileset.Null
}

// BlocksLight reports whether (x, y, z) stops light. Off-grid cells do.
func (m *Map) BlocksLight(x, y, z int) bool {
	if !m.InBounds(x, y, z) {
		return true
	}
	return tileOf(m.GetTile(x, y, z)).BlocksLight
}

// Dig turns a diggable tile into floor. It reports whether anything changed.
func (m *Map) Dig(x, y, z int) bool {
	if !m.InBounds(x, y, z) {
		return false
	}
	if !tileOf(m.GetTile(x, y, z)).Diggable {
		return false
	}
	m.tiles[z][x][y] = m.tileset.Floor
	return true
}

// GetBeingAt returns the being at (x, y, z), or nil.
func (m *Map) GetBeingAt(x, y, z int) *ecs.Entity {
	return m.beings[component.Position{X: x, Y: y, Z: z}]
}

// GetItemsAt returns the item stack at (x, y, z) in drop order. The slice
// is a copy.
func (m *Map) GetItemsAt(x, y, z int) []*ecs.Entity {
	return slices.Clone(m.items[component.Position{X: x, Y: y, Z: z}])
}

// SetItemsAt replaces the item stack at (x, y, z). An empty stack removes
// the entry.
func (m *Map) SetItemsAt(x, y, z int, items []*ecs.Entity) {
	key := component.Position{X: x, Y: y, Z: z}
	if len(items) == 0 {
		delete(m.items, key)
		return
	}
	m.items[key] = slices.Clone(items)
}

// AddItem pushes item on top of the stack at (x, y, z).
func (m *Map) AddItem(x, y, z int, item *ecs.Entity) {
	key := component.Position{X: x, Y: y, Z: z}
	m.items[key] = append(m.items[key], item)
}

// AddItemAtRandomPosition drops item on a random empty floor cell of depth z.
func (m *Map) AddItemAtRandomPosition(item *ecs.Entity, z int) error {
	p, err := m.GetRandomFloorPosition(z)
	if err != nil {
		return err
	}
	m.AddItem(p.X, p.Y, p.Z, item)
	return nil
}

// Cell is everything at one position.
type Cell struct {
	Tile  *ecs.Entity
	Being *ecs.Entity
	Items []*ecs.Entity
}

// GetAt returns the tile, being and items at (x, y, z).
func (m *Map) GetAt(x, y, z int) Cell {
	return Cell{
		Tile:  m.GetTile(x, y, z),
		Being: m.GetBeingAt(x, y, z),
		Items: m.GetItemsAt(x, y, z),
	}
}

// IsEmptyFloor reports whether (x, y, z) is plain floor with no being on it.
func (m *Map) IsEmptyFloor(x, y, z int) bool {
	return m.GetTile(x, y, z) == m.tileset.Floor && m.GetBeingAt(x, y, z) == nil
}

// GetRandomFloorPosition samples random cells of depth z until one is empty
// floor. It gives up after MaxFloorSamples samples.
func (m *Map) GetRandomFloorPosition(z int) (component.Position, error) {
	for i := 0; i < MaxFloorSamples; i++ {
		x := m.rng.Intn(m.width)
		y := m.rng.Intn(m.height)
		if m.IsEmptyFloor(x, y, z) {
			return component.Position{X: x, Y: y, Z: z}, nil
		}
	}
	return component.Position{}, fmt.Errorf("depth %d: %w", z, ErrNoFloorPosition)
}

// AddBeing indexes being at the position held in its Position component.
func (m *Map) AddBeing(being *ecs.Entity) error {
	return m.UpdateBeingPosition(being, nil)
}

// AddBeingAtRandomPosition places being on a random empty floor cell of
// depth z.
func (m *Map) AddBeingAtRandomPosition(being *ecs.Entity, z int) error {
	p, err := m.GetRandomFloorPosition(z)
	if err != nil {
		return err
	}
	being.UpdateComponent(component.CPosition, &p)
	return m.AddBeing(being)
}

// UpdateBeingPosition moves being's index entry from old (if given and still
// pointing at being) to its current position. The new position must be on
// the grid and free; on error the index is left untouched.
func (m *Map) UpdateBeingPosition(being *ecs.Entity, old *component.Position) error {
	pos := ecs.Get[*component.Position](being, component.CPosition)
	if pos == nil {
		return fmt.Errorf("being %s: %w", being.ID(), ErrNoPosition)
	}
	if !m.InBounds(pos.X, pos.Y, pos.Z) {
		return fmt.Errorf("(%d,%d,%d): %w", pos.X, pos.Y, pos.Z, ErrOutOfBounds)
	}
	key := *pos
	if occ := m.beings[key]; occ != nil && !(occ == being && old != nil && *old == key) {
		return fmt.Errorf("(%d,%d,%d): %w", pos.X, pos.Y, pos.Z, ErrOccupied)
	}
	if old != nil && m.beings[*old] == being {
		delete(m.beings, *old)
	}
	m.beings[key] = being
	return nil
}

// RemoveBeing drops being from the index and destroys it.
func (m *Map) RemoveBeing(being *ecs.Entity) {
	if pos := ecs.Get[*component.Position](being, component.CPosition); pos != nil {
		if m.beings[*pos] == being {
			delete(m.beings, *pos)
		}
	}
	m.world.DestroyEntity(being)
}

// Beings returns every indexed being ordered by depth, row then column.
func (m *Map) Beings() []*ecs.Entity {
	keys := make([]component.Position, 0, len(m.beings))
	for k := range m.beings {
		keys = append(keys, k)
	}
	sortPositions(keys)
	out := make([]*ecs.Entity, len(keys))
	for i, k := range keys {
		out[i] = m.beings[k]
	}
	return out
}

// BeingCount returns the number of indexed beings.
func (m *Map) BeingCount() int { return len(m.beings) }

// GetEntitiesWithinRadius returns the beings of depth cz inside the square
// of half-side r around (cx, cy), edges included.
func (m *Map) GetEntitiesWithinRadius(cx, cy, cz, r int) []*ecs.Entity {
	var out []*ecs.Entity
	for _, b := range m.Beings() {
		p := ecs.Get[*component.Position](b, component.CPosition)
		if p == nil || p.Z != cz {
			continue
		}
		if p.X >= cx-r && p.X <= cx+r && p.Y >= cy-r && p.Y <= cy+r {
			out = append(out, b)
		}
	}
	return out
}

// SetExplored marks (x, y, z). Off-grid coordinates are ignored.
func (m *Map) SetExplored(x, y, z int, state bool) {
	if m.InBounds(x, y, z) {
		m.explored[z][x][y] = state
	}
}

// IsExplored reports whether (x, y, z) was ever seen by the player.
func (m *Map) IsExplored(x, y, z int) bool {
	if !m.InBounds(x, y, z) {
		return false
	}
	return m.explored[z][x][y]
}

// ComputeLights runs shadowcasting on depth z from (x, y) and returns the
// resulting lightmap. visit, when non-nil, also sees every lit cell.
func (m *Map) ComputeLights(x, y, z, radius int, visit fov.VisitFunc) *fov.Lightmap {
	lm := fov.NewLightmap()
	fov.Compute(x, y, radius, func(cx, cy int) bool {
		return m.BlocksLight(cx, cy, z)
	}, func(cx, cy, r int, vis float64) {
		lm.Set(cx, cy, fov.Light(x, y, cx, cy, radius, vis))
		if visit != nil {
			visit(cx, cy, r, vis)
		}
	})
	return lm
}

// Populate places perFloor random beings and items on every depth. A
// repository with no templates is skipped.
func (m *Map) Populate(beings, items Spawner, beingsPerFloor, itemsPerFloor int) error {
	for z := 0; z < m.depth; z++ {
		if !beings.IsEmpty() {
			for i := 0; i < beingsPerFloor; i++ {
				b, err := beings.CreateRandom()
				if err != nil {
					return err
				}
				if err := m.AddBeingAtRandomPosition(b, z); err != nil {
					m.world.DestroyEntity(b)
					return err
				}
			}
		}
		if !items.IsEmpty() {
			for i := 0; i < itemsPerFloor; i++ {
				it, err := items.CreateRandom()
				if err != nil {
					return err
				}
				if err := m.AddItemAtRandomPosition(it, z); err != nil {
					m.world.DestroyEntity(it)
					return err
				}
			}
		}
	}
	return nil
}

func sortPositions(ps []component.Position) {
	slices.SortFunc(ps, func(a, b component.Position) int {
		if a.Z != b.Z {
			return a.Z - b.Z
		}
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
}
