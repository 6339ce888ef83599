// Package generate builds dungeon layouts: BSP rooms joined by corridors on
// each depth, with stairs linking neighbouring depths.
package generate

import (
	"errors"
	"math/rand"

	"glyphcrawl/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// ErrTooSmall is returned when the requested dimensions cannot hold a room.
var ErrTooSmall = errors.New("generate: map too small")

// Config drives procedural generation.
type Config struct {
	Width, Height, Depth int
	MinLeafSize          int
	MaxLeafSize          int
	MinRoomSize          int
	RoomPadding          int
	CorridorStyle        CorridorStyle
	Rand                 *rand.Rand
}

// DefaultConfig returns the usual leaf and room sizes for a map of the given
// dimensions.
func DefaultConfig(width, height, depth int, rng *rand.Rand) *Config {
	return &Config{
		Width:       width,
		Height:      height,
		Depth:       depth,
		MinLeafSize: 8,
		MaxLeafSize: 20,
		MinRoomSize: 4,
		RoomPadding: 1,
		Rand:        rng,
	}
}

// Level is the layout of one depth, indexed [y][x].
type Level struct {
	Width, Height int
	Tiles         [][]gamemap.TileKind
	Rooms         []gamemap.Rect
}

func newLevel(w, h int) *Level {
	tiles := make([][]gamemap.TileKind, h)
	for y := range tiles {
		tiles[y] = make([]gamemap.TileKind, w) // KindWall is the zero value
	}
	return &Level{Width: w, Height: h, Tiles: tiles}
}

// InBounds reports whether (x, y) lies inside the level.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// At returns the kind at (x, y); off-level cells are walls.
func (l *Level) At(x, y int) gamemap.TileKind {
	if !l.InBounds(x, y) {
		return gamemap.KindWall
	}
	return l.Tiles[y][x]
}

// Set stores k at (x, y). Off-level writes are dropped.
func (l *Level) Set(x, y int, k gamemap.TileKind) {
	if l.InBounds(x, y) {
		l.Tiles[y][x] = k
	}
}

// Walkable reports whether (x, y) is floor or stairs.
func (l *Level) Walkable(x, y int) bool {
	return l.At(x, y) != gamemap.KindWall
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Split across the long side when the leaf is clearly elongated.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	split := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: split}
		l.right = &bspLeaf{X: l.X, Y: l.Y + split, W: l.W, H: l.H - split}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: split, H: l.H}
		l.right = &bspLeaf{X: l.X + split, Y: l.Y, W: l.W - split, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(lvl *Level, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(lvl, cfg)
		}
		if l.right != nil {
			l.right.createRooms(lvl, cfg)
		}
		return
	}
	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize

	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := minSize + cfg.Rand.Intn(max(1, availW-minSize+1))
	rh := minSize + cfg.Rand.Intn(max(1, availH-minSize+1))
	rw = max(min(rw, l.W-2*pad), 3)
	rh = max(min(rh, l.H-2*pad), 3)

	rx := l.X + pad + cfg.Rand.Intn(max(1, l.W-rw-2*pad+1))
	ry := l.Y + pad + cfg.Rand.Intn(max(1, l.H-rh-2*pad+1))

	// Keep a one-tile wall border around the level.
	rx = max(rx, 1)
	ry = max(ry, 1)
	if rx+rw >= lvl.Width {
		rw = lvl.Width - rx - 1
	}
	if ry+rh >= lvl.Height {
		rh = lvl.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			lvl.Set(x, y, gamemap.KindFloor)
		}
	}
	lvl.Rooms = append(lvl.Rooms, room)
}

// getRoom returns a room from this leaf or its descendants.
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	if l.left != nil {
		if r := l.left.getRoom(); r != nil {
			return r
		}
	}
	if l.right != nil {
		return l.right.getRoom()
	}
	return nil
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(lvl *Level, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(lvl, cfg)
	l.right.connectChildren(lvl, cfg)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	carveCorridor(lvl, lCX, lCY, rCX, rCY, cfg)
}

// GenerateLevel runs BSP generation for a single depth.
func GenerateLevel(cfg *Config) *Level {
	lvl := newLevel(cfg.Width, cfg.Height)
	root := &bspLeaf{X: 0, Y: 0, W: cfg.Width, H: cfg.Height}

	leaves := []*bspLeaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize ||
				cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(lvl, cfg)
	root.connectChildren(lvl, cfg)
	return lvl
}

// Generate builds every depth and links each pair of neighbouring depths
// with a stairs-down/stairs-up pair at the same (x, y). The result is
// depth-major and indexed [z][y][x], ready for Tileset.Grid.
func Generate(cfg *Config) ([][][]gamemap.TileKind, error) {
	if cfg.Width < 5 || cfg.Height < 5 || cfg.Depth < 1 {
		return nil, ErrTooSmall
	}
	levels := make([]*Level, cfg.Depth)
	for z := range levels {
		levels[z] = GenerateLevel(cfg)
		if len(levels[z].Rooms) == 0 {
			return nil, ErrTooSmall
		}
	}
	for z := 0; z < cfg.Depth-1; z++ {
		placeStairs(levels[z], levels[z+1], cfg)
	}
	out := make([][][]gamemap.TileKind, cfg.Depth)
	for z, lvl := range levels {
		out[z] = lvl.Tiles
	}
	return out, nil
}
