package generate

import "glyphcrawl/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2). Existing stairs
// are left in place.
func carveCorridor(lvl *Level, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		carveZShaped(lvl, x1, y1, x2, y2)
	case CorridorStraight:
		carveH(lvl, x1, x2, y1)
		carveV(lvl, y1, y2, x2)
	default:
		if cfg.Rand.Intn(2) == 0 {
			carveH(lvl, x1, x2, y1)
			carveV(lvl, y1, y2, x2)
		} else {
			carveV(lvl, y1, y2, x1)
			carveH(lvl, x1, x2, y2)
		}
	}
}

func carve(lvl *Level, x, y int) {
	if lvl.At(x, y) == gamemap.KindWall {
		lvl.Set(x, y, gamemap.KindFloor)
	}
}

func carveH(lvl *Level, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		carve(lvl, x, y)
	}
}

func carveV(lvl *Level, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		carve(lvl, x, y)
	}
}

func carveZShaped(lvl *Level, x1, y1, x2, y2 int) {
	midY := (y1 + y2) / 2
	carveV(lvl, y1, midY, x1)
	carveH(lvl, x1, x2, midY)
	carveV(lvl, midY, y2, x2)
}
