package generate

import "glyphcrawl/internal/gamemap"

// placeStairs puts stairs down on upper and stairs up on lower at one cell
// that is plain floor on both. When the layouts share no such cell, a room
// center of upper is carved into lower and tunnelled to lower's first room.
func placeStairs(upper, lower *Level, cfg *Config) {
	var overlap [][2]int
	for y := 0; y < upper.Height; y++ {
		for x := 0; x < upper.Width; x++ {
			if upper.At(x, y) == gamemap.KindFloor && lower.At(x, y) == gamemap.KindFloor {
				overlap = append(overlap, [2]int{x, y})
			}
		}
	}

	var x, y int
	if len(overlap) > 0 {
		p := overlap[cfg.Rand.Intn(len(overlap))]
		x, y = p[0], p[1]
	} else {
		x, y = floorCenter(upper, cfg.Rand.Intn(len(upper.Rooms)))
		tx, ty := lower.Rooms[0].Center()
		carveCorridor(lower, x, y, tx, ty, cfg)
	}
	upper.Set(x, y, gamemap.KindStairsDown)
	lower.Set(x, y, gamemap.KindStairsUp)
}

// floorCenter returns the center of the first room, starting at start, whose
// center is plain floor.
func floorCenter(lvl *Level, start int) (int, int) {
	for i := range lvl.Rooms {
		x, y := lvl.Rooms[(start+i)%len(lvl.Rooms)].Center()
		if lvl.At(x, y) == gamemap.KindFloor {
			return x, y
		}
	}
	r := lvl.Rooms[start]
	return r.X1, r.Y1
}
