// Package fov computes field of view with recursive shadowcasting and turns
// the result into sparse lightmaps.
package fov

// Octant transform matrices. A sweep offset (dx, dy) maps to the world as
//
//	x = cx + dx*xx + dy*xy
//	y = cy + dx*yx + dy*yy
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// BlocksFunc reports whether light cannot pass through (x, y). It must
// return true outside the map.
type BlocksFunc func(x, y int) bool

// VisitFunc receives every visible cell with its row distance r from the
// origin and its visibility in [0, 1]. A cell on an octant boundary may be
// visited more than once.
type VisitFunc func(x, y, r int, visibility float64)

// Compute runs shadowcasting from (cx, cy) out to radius. The origin is
// always visited with r = 0.
func Compute(cx, cy, radius int, blocks BlocksFunc, visit VisitFunc) {
	visit(cx, cy, 0, 1)
	for _, m := range octants {
		castLight(cx, cy, 1, 1.0, 0.0, radius, m, blocks, visit)
	}
}

func castLight(cx, cy, row int, start, end float64, radius int, m [4]int, blocks BlocksFunc, visit VisitFunc) {
	if start < end {
		return
	}
	radiusSq := radius * radius
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*m[0] + dy*m[1]
			wy := cy + dx*m[2] + dy*m[3]

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dx*dx+dy*dy < radiusSq {
				visit(wx, wy, j, 1)
			}

			opaque := blocks(wx, wy)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(cx, cy, j+1, start, lSlope, radius, m, blocks, visit)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
