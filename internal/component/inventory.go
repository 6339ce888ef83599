package component

import "glyphcrawl/internal/ecs"

// Inventory is a fixed number of slots. A nil slot is empty.
type Inventory struct {
	Size  int
	Items []*ecs.Entity
}
