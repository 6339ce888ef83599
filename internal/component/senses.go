package component

import "glyphcrawl/internal/fov"

// Perception is the radius within which the entity hears broadcasts.
type Perception struct {
	Radius int
}

// Sight caches what an entity sees. Visible is valid only while
// LastPosition equals the entity's position.
type Sight struct {
	Radius       int
	Visible      *fov.Lightmap
	LastPosition Position
	Direction    int
}
