package component

type Tile struct {
	Diggable    bool
	Walkable    bool
	BlocksLight bool
}
