package component

// Position is a cell on the map. (-1, -1, -1) means not placed yet.
type Position struct {
	X, Y, Z int
}

// Offset returns the position moved by (dx, dy, dz).
func (p Position) Offset(dx, dy, dz int) Position {
	return Position{p.X + dx, p.Y + dy, p.Z + dz}
}
