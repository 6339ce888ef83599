package render

// Camera translates between map coordinates and screen coordinates. One map
// cell occupies one terminal column.
type Camera struct {
	Left       int
	Top        int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera with the given viewport size.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Follow centers the viewport on (cx, cy) without scrolling past the map
// edges. A map narrower than the viewport is pinned to the left or top.
func (c *Camera) Follow(cx, cy, mapW, mapH int) {
	c.Left = max(0, min(cx-c.ViewWidth/2, mapW-c.ViewWidth))
	c.Top = max(0, min(cy-c.ViewHeight/2, mapH-c.ViewHeight))
}

// WorldToScreen converts map (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = wx - c.Left
	sy = wy - c.Top
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to map coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx + c.Left, sy + c.Top
}
