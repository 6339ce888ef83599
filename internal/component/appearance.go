package component

// Appearance is how an entity is drawn. Colours are tcell colour names.
type Appearance struct {
	Ch string
	Fg string
	Bg string
}
