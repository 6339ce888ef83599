package component

// Destructible makes an entity take damage and die at HP <= 0.
type Destructible struct {
	HP, MaxHP int
	Defense   int
}

type Attack struct {
	Value int
}
