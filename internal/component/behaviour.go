package component

// Movement kinds.
const (
	MoveRandom = "random"
)

type Movement struct {
	Kind string
}

// Fungus spreads copies of itself while growths remain.
type Fungus struct {
	GrowthsRemaining int
}

// Marker components carry no data.
type (
	Player        struct{}
	MessageLogger struct{}
	Bat           struct{}
	BigSlime      struct{}
	SmallSlime    struct{}
	Sound         struct{}
)
