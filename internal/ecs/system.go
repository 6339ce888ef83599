package ecs

// System encapsulates one capability. Systems are stateless by convention;
// per-entity state lives in the components they create.
type System interface {
	ID() SystemID
	Name() string
	CreateComponent(params ...any) Component
}

// Updater is implemented by systems that act once per world tick.
type Updater interface {
	Update(entities []*Entity, w *World) error
}

// Mounter is implemented by systems that react to being mounted on an entity,
// typically by attaching event listeners.
type Mounter interface {
	MountEntity(e *Entity, c Component)
}

// Unmounter is the counterpart of Mounter.
type Unmounter interface {
	UnmountEntity(e *Entity)
}

// Spec pairs a system with the parameters for its CreateComponent.
type Spec struct {
	System System
	Params []any
}

// Assemblage is an ordered list of systems mounted together at creation.
// Order matters: later mounts may rely on earlier components being present.
type Assemblage []Spec

// CreateInstance creates a new entity in w with every spec mounted in order.
func (a Assemblage) CreateInstance(w *World, id string) *Entity {
	return w.CreateEntity(id, a...)
}

// Has reports whether the assemblage mounts the system id.
func (a Assemblage) Has(id SystemID) bool {
	for _, s := range a {
		if s.System.ID() == id {
			return true
		}
	}
	return false
}
