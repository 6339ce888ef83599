package ecs

import "glyphcrawl/internal/event"

// SystemID is the stable handle of one system type. Component lookup and
// entity-set membership are keyed by it, never by system name.
type SystemID uint8

// Component is the opaque per-system, per-entity data blob. Only the owning
// system knows its concrete type.
type Component any

// Entity is an identity plus the components of the systems mounted on it.
// Capability is exactly the set of mounted systems.
type Entity struct {
	event.Dispatcher

	id         string
	components map[SystemID]Component
	destroyed  bool
}

func newEntity(id string) *Entity {
	return &Entity{id: id, components: make(map[SystemID]Component)}
}

// ID returns the entity's unique identifier.
func (e *Entity) ID() string { return e.id }

// Alive reports whether the entity has not been destroyed.
func (e *Entity) Alive() bool { return !e.destroyed }

// MountComponent builds the component through sys, stores it (overwriting any
// previous blob for the same system) and runs the system's mount hook.
func (e *Entity) MountComponent(sys System, params ...any) Component {
	c := sys.CreateComponent(params...)
	e.components[sys.ID()] = c
	if m, ok := sys.(Mounter); ok {
		m.MountEntity(e, c)
	}
	return c
}

// UpdateComponent replaces the component for id wholesale.
func (e *Entity) UpdateComponent(id SystemID, c Component) {
	e.components[id] = c
}

// UnmountComponent deletes the component and runs the system's unmount hook.
func (e *Entity) UnmountComponent(sys System) {
	if _, ok := e.components[sys.ID()]; !ok {
		return
	}
	delete(e.components, sys.ID())
	if u, ok := sys.(Unmounter); ok {
		u.UnmountEntity(e)
	}
}

// HasSystem reports whether a component for id is mounted.
func (e *Entity) HasSystem(id SystemID) bool {
	_, ok := e.components[id]
	return ok
}

// GetComponent returns the component for id, or nil.
func (e *Entity) GetComponent(id SystemID) Component {
	return e.components[id]
}

// Get returns the component for id asserted to T. The zero value is returned
// when the component is missing or of another type.
func Get[T any](e *Entity, id SystemID) T {
	v, _ := e.components[id].(T)
	return v
}

// Modify runs fn on the component for id and stores the result back.
// It reports false when the entity has no such component.
func Modify[T any](e *Entity, id SystemID, fn func(T)) bool {
	v, ok := e.components[id].(T)
	if !ok {
		return false
	}
	fn(v)
	e.components[id] = v
	return true
}
