package ecs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Well-known keys of the world's shared context.
const (
	KeyMap     = "map"
	KeyPlayer  = "player"
	KeyDisplay = "display"
	KeyGame    = "game"
	KeyBeings  = "beings"
	KeyItems   = "items"
	KeyCombat  = "combat"
	KeySound   = "sound"
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for tick diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithFailureIsolation makes Tick keep running the remaining systems when one
// fails. Every failure is logged and the joined error is returned.
func WithFailureIsolation() Option {
	return func(w *World) { w.isolate = true }
}

// Query selects entities mounted with any of Is and none of Not.
type Query struct {
	Is  []SystemID
	Not []SystemID
}

// World is the entity registry: registered systems in registration order,
// per-system entity lists and a shared context map.
type World struct {
	log     *zap.Logger
	isolate bool

	systems []System
	byID    map[SystemID]System
	// Lists are replaced, never mutated in place, so a snapshot taken at
	// tick start stays valid while systems mount and unmount.
	mounted map[SystemID][]*Entity

	ctx         map[string]any
	entityCount int
	ticks       uint64
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		log:     zap.NewNop(),
		byID:    make(map[SystemID]System),
		mounted: make(map[SystemID][]*Entity),
		ctx:     make(map[string]any),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Logger returns the world's logger.
func (w *World) Logger() *zap.Logger { return w.log }

// RegisterSystem adds s to the tick order. Registering twice is a no-op.
func (w *World) RegisterSystem(s System) {
	if _, ok := w.byID[s.ID()]; ok {
		return
	}
	w.byID[s.ID()] = s
	w.systems = append(w.systems, s)
}

// System returns the registered system for id, or nil.
func (w *World) System(id SystemID) System { return w.byID[id] }

// Systems returns the registered systems in tick order.
func (w *World) Systems() []System { return slices.Clone(w.systems) }

// CreateEntity creates an entity and mounts each spec in order. An empty id
// gets a fresh UUID.
func (w *World) CreateEntity(id string, specs ...Spec) *Entity {
	if id == "" {
		id = uuid.NewString()
	}
	w.entityCount++
	e := newEntity(id)
	for _, s := range specs {
		w.MountSystem(e, s.System, s.Params...)
	}
	return e
}

// MountSystem mounts s on e. Mounting an already mounted system does
// nothing, so listeners are never attached twice.
func (w *World) MountSystem(e *Entity, s System, params ...any) {
	if e.HasSystem(s.ID()) {
		return
	}
	w.RegisterSystem(s)
	list := w.mounted[s.ID()]
	next := make([]*Entity, len(list), len(list)+1)
	copy(next, list)
	w.mounted[s.ID()] = append(next, e)
	e.MountComponent(s, params...)
}

// UnmountSystem removes s from e. Unmounting a system that is not mounted
// does nothing.
func (w *World) UnmountSystem(e *Entity, s System) {
	if !e.HasSystem(s.ID()) {
		return
	}
	list := w.mounted[s.ID()]
	if i := slices.Index(list, e); i >= 0 {
		w.mounted[s.ID()] = append(append([]*Entity(nil), list[:i]...), list[i+1:]...)
	}
	e.UnmountComponent(s)
}

// DestroyEntity unmounts every system from e and drops its listeners.
func (w *World) DestroyEntity(e *Entity) {
	if e.destroyed {
		return
	}
	for _, s := range w.systems {
		w.UnmountSystem(e, s)
	}
	e.ClearListeners()
	e.destroyed = true
}

// Entities returns the entities mounted with id, in mount order.
func (w *World) Entities(id SystemID) []*Entity {
	return slices.Clone(w.mounted[id])
}

// GetQueries returns the union of entities mounted with any Is system, in
// Is order without duplicates, minus those mounted with any Not system.
func (w *World) GetQueries(q Query) []*Entity {
	seen := make(map[*Entity]bool)
	var out []*Entity
	for _, id := range q.Is {
		for _, e := range w.mounted[id] {
			if seen[e] {
				continue
			}
			seen[e] = true
			excluded := false
			for _, n := range q.Not {
				if e.HasSystem(n) {
					excluded = true
					break
				}
			}
			if !excluded {
				out = append(out, e)
			}
		}
	}
	return out
}

// Tick runs every registered Updater once, in registration order. Each
// system sees the entity list as it was when the tick began, filtered to
// those still mounted when its turn comes: entities spawned mid-tick wait
// for the next tick and destroyed ones are skipped.
//
// By default the first failing system aborts the tick.
func (w *World) Tick() error {
	w.ticks++
	systems := slices.Clone(w.systems)
	snapshot := make([][]*Entity, len(systems))
	for i, s := range systems {
		snapshot[i] = w.mounted[s.ID()]
	}

	var errs []error
	for i, s := range systems {
		u, ok := s.(Updater)
		if !ok {
			continue
		}
		live := make([]*Entity, 0, len(snapshot[i]))
		for _, e := range snapshot[i] {
			if e.HasSystem(s.ID()) {
				live = append(live, e)
			}
		}
		if err := u.Update(live, w); err != nil {
			err = fmt.Errorf("system %s: %w", s.Name(), err)
			if !w.isolate {
				return err
			}
			w.log.Error("system update failed",
				zap.String("system", s.Name()),
				zap.Uint64("tick", w.ticks),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Ticks returns how many ticks have started.
func (w *World) Ticks() uint64 { return w.ticks }

// EntityCount returns how many entities w has ever created. Destroying an
// entity does not lower it.
func (w *World) EntityCount() int { return w.entityCount }

// GetVal returns a shared context value, or nil.
func (w *World) GetVal(key string) any { return w.ctx[key] }

// SetVal stores a shared context value.
func (w *World) SetVal(key string, v any) { w.ctx[key] = v }
