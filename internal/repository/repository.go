// Package repository is a named-template registry that builds instances on
// demand, by name or at random.
package repository

import (
	"errors"
	"fmt"
)

// ErrUnknownCreator is returned by Create for a name that was never defined.
var ErrUnknownCreator = errors.New("unknown creator")

// Rand is the subset of *math/rand.Rand used for random selection.
type Rand interface {
	Intn(n int) int
}

// Ctor turns a stored template into an instance.
type Ctor[C, I any] func(template C) (I, error)

// Repository maps template names to templates of type C and builds
// instances of type I through its constructor.
type Repository[C, I any] struct {
	name      string
	ctor      Ctor[C, I]
	rng       Rand
	names     []string
	templates map[string]C
}

// New creates an empty repository.
func New[C, I any](name string, ctor Ctor[C, I], rng Rand) *Repository[C, I] {
	return &Repository[C, I]{
		name:      name,
		ctor:      ctor,
		rng:       rng,
		templates: make(map[string]C),
	}
}

// Name returns the repository name used in error messages.
func (r *Repository[C, I]) Name() string { return r.name }

// Define registers template under name. Redefining a name silently replaces
// the earlier template; the name keeps its original position.
func (r *Repository[C, I]) Define(name string, template C) {
	if _, ok := r.templates[name]; !ok {
		r.names = append(r.names, name)
	}
	r.templates[name] = template
}

// Template returns the template stored under name.
func (r *Repository[C, I]) Template(name string) (C, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Create builds an instance of the named template. An empty name yields the
// zero instance and no error.
func (r *Repository[C, I]) Create(name string) (I, error) {
	var zero I
	if name == "" {
		return zero, nil
	}
	t, ok := r.templates[name]
	if !ok {
		return zero, fmt.Errorf("No creator named '%s' in repository '%s': %w", name, r.name, ErrUnknownCreator)
	}
	return r.ctor(t)
}

// CreateRandom builds an instance of a uniformly chosen template. Callers
// should check IsEmpty first; an empty repository yields the zero instance.
func (r *Repository[C, I]) CreateRandom() (I, error) {
	if len(r.names) == 0 {
		var zero I
		return zero, nil
	}
	return r.Create(r.names[r.rng.Intn(len(r.names))])
}

// IsEmpty reports whether no template is defined.
func (r *Repository[C, I]) IsEmpty() bool { return len(r.names) == 0 }

// Names returns the defined names in first-definition order.
func (r *Repository[C, I]) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
