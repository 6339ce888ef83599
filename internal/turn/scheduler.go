// Package turn paces actors one at a time. The Engine runs actors from a
// Scheduler until one of them locks it, which is how a player actor hands
// control back to the input loop.
package turn

import "slices"

// Actor takes one turn. Actors are compared by identity, so implementations
// should be pointer types.
type Actor interface {
	Act() error
}

// Scheduler is a round-robin queue. Repeating actors go back to the end of
// the queue after their turn.
type Scheduler struct {
	queue   []Actor
	repeat  []Actor
	current Actor
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler { return &Scheduler{} }

// Add enqueues a. When repeat is set the actor is rescheduled after each turn.
func (s *Scheduler) Add(a Actor, repeat bool) {
	s.queue = append(s.queue, a)
	if repeat {
		s.repeat = append(s.repeat, a)
	}
}

// Remove drops a from the queue and the repeat set. It reports whether a was
// known to the scheduler.
func (s *Scheduler) Remove(a Actor) bool {
	found := false
	if i := slices.Index(s.queue, a); i >= 0 {
		s.queue = slices.Delete(s.queue, i, i+1)
		found = true
	}
	if i := slices.Index(s.repeat, a); i >= 0 {
		s.repeat = slices.Delete(s.repeat, i, i+1)
		found = true
	}
	if s.current == a {
		s.current = nil
		found = true
	}
	return found
}

// Next returns the actor whose turn it is, or nil when nothing is scheduled.
func (s *Scheduler) Next() Actor {
	if s.current != nil && slices.Contains(s.repeat, s.current) {
		s.queue = append(s.queue, s.current)
	}
	if len(s.queue) == 0 {
		s.current = nil
		return nil
	}
	s.current = s.queue[0]
	s.queue = s.queue[1:]
	return s.current
}

// Current returns the actor that was last returned by Next.
func (s *Scheduler) Current() Actor { return s.current }

// Clear removes every actor.
func (s *Scheduler) Clear() {
	s.queue = nil
	s.repeat = nil
	s.current = nil
}

// Len returns the number of distinct scheduled actors.
func (s *Scheduler) Len() int {
	n := len(s.queue)
	if s.current != nil && slices.Contains(s.repeat, s.current) {
		n++
	}
	return n
}
