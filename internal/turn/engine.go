package turn

import "errors"

// ErrNotLocked is returned by Unlock on an engine that is already running.
var ErrNotLocked = errors.New("cannot unlock unlocked engine")

// Engine drives a Scheduler. It starts locked; every Lock must be matched by
// an Unlock before actors run again.
type Engine struct {
	scheduler *Scheduler
	lock      int
}

// NewEngine returns a locked engine over s.
func NewEngine(s *Scheduler) *Engine {
	return &Engine{scheduler: s, lock: 1}
}

// Scheduler returns the scheduler driven by e.
func (e *Engine) Scheduler() *Scheduler { return e.scheduler }

// Start begins running actors.
func (e *Engine) Start() error { return e.Unlock() }

// Lock suspends the engine.
func (e *Engine) Lock() { e.lock++ }

// Locked reports whether the engine is suspended.
func (e *Engine) Locked() bool { return e.lock > 0 }

// Unlock releases one lock. Once fully unlocked it runs actors until one of
// them locks the engine, the scheduler runs dry or an actor fails. A failing
// actor leaves the engine locked.
func (e *Engine) Unlock() error {
	if e.lock == 0 {
		return ErrNotLocked
	}
	e.lock--
	for e.lock == 0 {
		a := e.scheduler.Next()
		if a == nil {
			e.Lock()
			return nil
		}
		if err := a.Act(); err != nil {
			e.Lock()
			return err
		}
	}
	return nil
}
