package event

// Handler receives the payload passed to DispatchEvent.
type Handler func(payload any)

// ListenerID identifies one registration so it can be removed later.
// Go funcs are not comparable, so removal goes through this handle.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn Handler
}

// Dispatcher is a per-object table of named events to ordered listeners.
// The zero value is ready to use.
type Dispatcher struct {
	nextID   ListenerID
	handlers map[string][]listener
}

// AddEventListener registers fn for name. Listeners run in registration order.
func (d *Dispatcher) AddEventListener(name string, fn Handler) ListenerID {
	if d.handlers == nil {
		d.handlers = make(map[string][]listener)
	}
	d.nextID++
	id := d.nextID
	// Copy-on-write so a dispatch already iterating keeps its own slice.
	cur := d.handlers[name]
	next := make([]listener, len(cur), len(cur)+1)
	copy(next, cur)
	d.handlers[name] = append(next, listener{id: id, fn: fn})
	return id
}

// RemoveEventListener drops the listener registered under id. Unknown ids are ignored.
func (d *Dispatcher) RemoveEventListener(name string, id ListenerID) {
	cur, ok := d.handlers[name]
	if !ok {
		return
	}
	next := make([]listener, 0, len(cur))
	for _, l := range cur {
		if l.id != id {
			next = append(next, l)
		}
	}
	if len(next) == 0 {
		delete(d.handlers, name)
		return
	}
	d.handlers[name] = next
}

// RemoveEventListeners drops every listener for name.
func (d *Dispatcher) RemoveEventListeners(name string) {
	delete(d.handlers, name)
}

// DispatchEvent calls every listener of name with payload.
// The listener list is snapshotted first; listeners added or removed
// during dispatch take effect on the next dispatch.
func (d *Dispatcher) DispatchEvent(name string, payload any) {
	snapshot := d.handlers[name]
	for _, l := range snapshot {
		l.fn(payload)
	}
}

// ListenerCount reports how many listeners are registered for name.
func (d *Dispatcher) ListenerCount(name string) int {
	return len(d.handlers[name])
}

// ClearListeners removes all listeners for all events.
func (d *Dispatcher) ClearListeners() {
	d.handlers = nil
}

// On registers a listener whose payload is asserted to T.
// Payloads of any other type are ignored.
func On[T any](d *Dispatcher, name string, fn func(T)) ListenerID {
	return d.AddEventListener(name, func(payload any) {
		if v, ok := payload.(T); ok {
			fn(v)
		}
	})
}
