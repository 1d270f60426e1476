package pass

import "sync"

// Listener is notified once for every descriptor registered with a Registry.
type Listener interface {
	PassRegistered(d *Descriptor)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(d *Descriptor)

// PassRegistered calls f(d).
func (f ListenerFunc) PassRegistered(d *Descriptor) { f(d) }

// Registry holds descriptors in registration order and forwards new
// registrations to subscribed listeners.
type Registry struct {
	mu        sync.RWMutex
	passes    []*Descriptor
	listeners []Listener
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends d and notifies every current listener, in subscription order.
// The registry does not reject duplicate arguments; each option decides that.
func (r *Registry) Register(d *Descriptor) {
	r.mu.Lock()
	r.passes = append(r.passes, d)
	listeners := make([]Listener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, l := range listeners {
		l.PassRegistered(d)
	}
}

// Subscribe adds l and replays every descriptor registered so far to it,
// in registration order. Later registrations reach l through Register.
func (r *Registry) Subscribe(l Listener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	known := make([]*Descriptor, len(r.passes))
	copy(known, r.passes)
	r.mu.Unlock()

	for _, d := range known {
		l.PassRegistered(d)
	}
}

// All returns all descriptors in registration order.
func (r *Registry) All() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, len(r.passes))
	copy(out, r.passes)
	return out
}

// Lookup returns the first descriptor registered under arg, or nil.
func (r *Registry) Lookup(arg string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.passes {
		if d.Arg == arg {
			return d
		}
	}
	return nil
}
