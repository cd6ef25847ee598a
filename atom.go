package ion

import "sync"

// subscriber pairs a registration id with its callback. Ids are unique
// for the atom's lifetime and monotonically increasing.
type subscriber struct {
	id uint64
	fn func()
}

// Atom is a single mutable reactive value with its own subscriber list.
// It is the unit of state: the Store addresses atoms by key, computed
// cells subscribe to them for invalidation, and the Batcher coalesces
// their notifications.
//
// All methods are safe for concurrent use. Notification callbacks are
// never invoked while the atom's internal lock is held, so a callback
// may freely re-enter the atom (or the store that owns it).
type Atom struct {
	mu     sync.Mutex
	value  Value
	subs   []subscriber
	nextID uint64
	dirty  bool
}

// NewAtom creates an atom holding the given initial value.
func NewAtom(initial Value) *Atom {
	return &Atom{value: initial}
}

// Value returns the current value. Scalar kinds are copied; object
// kinds share their underlying data with the caller (see Value).
func (a *Atom) Value() Value {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

// setValue replaces the value and marks the atom dirty. Notification is
// the caller's responsibility: the write path either notifies
// immediately or enqueues the atom into a Batcher.
func (a *Atom) setValue(v Value) {
	a.mu.Lock()
	a.value = v
	a.dirty = true
	a.mu.Unlock()
}

// Subscribe registers a callback invoked when the atom's value changes
// (subject to batching) and returns its registration id.
func (a *Atom) Subscribe(fn func()) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.subs = append(a.subs, subscriber{id: id, fn: fn})
	return id
}

// Unsubscribe removes the registration with the given id. Removing an
// unknown id is a no-op.
func (a *Atom) Unsubscribe(id uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, s := range a.subs {
		if s.id == id {
			a.subs = append(a.subs[:i], a.subs[i+1:]...)
			return
		}
	}
}

// Notify invokes every currently registered callback in subscription
// order, if the atom is dirty. The callback list is snapshotted under
// the lock and invoked outside it: subscriptions added or removed by a
// callback take effect for subsequent passes, never the current one.
//
// Notify does not clear the dirty flag; the caller does, via MarkClean,
// once the notification pass completes.
func (a *Atom) Notify() {
	a.mu.Lock()
	if !a.dirty {
		a.mu.Unlock()
		return
	}
	snapshot := make([]func(), len(a.subs))
	for i, s := range a.subs {
		snapshot[i] = s.fn
	}
	a.mu.Unlock()

	for _, fn := range snapshot {
		fn()
	}
}

// Dirty reports whether the value changed since the last MarkClean.
func (a *Atom) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

// MarkClean clears the dirty flag after a notification pass.
func (a *Atom) MarkClean() {
	a.mu.Lock()
	a.dirty = false
	a.mu.Unlock()
}
