package ion

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/capitan"
)

// Store is a registry of atoms and computed cells addressed by
// caller-chosen string keys. Atoms and computed cells occupy separate
// namespaces, each unique per map.
//
// All methods are safe for concurrent use. The store's lock guards only
// its maps; subscriber callbacks and compute functions always run with
// no internal lock held, so a callback may re-enter the store (write
// another atom, unsubscribe itself, open a batch) without deadlocking.
type Store struct {
	mu       sync.Mutex
	atoms    map[string]*Atom
	computed map[string]*Computed

	batcher  *Batcher
	strict   bool
	failures *errorRing
}

// New creates an empty store.
//
// Example:
//
//	store := ion.New()
//	store.CreateAtom(ctx, "count", ion.Number(0))
//	unsub, _ := store.SubscribeAtom("count", func() {
//	    fmt.Println("count changed")
//	})
//	defer unsub()
//	store.SetAtomValue(ctx, "count", ion.Number(1))
func New(opts ...Option) *Store {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	batcher := cfg.batcher
	if batcher == nil {
		batcher = NewBatcher()
	}

	return &Store{
		atoms:    make(map[string]*Atom),
		computed: make(map[string]*Computed),
		batcher:  batcher,
		strict:   cfg.strict,
		failures: newErrorRing(cfg.ringSize),
	}
}

// CreateAtom registers a new atom under key with the given initial
// value. Returns ErrAlreadyExists if the key is taken.
func (s *Store) CreateAtom(ctx context.Context, key string, initial Value) error {
	s.mu.Lock()
	if _, ok := s.atoms[key]; ok {
		s.mu.Unlock()
		return fmt.Errorf("create atom %q: %w", key, ErrAlreadyExists)
	}
	s.atoms[key] = NewAtom(initial)
	s.mu.Unlock()

	capitan.Emit(ctx, AtomCreated,
		KeyKey.Field(key),
	)
	return nil
}

// AtomValue returns the atom's current value. Returns ErrNotFound if
// the key is absent.
func (s *Store) AtomValue(key string) (Value, error) {
	s.mu.Lock()
	a, ok := s.atoms[key]
	s.mu.Unlock()
	if !ok {
		return Value{}, fmt.Errorf("get atom %q: %w", key, ErrNotFound)
	}
	return a.Value(), nil
}

// SetAtomValue replaces the atom's value and marks it dirty. Outside a
// batch, subscribers are notified immediately, then the atom is marked
// clean; inside a batch, the atom is enqueued and notified once when
// the outermost batch ends. Returns ErrNotFound if the key is absent.
func (s *Store) SetAtomValue(ctx context.Context, key string, v Value) error {
	s.mu.Lock()
	a, ok := s.atoms[key]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("set atom %q: %w", key, ErrNotFound)
	}

	a.setValue(v)

	if !s.batcher.enqueue(a) {
		a.Notify()
		a.MarkClean()
	}

	capitan.Emit(ctx, AtomUpdated,
		KeyKey.Field(key),
		KeyDepth.Field(s.batcher.Depth()),
	)
	return nil
}

// SubscribeAtom registers a callback invoked when the atom changes and
// returns an unsubscribe function. Unsubscribing twice is harmless.
// Returns ErrNotFound if the key is absent.
func (s *Store) SubscribeAtom(key string, fn func()) (func(), error) {
	s.mu.Lock()
	a, ok := s.atoms[key]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("subscribe atom %q: %w", key, ErrNotFound)
	}

	id := a.Subscribe(fn)
	return func() {
		a.Unsubscribe(id)
	}, nil
}

// DeleteAtom removes the atom under key. Deleting an absent key is a
// no-op. Computed cells still subscribed to a deleted atom keep it
// alive for their own teardown, but no write can reach it once it
// leaves the registry.
func (s *Store) DeleteAtom(ctx context.Context, key string) {
	s.mu.Lock()
	_, ok := s.atoms[key]
	delete(s.atoms, key)
	s.mu.Unlock()

	if ok {
		capitan.Emit(ctx, AtomDeleted,
			KeyKey.Field(key),
		)
	}
}

// CreateComputed registers a computed cell under key, depending on the
// atoms named by depKeys. Returns ErrAlreadyExists if the key is taken.
//
// Dependency keys that do not resolve to an existing atom are silently
// skipped — they contribute no subscription. Construct the store with
// WithStrictDependencies to get ErrNotFound instead, which surfaces
// typos at creation time.
//
// Dependencies resolve against the atom namespace only; chaining one
// computed cell on another is not supported.
func (s *Store) CreateComputed(ctx context.Context, key string, depKeys []string, fn ComputeFunc) error {
	s.mu.Lock()
	if _, ok := s.computed[key]; ok {
		s.mu.Unlock()
		return fmt.Errorf("create computed %q: %w", key, ErrAlreadyExists)
	}

	if s.strict {
		for _, dk := range depKeys {
			if _, ok := s.atoms[dk]; !ok {
				s.mu.Unlock()
				return fmt.Errorf("create computed %q: dependency %q: %w", key, dk, ErrNotFound)
			}
		}
	}

	c := NewComputed(fn)
	wired := 0
	for _, dk := range depKeys {
		if a, ok := s.atoms[dk]; ok {
			c.AddDependency(a)
			wired++
		}
	}
	s.computed[key] = c
	s.mu.Unlock()

	capitan.Emit(ctx, ComputedCreated,
		KeyKey.Field(key),
		KeyDeps.Field(wired),
	)
	return nil
}

// ComputedValue returns the computed cell's value, recomputing first if
// it is stale. A failed recompute is returned as a *ComputeError and
// leaves the cell's cached state untouched, so calling again retries.
// Returns ErrNotFound if the key is absent.
func (s *Store) ComputedValue(ctx context.Context, key string) (Value, error) {
	s.mu.Lock()
	c, ok := s.computed[key]
	s.mu.Unlock()
	if !ok {
		return Value{}, fmt.Errorf("get computed %q: %w", key, ErrNotFound)
	}

	v, recomputed, err := c.get(ctx)
	if err != nil {
		ce := &ComputeError{Key: key, Err: err}
		s.failures.push(ce)
		capitan.Emit(ctx, ComputeFailed,
			KeyKey.Field(key),
			KeyError.Field(err.Error()),
		)
		return Value{}, ce
	}

	if recomputed {
		capitan.Emit(ctx, ComputedRecomputed,
			KeyKey.Field(key),
		)
	}
	return v, nil
}

// DeleteComputed removes the computed cell under key and unsubscribes
// it from its dependencies. Deleting an absent key is a no-op.
func (s *Store) DeleteComputed(ctx context.Context, key string) {
	s.mu.Lock()
	c, ok := s.computed[key]
	delete(s.computed, key)
	s.mu.Unlock()

	if !ok {
		return
	}
	c.Detach()
	capitan.Emit(ctx, ComputedDeleted,
		KeyKey.Field(key),
	)
}

// HasAtom reports whether an atom is registered under key.
func (s *Store) HasAtom(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.atoms[key]
	return ok
}

// AtomKeys returns the registered atom keys in no particular order.
func (s *Store) AtomKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.atoms))
	for k := range s.atoms {
		keys = append(keys, k)
	}
	return keys
}

// StartBatch opens a batch scope on the store's batcher.
func (s *Store) StartBatch() {
	s.batcher.StartBatch()
}

// EndBatch closes one batch scope, flushing coalesced notifications
// when the outermost scope ends.
func (s *Store) EndBatch(ctx context.Context) {
	s.batcher.EndBatch(ctx)
}

// Batch runs fn inside a batch scope. Writes made by fn (and by
// anything it calls) are coalesced into at most one notification per
// atom, delivered when the outermost scope ends.
func (s *Store) Batch(ctx context.Context, fn func()) {
	s.batcher.StartBatch()
	defer s.batcher.EndBatch(ctx)
	fn()
}

// RecentErrors returns the most recent compute failures, oldest first.
// Returns nil unless the store was built with WithErrorRingSize.
func (s *Store) RecentErrors() []error {
	return s.failures.all()
}
