package ion

import (
	"context"
	"sync"
)

// ComputeFunc produces the value of a computed cell. It is assumed pure
// over the current state of the cell's dependencies at call time; this
// is a caller contract, not enforced. It may block — the engine waits
// for the result rather than requiring an immediate return.
type ComputeFunc func(ctx context.Context) (Value, error)

// Computed is a reactive value derived from one or more atoms. The
// result is computed lazily on first read, cached, and invalidated when
// any dependency changes.
type Computed struct {
	compute ComputeFunc

	// computeMu serializes recomputation: concurrent reads of a stale
	// cell trigger at most one compute, and later callers observe the
	// in-flight result once it lands in the cache.
	computeMu sync.Mutex

	mu     sync.Mutex
	deps   []*Atom
	tokens []uint64
	cached Value
	valid  bool
	dirty  bool
	gen    uint64
}

// NewComputed creates a computed cell for the given compute function.
// The cell starts dirty; the first Get runs the computation.
func NewComputed(fn ComputeFunc) *Computed {
	return &Computed{compute: fn, dirty: true}
}

// AddDependency registers the atom as a dependency and subscribes to it
// so that writes mark this cell dirty. Call before the first Get for
// deterministic behavior: dependencies added after caching has occurred
// are tracked going forward but do not retroactively invalidate an
// already-cached value.
func (c *Computed) AddDependency(a *Atom) {
	token := a.Subscribe(c.MarkDirty)
	c.mu.Lock()
	c.deps = append(c.deps, a)
	c.tokens = append(c.tokens, token)
	c.mu.Unlock()
}

// MarkDirty flags the cached value as stale. Idempotent.
func (c *Computed) MarkDirty() {
	c.mu.Lock()
	c.dirty = true
	c.gen++
	c.mu.Unlock()
}

// Dirty reports whether the next Get will recompute.
func (c *Computed) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty || !c.valid
}

// Get returns the cached value, recomputing first if the cell is dirty
// or has never computed. A compute error is returned without touching
// the cached value or the dirty flag, so calling Get again retries.
func (c *Computed) Get(ctx context.Context) (Value, error) {
	v, _, err := c.get(ctx)
	return v, err
}

// get is Get plus a flag reporting whether a recomputation ran, for the
// store's event emission.
func (c *Computed) get(ctx context.Context) (Value, bool, error) {
	c.computeMu.Lock()
	defer c.computeMu.Unlock()

	c.mu.Lock()
	if c.valid && !c.dirty {
		v := c.cached
		c.mu.Unlock()
		return v, false, nil
	}
	start := c.gen
	c.mu.Unlock()

	v, err := c.compute(ctx)
	if err != nil {
		return Value{}, false, err
	}

	c.mu.Lock()
	c.cached = v
	c.valid = true
	// A dependency written mid-compute leaves the cell dirty so the
	// next read observes it.
	c.dirty = c.gen != start
	c.mu.Unlock()

	return v, true, nil
}

// Detach unsubscribes from every dependency. Must be called before the
// cell is discarded; otherwise a dependency would keep invoking a
// callback into a cell nothing else references.
func (c *Computed) Detach() {
	c.mu.Lock()
	deps := c.deps
	tokens := c.tokens
	c.deps = nil
	c.tokens = nil
	c.mu.Unlock()

	for i, a := range deps {
		a.Unsubscribe(tokens[i])
	}
}
