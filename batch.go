package ion

import (
	"context"
	"sync"

	"github.com/zoobzio/capitan"
)

// Batcher coalesces atom notifications across batch scopes. While a
// batch is open, writes enqueue their atom instead of notifying;
// closing the outermost batch delivers at most one notification per
// distinct atom, regardless of how many writes it received.
//
// Batches nest: only the EndBatch that returns the depth to zero
// flushes. A Batcher is an explicit handle rather than a package
// global, so independent stores do not share batching state; share one
// across stores with WithBatcher when cross-store coalescing is wanted.
type Batcher struct {
	mu      sync.Mutex
	depth   int
	pending []*Atom
	queued  map[*Atom]struct{}
}

// NewBatcher creates an empty batcher.
func NewBatcher() *Batcher {
	return &Batcher{queued: make(map[*Atom]struct{})}
}

// StartBatch opens a batch scope, deferring notifications until the
// matching EndBatch.
func (b *Batcher) StartBatch() {
	b.mu.Lock()
	b.depth++
	b.mu.Unlock()
}

// EndBatch closes one batch scope. When the outermost scope closes, the
// pending atoms are taken in enqueue order and each is notified once
// and marked clean, with no internal lock held during the callbacks.
// EndBatch without an open batch is a no-op.
func (b *Batcher) EndBatch(ctx context.Context) {
	b.mu.Lock()
	if b.depth == 0 {
		b.mu.Unlock()
		return
	}
	b.depth--
	if b.depth > 0 {
		b.mu.Unlock()
		return
	}
	flush := b.pending
	b.pending = nil
	b.queued = make(map[*Atom]struct{})
	b.mu.Unlock()

	capitan.Emit(ctx, BatchFlushed,
		KeyPending.Field(len(flush)),
	)

	for _, a := range flush {
		a.Notify()
		a.MarkClean()
	}
}

// Depth returns the current batch nesting depth.
func (b *Batcher) Depth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.depth
}

// enqueue records the atom for notification at flush time. It returns
// false when no batch is open, in which case the caller notifies
// immediately. Repeated writes to the same atom collapse to one entry.
func (b *Batcher) enqueue(a *Atom) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.depth == 0 {
		return false
	}
	if _, ok := b.queued[a]; !ok {
		b.queued[a] = struct{}{}
		b.pending = append(b.pending, a)
	}
	return true
}
