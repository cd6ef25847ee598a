/*
Package ion provides a concurrent reactive state store: named mutable
atoms, lazily recomputed derived values, change notification, and a
batching mechanism that coalesces notifications across writes.

ion is designed to be embedded — it is the engine behind a binding or
application layer, not a standalone service. The embedder operates on
string-keyed cells through a Store and receives callbacks when values
change.

# Basic Usage

Create a store and register atoms:

	store := ion.New()
	store.CreateAtom(ctx, "user", ion.String("ada"))
	store.CreateAtom(ctx, "count", ion.Number(0))

Subscribe and write:

	unsub, _ := store.SubscribeAtom("count", func() {
	    render()
	})
	defer unsub()

	store.SetAtomValue(ctx, "count", ion.Number(1)) // render() fires

# Computed Cells

Derived values recompute lazily when a dependency changes:

	store.CreateComputed(ctx, "greeting", []string{"user"},
	    func(ctx context.Context) (ion.Value, error) {
	        u, _ := store.AtomValue("user")
	        return ion.String("hello " + u.String()), nil
	    })

	v, _ := store.ComputedValue(ctx, "greeting") // computes
	v, _ = store.ComputedValue(ctx, "greeting")  // cached

A failed compute leaves the cached state untouched; reading again
retries.

# Batching

Group writes so subscribers are notified at most once per atom:

	store.Batch(ctx, func() {
	    store.SetAtomValue(ctx, "first", ion.String("Ada"))
	    store.SetAtomValue(ctx, "last", ion.String("Lovelace"))
	    store.SetAtomValue(ctx, "last", ion.String("Byron"))
	})
	// one notification for "first", one for "last"

Batches nest; notifications fire when the outermost batch ends.

# Feeds

External sources can drive atoms through the Watcher interface:

	store.CreateAtom(ctx, "config", ion.Null())
	feed := ion.NewFeed(store, "config", ion.NewFileWatcher("app.yaml"))
	if err := feed.Start(ctx); err != nil {
	    log.Fatal(err)
	}

Changes are decoded (JSON/YAML auto-detected), debounced, and written
through the store so normal notification semantics apply.

# Concurrency

All operations are safe for concurrent use. Callbacks are never invoked
while an internal lock is held, so a subscriber may re-enter the store —
write other atoms, unsubscribe itself, open a batch — without
deadlocking. Within one notification pass, subscribers run in
subscription order.
*/
package ion
