package ion

import "github.com/zoobzio/capitan"

// Store mutation signals.
var (
	// AtomCreated is emitted when an atom is registered in a store.
	AtomCreated = capitan.NewSignal(
		"ion.atom.created",
		"Atom registered in the store",
	)

	// AtomUpdated is emitted when an atom's value is written.
	AtomUpdated = capitan.NewSignal(
		"ion.atom.updated",
		"Atom value written",
	)

	// AtomDeleted is emitted when an atom is removed from a store.
	AtomDeleted = capitan.NewSignal(
		"ion.atom.deleted",
		"Atom removed from the store",
	)
)

// Computed cell signals.
var (
	// ComputedCreated is emitted when a computed cell is registered.
	ComputedCreated = capitan.NewSignal(
		"ion.computed.created",
		"Computed cell registered in the store",
	)

	// ComputedDeleted is emitted when a computed cell is removed.
	ComputedDeleted = capitan.NewSignal(
		"ion.computed.deleted",
		"Computed cell removed from the store",
	)

	// ComputedRecomputed is emitted when a stale computed cell
	// recomputes successfully.
	ComputedRecomputed = capitan.NewSignal(
		"ion.computed.recomputed",
		"Computed cell recomputed",
	)

	// ComputeFailed is emitted when a compute function returns an error.
	ComputeFailed = capitan.NewSignal(
		"ion.computed.failed",
		"Compute function failed",
	)
)

// Batching signals.
var (
	// BatchFlushed is emitted when the outermost batch scope closes and
	// pending notifications are delivered.
	BatchFlushed = capitan.NewSignal(
		"ion.batch.flushed",
		"Batch flushed pending notifications",
	)
)

// Feed lifecycle signals.
var (
	// FeedStarted is emitted when a feed begins watching its source.
	FeedStarted = capitan.NewSignal(
		"ion.feed.started",
		"Feed watching started",
	)

	// FeedStopped is emitted when a feed stops watching.
	FeedStopped = capitan.NewSignal(
		"ion.feed.stopped",
		"Feed watching stopped",
	)

	// FeedStateChanged is emitted when a feed transitions between states.
	FeedStateChanged = capitan.NewSignal(
		"ion.feed.state.changed",
		"Feed state transition",
	)

	// FeedChangeReceived is emitted when raw data arrives from the watcher.
	FeedChangeReceived = capitan.NewSignal(
		"ion.feed.change.received",
		"Raw change received from watcher",
	)

	// FeedDecodeFailed is emitted when the codec rejects incoming data.
	FeedDecodeFailed = capitan.NewSignal(
		"ion.feed.decode.failed",
		"Codec failed to decode change",
	)

	// FeedApplyFailed is emitted when a decoded change cannot be
	// written to the target atom.
	FeedApplyFailed = capitan.NewSignal(
		"ion.feed.apply.failed",
		"Change could not be applied to atom",
	)

	// FeedApplied is emitted when a change is written to the target atom.
	FeedApplied = capitan.NewSignal(
		"ion.feed.applied",
		"Change applied to atom",
	)
)
