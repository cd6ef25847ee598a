package ion

import "github.com/zoobzio/capitan"

// Field keys for store and feed events.
var (
	// KeyKey is the cell key an operation targeted.
	KeyKey = capitan.NewStringKey("key")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDepth is the batch nesting depth at the time of a write.
	KeyDepth = capitan.NewIntKey("depth")

	// KeyPending is the number of atoms notified by a batch flush.
	KeyPending = capitan.NewIntKey("pending")

	// KeyDeps is the number of dependencies wired to a computed cell.
	KeyDeps = capitan.NewIntKey("dependencies")

	// KeyDebounce is the configured debounce duration of a feed.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyContentType is the MIME type of a feed's codec.
	KeyContentType = capitan.NewStringKey("content_type")

	// KeyOldState is the previous feed state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new feed state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")
)
