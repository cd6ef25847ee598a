package ion

import "context"

// Watcher observes an external source and emits raw bytes on a channel.
// A Feed decodes each emission into a Value and writes it to an atom.
// Implementations must emit the current value immediately upon Watch()
// being called so the target atom reflects the source from the start.
type Watcher interface {
	// Watch begins observing the source and returns a channel that
	// emits raw bytes when changes occur. The channel is closed when
	// the context is canceled or an unrecoverable error occurs.
	//
	// Implementations should emit the current value immediately.
	Watch(ctx context.Context) (<-chan []byte, error)
}
