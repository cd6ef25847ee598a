package ion

// FeedState represents the current state of a Feed.
type FeedState int32

const (
	// FeedLoading indicates the feed is initializing and has not yet
	// processed any change from its source.
	FeedLoading FeedState = iota

	// FeedHealthy indicates the last change was decoded and applied to
	// the target atom.
	FeedHealthy

	// FeedDegraded indicates the last change failed to decode or apply.
	// The atom keeps its previous value.
	FeedDegraded

	// FeedEmpty indicates the initial change failed and the atom has
	// never been written by this feed. The feed continues watching for
	// valid updates.
	FeedEmpty
)

// String returns the string representation of the state.
func (s FeedState) String() string {
	switch s {
	case FeedLoading:
		return "loading"
	case FeedHealthy:
		return "healthy"
	case FeedDegraded:
		return "degraded"
	case FeedEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
