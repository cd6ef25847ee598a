package ion

// config holds configuration options for a Store.
type config struct {
	batcher  *Batcher
	strict   bool
	ringSize int
}

// Option configures a Store.
type Option func(*config)

// WithBatcher makes the store coalesce notifications through the given
// batcher instead of a private one. Share a batcher across stores when
// a single batch scope should cover writes to all of them.
func WithBatcher(b *Batcher) Option {
	return func(c *config) {
		c.batcher = b
	}
}

// WithStrictDependencies makes CreateComputed fail with ErrNotFound
// when a dependency key does not resolve to an existing atom, instead
// of silently skipping it.
func WithStrictDependencies() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithErrorRingSize retains the last n compute failures for inspection
// via RecentErrors. Zero (the default) disables retention.
func WithErrorRingSize(n int) Option {
	return func(c *config) {
		c.ringSize = n
	}
}
