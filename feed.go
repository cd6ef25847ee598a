package ion

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for feed changes.
const DefaultDebounce = 100 * time.Millisecond

// Feed pipes a Watcher into a named atom. Each emission is decoded into
// a Value by the configured Codec and written through the store, so
// batching and notification semantics apply to fed changes exactly as
// they do to direct writes.
//
// Changes arriving in quick succession are debounced: only the latest
// within the debounce window reaches the atom.
type Feed struct {
	store    *Store
	key      string
	watcher  Watcher
	codec    Codec
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock

	state     atomic.Int32
	applied   atomic.Bool
	lastError atomic.Pointer[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// feedConfig holds configuration options for a Feed.
type feedConfig struct {
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	codec    Codec
}

// FeedOption configures a Feed.
type FeedOption func(*feedConfig)

// WithDebounce sets the debounce duration for change processing.
// Changes arriving within this duration are coalesced into a single
// write.
func WithDebounce(d time.Duration) FeedOption {
	return func(c *feedConfig) {
		c.debounce = d
	}
}

// WithSyncMode enables synchronous processing for testing. In sync
// mode, changes are processed via Process() without debouncing or
// async goroutines, making tests deterministic.
func WithSyncMode() FeedOption {
	return func(c *feedConfig) {
		c.syncMode = true
	}
}

// WithClock sets a custom clock for time operations. Use this with
// clockz.FakeClock for deterministic debounce testing.
func WithClock(clock clockz.Clock) FeedOption {
	return func(c *feedConfig) {
		c.clock = clock
	}
}

// WithCodec sets the codec used to decode watcher bytes into Values.
// The default auto-detects JSON and YAML.
func WithCodec(codec Codec) FeedOption {
	return func(c *feedConfig) {
		c.codec = codec
	}
}

// NewFeed creates a feed that writes decoded changes from the watcher
// into the atom registered under key. The atom must exist by the time
// changes arrive; writes to an absent key surface via LastError.
//
// Example:
//
//	store.CreateAtom(ctx, "config", ion.Null())
//	feed := ion.NewFeed(store, "config", ion.NewFileWatcher("app.yaml"))
//	if err := feed.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
func NewFeed(store *Store, key string, watcher Watcher, opts ...FeedOption) *Feed {
	cfg := &feedConfig{
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    AutoCodec{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	f := &Feed{
		store:    store,
		key:      key,
		watcher:  watcher,
		codec:    cfg.codec,
		debounce: cfg.debounce,
		syncMode: cfg.syncMode,
		clock:    cfg.clock,
	}
	f.state.Store(int32(FeedLoading))

	return f
}

// State returns the current state of the feed.
func (f *Feed) State() FeedState {
	return FeedState(f.state.Load())
}

// LastError returns the last error encountered, or nil.
func (f *Feed) LastError() error {
	ptr := f.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching for changes. It blocks until the first change
// is processed (success or failure), then continues watching
// asynchronously. If the initial change fails, Start returns the error
// but keeps watching for valid updates.
//
// In sync mode, Start only processes the initial value; use Process()
// to drive subsequent changes manually.
//
// Start can only be called once.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return fmt.Errorf("feed already started")
	}
	f.started = true
	f.mu.Unlock()

	capitan.Emit(ctx, FeedStarted,
		KeyKey.Field(f.key),
		KeyDebounce.Field(f.debounce),
		KeyContentType.Field(f.codec.ContentType()),
	)

	changes, err := f.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	// Wait for first value and process synchronously
	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial value")
		}
		capitan.Emit(ctx, FeedChangeReceived,
			KeyKey.Field(f.key),
		)
		initialErr = f.process(ctx, raw)
	}

	if f.syncMode {
		f.changes = changes
		return initialErr
	}

	go f.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next value from the watcher. Only
// available in sync mode; used for deterministic testing. Returns
// false if no value is available or the channel is closed.
func (f *Feed) Process(ctx context.Context) bool {
	if !f.syncMode {
		return false
	}

	select {
	case raw, ok := <-f.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, FeedChangeReceived,
			KeyKey.Field(f.key),
		)
		_ = f.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

// process decodes and applies a single change to the target atom.
func (f *Feed) process(ctx context.Context, raw []byte) error {
	oldState := f.State()

	v, err := f.codec.Unmarshal(raw)
	if err != nil {
		f.setError(err)
		f.transitionState(ctx, oldState, f.failureState())
		capitan.Emit(ctx, FeedDecodeFailed,
			KeyKey.Field(f.key),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("decode failed: %w", err)
	}

	if err := f.store.SetAtomValue(ctx, f.key, v); err != nil {
		f.setError(err)
		f.transitionState(ctx, oldState, f.failureState())
		capitan.Emit(ctx, FeedApplyFailed,
			KeyKey.Field(f.key),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("apply failed: %w", err)
	}

	f.applied.Store(true)
	f.lastError.Store(nil)
	f.transitionState(ctx, oldState, FeedHealthy)
	capitan.Emit(ctx, FeedApplied,
		KeyKey.Field(f.key),
	)

	return nil
}

// failureState returns the failure state appropriate to whether a
// change has ever been applied.
func (f *Feed) failureState() FeedState {
	if !f.applied.Load() {
		return FeedEmpty
	}
	return FeedDegraded
}

// transitionState updates the state and emits a change event if changed.
func (f *Feed) transitionState(ctx context.Context, oldState, newState FeedState) {
	if oldState == newState {
		return
	}
	f.state.Store(int32(newState))
	capitan.Emit(ctx, FeedStateChanged,
		KeyKey.Field(f.key),
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// setError stores an error atomically.
func (f *Feed) setError(err error) {
	e := err
	f.lastError.Store(&e)
}

// watch processes changes from the watcher channel with debouncing.
func (f *Feed) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		capitan.Emit(ctx, FeedStopped,
			KeyKey.Field(f.key),
			KeyNewState.Field(f.State().String()),
		)
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				// Channel closed, process any pending change
				if hasPending {
					_ = f.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			capitan.Emit(ctx, FeedChangeReceived,
				KeyKey.Field(f.key),
			)
			pending = raw
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = f.clock.NewTimer(f.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(f.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = f.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}
