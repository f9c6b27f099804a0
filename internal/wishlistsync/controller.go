// Package wishlistsync keeps a locally cached wishlist consistent with the
// remote wishlist store while the user keeps interacting with it.
//
// The Controller owns the canonical item list, the error state and the set
// of pending removals. Store calls are never made while the controller lock
// is held, so the only points where concurrent operations interleave are
// immediately before and after each store call.
package wishlistsync

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

// DefaultReconcileDelay is how long after a successful removal the list is
// fetched again to pick up server-side changes.
const DefaultReconcileDelay = time.Second

// WishlistStore is the remote wishlist service.
type WishlistStore interface {
	ListWishlist(ctx context.Context) ([]domain.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, id string) error
}

// Auth is the authentication state supplied by the caller.
type Auth struct {
	Authenticated bool
	User          *domain.User
}

func (a Auth) userID() string {
	if a.User == nil {
		return ""
	}
	return a.User.ID
}

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	Items   []domain.WishlistItem
	Err     *Error
	Notice  *Error
	Pending []string
	Loading bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithReconcileDelay sets how long after a removal the list is fetched again.
func WithReconcileDelay(d time.Duration) Option {
	return func(c *Controller) { c.reconcileDelay = d }
}

// WithOnChange registers a callback invoked after every state change. It may
// be called from several goroutines at once.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithPreferences attaches the notification preference sync so that user
// changes passed to SetAuth are mirrored into it.
func WithPreferences(p *PreferenceSync) Option {
	return func(c *Controller) { c.prefs = p }
}

// Controller owns the canonical wishlist of one session.
type Controller struct {
	store          WishlistStore
	prefs          *PreferenceSync
	logger         zerolog.Logger
	reconcileDelay time.Duration
	onChange       func(Snapshot)

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	auth    Auth
	items   []domain.WishlistItem
	err     *Error
	notice  *Error
	tracker *Tracker
	loading int
	// epoch changes whenever the list scope is discarded (sign-out, user
	// switch, Close). Results of calls started in an older epoch are dropped.
	epoch     uint64
	timers    map[uint64]*time.Timer
	nextTimer uint64
	closed    bool
}

// New creates a controller with an empty list. Callers mount it by calling
// FetchAll.
func New(store WishlistStore, auth Auth, opts ...Option) *Controller {
	c := &Controller{
		store:          store,
		logger:         zerolog.Nop(),
		reconcileDelay: DefaultReconcileDelay,
		auth:           auth,
		items:          []domain.WishlistItem{},
		tracker:        NewTracker(),
		timers:         make(map[uint64]*time.Timer),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	if c.prefs != nil && auth.Authenticated {
		c.prefs.Load(auth.User)
	}
	return c
}

// Preferences returns the attached preference sync, or nil.
func (c *Controller) Preferences() *PreferenceSync {
	return c.prefs
}

// FetchAll replaces the canonical list with the validated contents of the
// store. Unauthenticated callers get an empty list and no request is made.
// On failure the list is left as it was and the classified error is both
// stored and returned.
func (c *Controller) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || !c.auth.Authenticated {
		c.mu.Unlock()
		return nil
	}
	epoch := c.epoch
	userID := c.auth.userID()
	c.loading++
	c.mu.Unlock()
	c.notify()

	c.logger.Debug().Str("user_id", userID).Msg("Fetching wishlist")
	items, err := c.store.ListWishlist(ctx)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		c.logger.Debug().Str("user_id", userID).Msg("Discarding wishlist fetched for a previous session")
		return nil
	}
	c.loading--

	if err != nil {
		e := classify(err, msgFetchFailed, false)
		c.err = e
		c.mu.Unlock()

		c.logger.Error().Err(err).Str("kind", e.Kind.String()).Str("user_id", userID).Msg("Failed to fetch wishlist")
		c.notify()
		return e
	}

	c.items = FilterItems(items, c.logger)
	c.err = nil
	count := len(c.items)
	c.mu.Unlock()

	c.logger.Debug().Int("items", count).Str("user_id", userID).Msg("Wishlist fetched")
	c.notify()
	return nil
}

// Retry re-runs FetchAll after a reported error.
func (c *Controller) Retry(ctx context.Context) error {
	return c.FetchAll(ctx)
}

// RemoveItem removes item from the store and, once the store agrees, from
// the canonical list. A second call for an id that is still pending returns
// nil without contacting the store.
func (c *Controller) RemoveItem(ctx context.Context, item domain.WishlistItem) error {
	if err := ValidateForRemoval(item); err != nil {
		c.logger.Warn().Str("item_id", item.ID).Msg("Rejected removal of malformed wishlist item")
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if !c.auth.Authenticated {
		c.mu.Unlock()
		return &Error{Kind: KindAuthExpired, Message: msgSessionExpired, Err: domain.ErrUnauthorized}
	}
	release, ok := c.tracker.Acquire(item.ID)
	epoch := c.epoch
	c.mu.Unlock()

	if !ok {
		c.logger.Debug().Str("item_id", item.ID).Msg("Removal already in flight, skipping")
		return nil
	}
	defer func() {
		release()
		c.notify()
	}()
	c.notify()

	err := c.store.RemoveWishlistItem(ctx, item.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	current := epoch == c.epoch

	if err == nil {
		if current {
			c.dropLocked(item.ID)
			c.notice = nil
			c.scheduleReconcileLocked()
		}
		c.logger.Info().Str("item_id", item.ID).Msg("Removed wishlist item")
		return nil
	}

	e := classify(err, msgRemoveFailed, true)
	if current {
		if e.Kind == KindNotFound {
			c.dropLocked(item.ID)
		}
		c.notice = e
	}
	c.logger.Warn().Err(err).Str("kind", e.Kind.String()).Str("item_id", item.ID).Msg("Wishlist item removal failed")
	return e
}

// SetAuth feeds a new authentication state into the controller. Signing out
// or switching users discards the list scope. Signing in, or switching users,
// triggers a fetch whose result is returned.
func (c *Controller) SetAuth(ctx context.Context, auth Auth) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	prev := c.auth
	c.auth = auth

	switched := prev.Authenticated && auth.Authenticated && prev.userID() != auth.userID()
	if !auth.Authenticated || switched {
		c.resetLocked()
	}
	c.mu.Unlock()

	newSession := auth.Authenticated && (!prev.Authenticated || switched)
	if c.prefs != nil && auth.Authenticated {
		if newSession {
			c.prefs.Load(auth.User)
		} else {
			c.prefs.Mirror(auth.User)
		}
	}
	c.notify()

	if newSession {
		return c.FetchAll(ctx)
	}
	return nil
}

// Close discards all state and stops pending reconciliations. Later calls on
// the controller are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.resetLocked()
	c.mu.Unlock()

	c.cancel()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) Items() []domain.WishlistItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Err returns the current fetch error, or nil.
func (c *Controller) Err() *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller) IsPending(id string) bool {
	c.mu.Lock()
	t := c.tracker
	c.mu.Unlock()
	return t.Has(id)
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Items:   slices.Clone(c.items),
		Err:     c.err,
		Notice:  c.notice,
		Pending: c.tracker.IDs(),
		Loading: c.loading > 0,
	}
}

func (c *Controller) dropLocked(id string) {
	c.items = slices.DeleteFunc(c.items, func(it domain.WishlistItem) bool {
		return it.ID == id
	})
}

func (c *Controller) resetLocked() {
	c.epoch++
	c.items = []domain.WishlistItem{}
	c.err = nil
	c.notice = nil
	c.loading = 0
	// In-flight removals keep releasing into the old tracker.
	c.tracker = NewTracker()
	for key, t := range c.timers {
		t.Stop()
		delete(c.timers, key)
	}
}

func (c *Controller) scheduleReconcileLocked() {
	c.nextTimer++
	key := c.nextTimer
	c.timers[key] = time.AfterFunc(c.reconcileDelay, func() {
		c.mu.Lock()
		delete(c.timers, key)
		c.mu.Unlock()

		if err := c.FetchAll(c.ctx); err != nil {
			c.logger.Warn().Err(err).Msg("Reconciliation fetch failed")
		}
	})
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.Snapshot())
}
