package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/delivery/http/v1"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/infrastructure/cache"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/storeclient"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/usecase"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/wishlistsync"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/utils"
)

// memWishlistRepo is an in-memory domain.WishlistRepository.
type memWishlistRepo struct {
	mu    sync.Mutex
	items map[string]domain.WishlistItem
}

func (r *memWishlistRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WishlistItem{}
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memWishlistRepo) FindByProduct(_ context.Context, userID, productID, marketplace string) (*domain.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.UserID == userID && it.ProductID == productID && it.Marketplace == marketplace {
			return &it, nil
		}
	}
	return nil, nil
}

func (r *memWishlistRepo) Insert(_ context.Context, item *domain.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	item.AddedAt = &now
	r.items[item.ID] = *item
	return nil
}

func (r *memWishlistRepo) Delete(_ context.Context, userID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.UserID != userID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) UpdateNotificationPreferences(_ context.Context, id string, prefs domain.NotificationPreferences) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.EmailNotifications = prefs.EmailNotifications
	v := prefs.PriceDropNotifications
	u.PriceDropNotifications = &v
	cp := *u
	return &cp, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type apiFixture struct {
	srv      *httptest.Server
	tokens   *utils.TokenManager
	wishlist *memWishlistRepo
	users    *memUserRepo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		tokens:   utils.NewTokenManager("test-secret", time.Hour),
		wishlist: &memWishlistRepo{items: map[string]domain.WishlistItem{}},
		users: &memUserRepo{users: map[string]*domain.User{
			"user-1": {ID: "user-1", Email: "ada@dealhunt.dev", Role: "customer", IsActive: true},
			"user-2": {ID: "user-2", Email: "bob@dealhunt.dev", Role: "customer", IsActive: true},
		}},
	}

	mux := http.NewServeMux()
	registerRoutes(mux, routeDeps{
		tokens:   f.tokens,
		auth:     v1.NewAuthHandler(usecase.NewAuthUsecase(f.users, f.tokens)),
		wishlist: v1.NewWishlistHandler(usecase.NewWishlistUsecase(f.wishlist, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)),
		health:   v1.NewHealthHandler(okPinger{}),
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *apiFixture) client(t *testing.T, userID string) *storeclient.Client {
	t.Helper()
	token := ""
	if userID != "" {
		u := f.users.users[userID]
		var err error
		token, err = f.tokens.Generate(u.ID, u.Email, u.Role)
		require.NoError(t, err)
	}
	cfg := storeclient.DefaultConfig(f.srv.URL)
	cfg.Breaker.Name = t.Name() + userID
	return storeclient.New(cfg, storeclient.StaticToken(token), zerolog.Nop())
}

func (f *apiFixture) seed(t *testing.T, c *storeclient.Client, productID, title string) domain.WishlistItem {
	t.Helper()
	item, err := c.AddWishlistItem(context.Background(), domain.AddWishlistItemRequest{
		ProductID: productID, Marketplace: "ebay", Title: title,
	})
	require.NoError(t, err)
	return *item
}

func TestAPI_AddIsIdempotentPerProduct(t *testing.T) {
	f := newAPIFixture(t)
	c := f.client(t, "user-1")

	first := f.seed(t, c, "p1", "Lamp")
	second := f.seed(t, c, "p1", "Lamp")

	assert.True(t, domain.IsObjectID(first.ID))
	assert.Equal(t, first.ID, second.ID)

	items, err := c.ListWishlist(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAPI_RemoveStatuses(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.client(t, "user-1")
	other := f.client(t, "user-2")
	item := f.seed(t, owner, "p1", "Lamp")

	assert.ErrorIs(t, owner.RemoveWishlistItem(context.Background(), "not-hex"), domain.ErrInvalidInput)
	assert.ErrorIs(t, other.RemoveWishlistItem(context.Background(), item.ID), domain.ErrNotFound, "foreign items look missing")
	require.NoError(t, owner.RemoveWishlistItem(context.Background(), item.ID))
	assert.ErrorIs(t, owner.RemoveWishlistItem(context.Background(), item.ID), domain.ErrNotFound)
}

func TestAPI_RequiresToken(t *testing.T) {
	f := newAPIFixture(t)
	anon := f.client(t, "")

	_, err := anon.ListWishlist(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAPI_IssueTokenAndProfile(t *testing.T) {
	f := newAPIFixture(t)
	anon := f.client(t, "")

	token, err := anon.IssueToken(context.Background(), "ada@dealhunt.dev")
	require.NoError(t, err)

	cfg := storeclient.DefaultConfig(f.srv.URL)
	cfg.Breaker.Name = t.Name() + "-authed"
	c := storeclient.New(cfg, storeclient.StaticToken(token), zerolog.Nop())

	me, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", me.ID)
	assert.True(t, me.WantsPriceDrops())

	_, err = anon.IssueToken(context.Background(), "ghost@dealhunt.dev")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAPI_ControllerRoundTrip(t *testing.T) {
	f := newAPIFixture(t)
	c := f.client(t, "user-1")
	lamp := f.seed(t, c, "p1", "Lamp")
	mug := f.seed(t, c, "p2", "Mug")

	me, err := c.GetProfile(context.Background())
	require.NoError(t, err)

	ctrl := wishlistsync.New(c,
		wishlistsync.Auth{Authenticated: true, User: me},
		wishlistsync.WithReconcileDelay(20*time.Millisecond),
		wishlistsync.WithPreferences(wishlistsync.NewPreferenceSync(c, me.WantsPriceDrops(), zerolog.Nop())),
	)
	t.Cleanup(ctrl.Close)

	require.NoError(t, ctrl.FetchAll(context.Background()))
	assert.Len(t, ctrl.Items(), 2)

	// Another session removes the mug first.
	require.NoError(t, c.RemoveWishlistItem(context.Background(), mug.ID))

	err = ctrl.RemoveItem(context.Background(), mug)
	assert.True(t, wishlistsync.IsKind(err, wishlistsync.KindNotFound))
	assert.False(t, ctrl.IsPending(mug.ID))

	// And adds a kettle the controller has not seen yet.
	f.seed(t, c, "p3", "Kettle")

	require.NoError(t, ctrl.RemoveItem(context.Background(), lamp))
	for _, it := range ctrl.Items() {
		assert.NotEqual(t, lamp.ID, it.ID)
	}

	assert.Eventually(t, func() bool {
		items := ctrl.Items()
		return len(items) == 1 && items[0].Title == "Kettle"
	}, 2*time.Second, 10*time.Millisecond, "reconciliation picks up server-side changes")

	require.NoError(t, ctrl.Preferences().Toggle(context.Background()))
	assert.False(t, ctrl.Preferences().Enabled())
	stored, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.False(t, stored.WantsPriceDrops())
	assert.True(t, stored.EmailNotifications)
}

func TestAPI_MetricsAndHealth(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(f.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
}
