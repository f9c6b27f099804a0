// Package storeclient talks to the DealHunt API, which hosts the remote
// wishlist store and the user profile store.
package storeclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
}

// BreakerConfig mirrors the gobreaker settings the client exposes.
type BreakerConfig struct {
	Name string
	// MaxRequests allowed while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts; 0 never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
		Breaker: BreakerConfig{
			Name:         "dealhunt-api",
			MaxRequests:  1,
			Interval:     60 * time.Second,
			Timeout:      30 * time.Second,
			FailureRatio: 0.5,
			MinRequests:  5,
		},
	}
}

// TokenSource returns the bearer token for the current session. An empty
// token sends the request unauthenticated.
type TokenSource func(ctx context.Context) (string, error)

func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) { return token, nil }
}

// Client implements wishlistsync.WishlistStore and wishlistsync.ProfileStore
// over HTTP. It never retries; retrying is the caller's decision.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	tokens     TokenSource
	logger     zerolog.Logger
}

func New(cfg Config, tokens TokenSource, logger zerolog.Logger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if tokens == nil {
		tokens = StaticToken("")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		breaker: newBreaker(cfg.Breaker, logger),
		tokens:  tokens,
		logger:  logger,
	}
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// --- Wishlist store ---

// ListWishlist returns the caller's saved items. Elements that cannot be
// decoded as an item are dropped and logged.
func (c *Client) ListWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, "list_wishlist", http.MethodGet, "/api/v1/wishlist", nil, &raw); err != nil {
		return nil, err
	}

	items := make([]domain.WishlistItem, 0, len(raw))
	for i, elem := range raw {
		var item domain.WishlistItem
		if err := json.Unmarshal(elem, &item); err != nil {
			c.logger.Warn().Err(err).Int("index", i).Msg("Dropping undecodable wishlist record")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) AddWishlistItem(ctx context.Context, req domain.AddWishlistItemRequest) (*domain.WishlistItem, error) {
	var item domain.WishlistItem
	if err := c.do(ctx, "add_wishlist_item", http.MethodPost, "/api/v1/wishlist", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveWishlistItem(ctx context.Context, id string) error {
	return c.do(ctx, "remove_wishlist_item", http.MethodDelete, "/api/v1/wishlist/"+url.PathEscape(id), nil, nil)
}

// --- Profile store ---

func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "get_profile", http.MethodGet, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateNotificationPreferences(ctx context.Context, prefs domain.NotificationPreferences) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "update_preferences", http.MethodPut, "/api/v1/user/notification-preferences", prefs, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// IssueToken exchanges an account email for an access token.
func (c *Client) IssueToken(ctx context.Context, email string) (string, error) {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, "issue_token", http.MethodPost, "/api/v1/auth/token", map[string]string{"email": email}, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// --- Transport ---

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
	}

	token, err := c.tokens(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrUnauthorized, err)
	}

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		// Only server-side failures count against the breaker.
		if resp.StatusCode >= 500 {
			return nil, responseError(resp)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			observe(op, "breaker_open")
		} else {
			observe(op, "error")
		}
		c.logger.Debug().Err(err).Str("op", op).Dur("duration_ms", time.Since(start)).Msg("DealHunt API request failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(op, "rejected")
		return fmt.Errorf("%s: %w", op, responseError(resp))
	}
	observe(op, "ok")
	c.logger.Debug().Str("op", op).Int("status", resp.StatusCode).Dur("duration_ms", time.Since(start)).Msg("DealHunt API request")

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
