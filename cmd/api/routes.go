package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/delivery/http/middleware"
	v1 "github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/delivery/http/v1"
)

type routeDeps struct {
	tokens   middleware.ClaimsExtractor
	auth     *v1.AuthHandler
	wishlist *v1.WishlistHandler
	health   *v1.HealthHandler
}

func registerRoutes(mux *http.ServeMux, d routeDeps) {
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.NewAuthMiddleware(d.tokens)(h)
	}

	// Auth & profile
	mux.HandleFunc("POST /api/v1/auth/token", d.auth.IssueToken)
	mux.Handle("GET /api/v1/auth/me", protected(d.auth.GetMe))
	mux.Handle("PUT /api/v1/user/notification-preferences", protected(d.auth.UpdateNotificationPreferences))

	// Wishlist
	mux.Handle("GET /api/v1/wishlist", protected(d.wishlist.GetMyWishlist))
	mux.Handle("POST /api/v1/wishlist", protected(d.wishlist.AddToWishlist))
	mux.Handle("DELETE /api/v1/wishlist/{id}", protected(d.wishlist.RemoveFromWishlist))

	// Ops
	mux.HandleFunc("GET /health", d.health.Health)
	mux.HandleFunc("GET /api/v1/health", d.health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
}
