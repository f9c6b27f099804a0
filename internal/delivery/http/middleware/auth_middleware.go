package middleware

import (
	"context"
	"net/http"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/utils"
)

// ClaimsExtractor validates the token carried by a request.
type ClaimsExtractor interface {
	ExtractClaims(r *http.Request) (*utils.Claims, error)
}

// NewAuthMiddleware rejects requests without a valid access token and puts
// the token's user into the request context.
func NewAuthMiddleware(tokens ClaimsExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.ExtractClaims(r)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Your session has expired. Please log in again.")
				return
			}

			// Claims are enough here; handlers that need the stored profile load it.
			user := &domain.User{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			}

			ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
