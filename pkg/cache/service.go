package cache

import "time"

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get returns value, true on a hit and nil, false on a miss or expiry.
	Get(key string) (interface{}, bool)

	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)
}

// WishlistKey is the per-user key for cached wishlist listings.
func WishlistKey(userID string) string {
	return "wishlist:user:" + userID
}
