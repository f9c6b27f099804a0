package wishlistsync

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

// ValidateItem accepts a record only when it carries an id and the fields
// the view needs to render it.
func ValidateItem(item domain.WishlistItem) error {
	var missing []string
	if item.ID == "" {
		missing = append(missing, "id")
	}
	if item.Title == "" {
		missing = append(missing, "title")
	}
	if item.ProductID == "" {
		missing = append(missing, "productId")
	}
	if item.Marketplace == "" {
		missing = append(missing, "marketplace")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// FilterItems drops records that fail ValidateItem and records whose id was
// already accepted. Rejections are logged, never surfaced.
func FilterItems(items []domain.WishlistItem, logger zerolog.Logger) []domain.WishlistItem {
	valid := make([]domain.WishlistItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := ValidateItem(item); err != nil {
			logger.Warn().Err(err).Str("item_id", item.ID).Str("product_id", item.ProductID).Msg("Dropping invalid wishlist item")
			continue
		}
		if _, dup := seen[item.ID]; dup {
			logger.Warn().Str("item_id", item.ID).Msg("Dropping duplicate wishlist item")
			continue
		}
		seen[item.ID] = struct{}{}
		valid = append(valid, item)
	}
	logger.Debug().Int("received", len(items)).Int("valid", len(valid)).Msg("Filtered wishlist items")
	return valid
}

// ValidateForRemoval applies the id rules a remove request must satisfy
// before anything is sent to the store.
func ValidateForRemoval(item domain.WishlistItem) error {
	if item.ID == "" {
		return &Error{Kind: KindValidation, Message: msgInvalidItem, Err: domain.ErrInvalidInput}
	}
	if !domain.IsObjectID(item.ID) {
		return &Error{Kind: KindValidation, Message: msgInvalidItemID, Err: domain.ErrInvalidID}
	}
	return nil
}
