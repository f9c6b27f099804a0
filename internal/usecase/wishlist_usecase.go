package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/cache"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/logger"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/utils"
)

type WishlistUsecase struct {
	repo     domain.WishlistRepository
	cache    cache.CacheService
	cacheTTL time.Duration
	newID    func() string
}

func NewWishlistUsecase(repo domain.WishlistRepository, cache cache.CacheService, cacheTTL time.Duration) *WishlistUsecase {
	return &WishlistUsecase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		newID:    utils.GenerateObjectID,
	}
}

// GetMyWishlist returns up to MaxWishlistItems of the user's items, newest first.
func (u *WishlistUsecase) GetMyWishlist(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	key := cache.WishlistKey(userID)
	if val, found := u.cache.Get(key); found {
		return append([]domain.WishlistItem(nil), val.([]domain.WishlistItem)...), nil
	}

	items, err := u.repo.ListByUser(ctx, userID, domain.MaxWishlistItems)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, items, u.cacheTTL)
	return append([]domain.WishlistItem(nil), items...), nil
}

// AddToWishlist stores the product for the user. When the product is already
// saved the existing item is returned and created is false.
func (u *WishlistUsecase) AddToWishlist(ctx context.Context, userID string, req domain.AddWishlistItemRequest) (item *domain.WishlistItem, created bool, err error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := u.repo.FindByProduct(ctx, userID, req.ProductID, req.Marketplace)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	item = &domain.WishlistItem{
		ID:            u.newID(),
		UserID:        userID,
		ProductID:     req.ProductID,
		Marketplace:   req.Marketplace,
		Title:         req.Title,
		OriginalPrice: req.OriginalPrice,
		SalePrice:     req.SalePrice,
		Image:         req.Image,
		DetailURL:     req.DetailURL,
		AffiliateLink: req.AffiliateLink,
	}
	if err := u.repo.Insert(ctx, item); err != nil {
		return nil, false, err
	}

	u.cache.Delete(cache.WishlistKey(userID))
	logger.WithContext(ctx).Info().Str("item_id", item.ID).Str("product_id", item.ProductID).Msg("Wishlist item added")
	return item, true, nil
}

// RemoveFromWishlist deletes one of the user's items. Items owned by other
// users are reported as not found.
func (u *WishlistUsecase) RemoveFromWishlist(ctx context.Context, userID, itemID string) error {
	if !domain.IsObjectID(itemID) {
		return domain.ErrInvalidID
	}

	removed, err := u.repo.Delete(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	if !removed {
		return domain.ErrNotFound
	}

	u.cache.Delete(cache.WishlistKey(userID))
	return nil
}
