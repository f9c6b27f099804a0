package domain

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// MaxWishlistItems caps a single list response.
const MaxWishlistItems = 100

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsObjectID reports whether s has the store's 24 hex character id shape.
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}

type WishlistItem struct {
	ID            string     `json:"id"`
	UserID        string     `json:"-"`
	ProductID     string     `json:"productId"`
	Marketplace   string     `json:"marketplace"`
	Title         string     `json:"title"`
	OriginalPrice *float64   `json:"originalPrice,omitempty"`
	SalePrice     *float64   `json:"salePrice,omitempty"`
	Image         string     `json:"image,omitempty"`
	DetailURL     string     `json:"detailUrl,omitempty"`
	AffiliateLink string     `json:"affiliateLink,omitempty"`
	AddedAt       *time.Time `json:"addedAt,omitempty"`
}

// AddedAtLabel renders the date the item was saved, or "Unknown date".
func (i WishlistItem) AddedAtLabel() string {
	if i.AddedAt == nil || i.AddedAt.IsZero() {
		return "Unknown date"
	}
	return i.AddedAt.Format("January 2, 2006")
}

// DetailPath is the in-app product page for the item.
func (i WishlistItem) DetailPath() string {
	return fmt.Sprintf("/product/%s/%s", i.Marketplace, i.ProductID)
}

type AddWishlistItemRequest struct {
	ProductID     string   `json:"productId"`
	Marketplace   string   `json:"marketplace"`
	Title         string   `json:"title"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	SalePrice     *float64 `json:"salePrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	DetailURL     string   `json:"detailUrl,omitempty"`
	AffiliateLink string   `json:"affiliateLink,omitempty"`
}

// Validate checks the fields every stored item must carry.
func (r AddWishlistItemRequest) Validate() error {
	switch {
	case r.ProductID == "":
		return fmt.Errorf("%w: productId is required", ErrInvalidInput)
	case r.Marketplace == "":
		return fmt.Errorf("%w: marketplace is required", ErrInvalidInput)
	case r.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return nil
}

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]WishlistItem, error)
	// FindByProduct returns nil, nil when the user has not saved the product.
	FindByProduct(ctx context.Context, userID, productID, marketplace string) (*WishlistItem, error)
	Insert(ctx context.Context, item *WishlistItem) error
	// Delete reports whether a row owned by userID was removed.
	Delete(ctx context.Context, userID, id string) (bool, error)
}
