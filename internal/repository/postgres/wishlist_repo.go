package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/logger"
)

const wishlistColumns = `id, product_id, marketplace, title, original_price, sale_price,
	image, detail_url, affiliate_link, added_at`

type wishlistRepository struct {
	db DBTX
}

func NewWishlistRepository(db DBTX) domain.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.WishlistItem, error) {
	query := `SELECT ` + wishlistColumns + `
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY added_at DESC
		LIMIT $2`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, userID, limit)
	logger.DBQuery(ctx, "ListWishlistByUser", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishlistItem, 0)
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		item.UserID = userID
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	return items, nil
}

func (r *wishlistRepository) FindByProduct(ctx context.Context, userID, productID, marketplace string) (*domain.WishlistItem, error) {
	query := `SELECT ` + wishlistColumns + `
		FROM wishlist_items
		WHERE user_id = $1 AND product_id = $2 AND marketplace = $3`

	item, err := scanWishlistItem(r.db.QueryRow(ctx, query, userID, productID, marketplace))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find wishlist item: %w", err)
	}
	item.UserID = userID
	return item, nil
}

func (r *wishlistRepository) Insert(ctx context.Context, item *domain.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_id, marketplace, title, original_price,
			sale_price, image, detail_url, affiliate_link, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	addedAt := time.Now().UTC()
	if item.AddedAt != nil {
		addedAt = *item.AddedAt
	}

	_, err := r.db.Exec(ctx, query,
		item.ID, item.UserID, item.ProductID, item.Marketplace, item.Title, item.OriginalPrice,
		item.SalePrice, item.Image, item.DetailURL, item.AffiliateLink, addedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wishlist item: %w", err)
	}

	item.AddedAt = &addedAt
	return nil
}

func (r *wishlistRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	query := `DELETE FROM wishlist_items WHERE id = $1 AND user_id = $2`

	ct, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete wishlist item: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func scanWishlistItem(row pgx.Row) (*domain.WishlistItem, error) {
	var item domain.WishlistItem
	var addedAt time.Time
	err := row.Scan(
		&item.ID, &item.ProductID, &item.Marketplace, &item.Title, &item.OriginalPrice,
		&item.SalePrice, &item.Image, &item.DetailURL, &item.AffiliateLink, &addedAt,
	)
	if err != nil {
		return nil, err
	}
	item.AddedAt = &addedAt
	return &item, nil
}
