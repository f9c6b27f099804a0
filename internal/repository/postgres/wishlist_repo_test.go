package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

func newWishlistFixture(t *testing.T) (domain.WishlistRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewWishlistRepository(mock), mock
}

func wishlistCols() []string {
	return []string{
		"id", "product_id", "marketplace", "title", "original_price", "sale_price",
		"image", "detail_url", "affiliate_link", "added_at",
	}
}

func TestWishlistRepository_ListByUser(t *testing.T) {
	repo, mock := newWishlistFixture(t)
	added := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	price := 19.99

	mock.ExpectQuery("FROM wishlist_items\\s+WHERE user_id = \\$1\\s+ORDER BY added_at DESC").
		WithArgs("user-1", domain.MaxWishlistItems).
		WillReturnRows(pgxmock.NewRows(wishlistCols()).
			AddRow("aaaaaaaaaaaaaaaaaaaaaaaa", "p1", "ebay", "Lamp", nil, &price, "", "", "", added).
			AddRow("bbbbbbbbbbbbbbbbbbbbbbbb", "p2", "aliexpress", "Mug", nil, nil, "img.png", "", "", added))

	items, err := repo.ListByUser(context.Background(), "user-1", domain.MaxWishlistItems)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Lamp", items[0].Title)
	assert.Equal(t, "user-1", items[0].UserID)
	require.NotNil(t, items[0].SalePrice)
	assert.InDelta(t, 19.99, *items[0].SalePrice, 0.0001)
	assert.Nil(t, items[1].SalePrice)
	require.NotNil(t, items[1].AddedAt)
	assert.True(t, added.Equal(*items[1].AddedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newWishlistFixture(t)

	mock.ExpectQuery("FROM wishlist_items").
		WithArgs("user-1", 100).
		WillReturnRows(pgxmock.NewRows(wishlistCols()))

	items, err := repo.ListByUser(context.Background(), "user-1", 100)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestWishlistRepository_ListByUser_QueryError(t *testing.T) {
	repo, mock := newWishlistFixture(t)

	mock.ExpectQuery("FROM wishlist_items").
		WithArgs("user-1", 100).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ListByUser(context.Background(), "user-1", 100)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list wishlist items")
}

func TestWishlistRepository_FindByProduct_Missing(t *testing.T) {
	repo, mock := newWishlistFixture(t)

	mock.ExpectQuery("FROM wishlist_items\\s+WHERE user_id = \\$1 AND product_id = \\$2").
		WithArgs("user-1", "p1", "ebay").
		WillReturnError(pgx.ErrNoRows)

	item, err := repo.FindByProduct(context.Background(), "user-1", "p1", "ebay")

	assert.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_FindByProduct_Found(t *testing.T) {
	repo, mock := newWishlistFixture(t)
	added := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM wishlist_items").
		WithArgs("user-1", "p1", "ebay").
		WillReturnRows(pgxmock.NewRows(wishlistCols()).
			AddRow("aaaaaaaaaaaaaaaaaaaaaaaa", "p1", "ebay", "Lamp", nil, nil, "", "", "", added))

	item, err := repo.FindByProduct(context.Background(), "user-1", "p1", "ebay")

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", item.ID)
}

func TestWishlistRepository_Insert(t *testing.T) {
	repo, mock := newWishlistFixture(t)
	item := &domain.WishlistItem{
		ID:          "aaaaaaaaaaaaaaaaaaaaaaaa",
		UserID:      "user-1",
		ProductID:   "p1",
		Marketplace: "ebay",
		Title:       "Lamp",
	}

	mock.ExpectExec("INSERT INTO wishlist_items").
		WithArgs(item.ID, "user-1", "p1", "ebay", "Lamp", item.OriginalPrice, item.SalePrice,
			"", "", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Insert(context.Background(), item))
	assert.NotNil(t, item.AddedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"removed", 1, true},
		{"missing or foreign", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newWishlistFixture(t)
			mock.ExpectExec("DELETE FROM wishlist_items WHERE id = \\$1 AND user_id = \\$2").
				WithArgs("aaaaaaaaaaaaaaaaaaaaaaaa", "user-1").
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			ok, err := repo.Delete(context.Background(), "user-1", "aaaaaaaaaaaaaaaaaaaaaaaa")

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
