package wishlistsync

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

const validID = "aaaaaaaaaaaaaaaaaaaaaaaa"

func newItem(id, title string) domain.WishlistItem {
	return domain.WishlistItem{
		ID:          id,
		Title:       title,
		ProductID:   "p-" + id,
		Marketplace: "amazon",
	}
}

func TestValidateItem_AcceptsCompleteRecord(t *testing.T) {
	assert.NoError(t, ValidateItem(newItem(validID, "Shoe")))
}

func TestValidateItem_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.WishlistItem)
	}{
		{"missing id", func(i *domain.WishlistItem) { i.ID = "" }},
		{"missing title", func(i *domain.WishlistItem) { i.Title = "" }},
		{"missing product id", func(i *domain.WishlistItem) { i.ProductID = "" }},
		{"missing marketplace", func(i *domain.WishlistItem) { i.Marketplace = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newItem(validID, "Shoe")
			tt.mutate(&item)

			err := ValidateItem(item)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestFilterItems_DropsInvalidRecords(t *testing.T) {
	items := []domain.WishlistItem{
		{ID: validID, Title: "Shoe", ProductID: "p1", Marketplace: "amazon"},
		{ID: "bad", Title: "", ProductID: "", Marketplace: ""},
	}

	got := FilterItems(items, zerolog.Nop())

	require.Len(t, got, 1)
	assert.Equal(t, validID, got[0].ID)
	assert.Equal(t, "Shoe", got[0].Title)
}

func TestFilterItems_DropsDuplicateIDs(t *testing.T) {
	first := newItem(validID, "First")
	second := newItem(validID, "Second")
	other := newItem("bbbbbbbbbbbbbbbbbbbbbbbb", "Other")

	got := FilterItems([]domain.WishlistItem{first, second, other}, zerolog.Nop())

	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Title)
	assert.Equal(t, "Other", got[1].Title)
}

func TestFilterItems_EmptyInputReturnsEmptyList(t *testing.T) {
	got := FilterItems(nil, zerolog.Nop())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidateForRemoval(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		msg     string
	}{
		{"lowercase hex", validID, false, ""},
		{"uppercase hex", "ABCDEF0123456789ABCDEF01", false, ""},
		{"empty", "", true, msgInvalidItem},
		{"too short", "aaaaaaaaaaaaaaaaaaaaaaa", true, msgInvalidItemID},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaa", true, msgInvalidItemID},
		{"non hex", "zzzzzzzzzzzzzzzzzzzzzzzz", true, msgInvalidItemID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForRemoval(newItem(tt.id, "Shoe"))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsKind(err, KindValidation))
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}
