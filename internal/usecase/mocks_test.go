package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

type mockWishlistRepo struct {
	mock.Mock
}

func (m *mockWishlistRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistItem), args.Error(1)
}

func (m *mockWishlistRepo) FindByProduct(ctx context.Context, userID, productID, marketplace string) (*domain.WishlistItem, error) {
	args := m.Called(ctx, userID, productID, marketplace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WishlistItem), args.Error(1)
}

func (m *mockWishlistRepo) Insert(ctx context.Context, item *domain.WishlistItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockWishlistRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateNotificationPreferences(ctx context.Context, id string, prefs domain.NotificationPreferences) (*domain.User, error) {
	args := m.Called(ctx, id, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
