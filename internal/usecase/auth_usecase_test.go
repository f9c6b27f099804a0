package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/utils"
)

func TestIssueToken(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ada@dealhunt.dev").
		Return(&domain.User{ID: "user-1", Email: "ada@dealhunt.dev", Role: "customer", IsActive: true}, nil)
	tokens := utils.NewTokenManager("s3cret", time.Hour)
	uc := NewAuthUsecase(repo, tokens)

	token, user, err := uc.IssueToken(context.Background(), "  Ada@DealHunt.dev ")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestIssueToken_Rejections(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ghost@dealhunt.dev").Return(nil, domain.ErrNotFound)
	repo.On("GetByEmail", mock.Anything, "banned@dealhunt.dev").
		Return(&domain.User{ID: "user-2", IsActive: false}, nil)
	uc := NewAuthUsecase(repo, utils.NewTokenManager("s3cret", time.Hour))

	_, _, err := uc.IssueToken(context.Background(), "ghost@dealhunt.dev")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = uc.IssueToken(context.Background(), "banned@dealhunt.dev")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = uc.IssueToken(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateNotificationPreferences(t *testing.T) {
	repo := new(mockUserRepo)
	off := false
	prefs := domain.NotificationPreferences{EmailNotifications: true, PriceDropNotifications: false}
	repo.On("UpdateNotificationPreferences", mock.Anything, "user-1", prefs).
		Return(&domain.User{ID: "user-1", PriceDropNotifications: &off}, nil)
	uc := NewAuthUsecase(repo, utils.NewTokenManager("s3cret", time.Hour))

	user, err := uc.UpdateNotificationPreferences(context.Background(), "user-1", prefs)

	require.NoError(t, err)
	assert.False(t, user.WantsPriceDrops())
	repo.AssertExpectations(t)
}
