package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/logger"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/utils"
)

type TokenIssuer interface {
	Generate(userID, email, role string) (string, error)
}

type AuthUsecase struct {
	userRepo domain.UserRepository
	tokens   TokenIssuer
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// IssueToken signs an access token for an existing, active account.
// Unknown or inactive accounts get ErrUnauthorized.
func (u *AuthUsecase) IssueToken(ctx context.Context, email string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := u.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

func (u *AuthUsecase) UpdateNotificationPreferences(ctx context.Context, userID string, prefs domain.NotificationPreferences) (*domain.User, error) {
	user, err := u.userRepo.UpdateNotificationPreferences(ctx, userID, prefs)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().
		Str("user_id", userID).
		Bool("email_notifications", prefs.EmailNotifications).
		Bool("price_drop_notifications", prefs.PriceDropNotifications).
		Msg("Notification preferences updated")
	return user, nil
}

var _ TokenIssuer = (*utils.TokenManager)(nil)
