package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

const userColumns = `id, email, full_name, role, email_notifications,
	price_drop_notifications, is_active, created_at, updated_at`

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, "get user by id", query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, "get user by email", query, email)
}

func (r *userRepository) UpdateNotificationPreferences(ctx context.Context, id string, prefs domain.NotificationPreferences) (*domain.User, error) {
	query := `
		UPDATE users
		SET email_notifications = $2, price_drop_notifications = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return r.getOne(ctx, "update notification preferences", query, id, prefs.EmailNotifications, prefs.PriceDropNotifications)
}

func (r *userRepository) getOne(ctx context.Context, op, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.EmailNotifications,
		&u.PriceDropNotifications, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
