package domain

import (
	"context"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

type User struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"fullName"`
	Role               string `json:"role"`
	EmailNotifications bool   `json:"emailNotifications"`
	// PriceDropNotifications is nil for profiles that never stored a choice.
	PriceDropNotifications *bool     `json:"priceDropNotifications,omitempty"`
	IsActive               bool      `json:"isActive"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// WantsPriceDrops applies the default (enabled) to profiles without a stored choice.
func (u *User) WantsPriceDrops() bool {
	if u == nil || u.PriceDropNotifications == nil {
		return true
	}
	return *u.PriceDropNotifications
}

type NotificationPreferences struct {
	EmailNotifications     bool `json:"emailNotifications"`
	PriceDropNotifications bool `json:"priceDropNotifications"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateNotificationPreferences(ctx context.Context, id string, prefs NotificationPreferences) (*User, error)
}
