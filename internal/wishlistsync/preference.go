package wishlistsync

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

// ProfileStore is the remote user-profile service.
type ProfileStore interface {
	UpdateNotificationPreferences(ctx context.Context, prefs domain.NotificationPreferences) (*domain.User, error)
}

// PreferenceSync owns the price-drop notification flag and keeps it in step
// with the profile store. Toggles are optimistic and at most one is in flight.
type PreferenceSync struct {
	store  ProfileStore
	logger zerolog.Logger

	mu       sync.Mutex
	enabled  bool
	inFlight bool
}

// NewPreferenceSync returns a sync starting at initial.
func NewPreferenceSync(store ProfileStore, initial bool, logger zerolog.Logger) *PreferenceSync {
	return &PreferenceSync{
		store:   store,
		logger:  logger,
		enabled: initial,
	}
}

func (p *PreferenceSync) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *PreferenceSync) InFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Load takes the value from a newly signed-in user's profile. Profiles
// without a stored choice start enabled.
func (p *PreferenceSync) Load(user *domain.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight {
		return
	}
	p.enabled = user.WantsPriceDrops()
}

// Mirror adopts the value from a refreshed profile of the current user. A
// profile without the field keeps the current value. Both Mirror and Load are
// ignored while a toggle is in flight.
func (p *PreferenceSync) Mirror(user *domain.User) {
	if user == nil || user.PriceDropNotifications == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight {
		return
	}
	p.enabled = *user.PriceDropNotifications
}

// begin claims the in-flight slot and returns the flipped value plus the
// finalizer that frees the slot.
func (p *PreferenceSync) begin() (prev, next bool, done func(), ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inFlight {
		return false, false, nil, false
	}
	p.inFlight = true
	prev = p.enabled
	next = !prev
	p.enabled = next

	return prev, next, func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}, true
}

// Toggle flips the flag locally, then persists it. A failed update restores
// the previous value. Calls made while an update is in flight do nothing.
func (p *PreferenceSync) Toggle(ctx context.Context) error {
	prev, next, done, ok := p.begin()
	if !ok {
		p.logger.Debug().Msg("Notification preference update already in flight, skipping")
		return nil
	}
	defer done()

	_, err := p.store.UpdateNotificationPreferences(ctx, domain.NotificationPreferences{
		EmailNotifications:     true,
		PriceDropNotifications: next,
	})
	if err != nil {
		p.mu.Lock()
		p.enabled = prev
		p.mu.Unlock()

		p.logger.Error().Err(err).Bool("price_drop_notifications", next).Msg("Failed to update notification preferences")
		return classify(err, msgToggleFailed, false)
	}

	p.logger.Info().Bool("price_drop_notifications", next).Msg("Notification preferences updated")
	return nil
}
