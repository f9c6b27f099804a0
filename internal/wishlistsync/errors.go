package wishlistsync

import (
	"errors"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

// Kind classifies a failure for the view layer.
type Kind int

const (
	KindGeneric Kind = iota
	KindAuthExpired
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth_expired"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "generic"
	}
}

const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgFetchFailed    = "Failed to load your wishlist. Please try again."
	msgRemoveFailed   = "Failed to remove item from wishlist. Please try again."
	msgAlreadyRemoved = "Item not found in wishlist. It may have been already removed."
	msgInvalidItem    = "Invalid item data. Please refresh the page and try again."
	msgInvalidItemID  = "Invalid item ID format. Please refresh the page and try again."
	msgToggleFailed   = "Failed to update notification preferences. Please try again."
)

// Error is the single human-readable failure surfaced by the controller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Soft reports whether the failure left local state converged with the store.
func (e *Error) Soft() bool {
	return e.Kind == KindNotFound
}

// IsKind reports whether err carries a controller error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// classify maps a store failure onto the controller taxonomy. A not-found
// cause is only benign for removals, so fetches pass notFoundBenign=false.
func classify(err error, genericMsg string, notFoundBenign bool) *Error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return &Error{Kind: KindAuthExpired, Message: msgSessionExpired, Err: err}
	case notFoundBenign && errors.Is(err, domain.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: msgAlreadyRemoved, Err: err}
	default:
		return &Error{Kind: KindGeneric, Message: genericMsg, Err: err}
	}
}
