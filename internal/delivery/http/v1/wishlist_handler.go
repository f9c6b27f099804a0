package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/usecase"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/logger"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/utils"
)

type WishlistHandler struct {
	usecase *usecase.WishlistUsecase
}

func NewWishlistHandler(usecase *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{usecase: usecase}
}

func (h *WishlistHandler) GetMyWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.usecase.GetMyWishlist(r.Context(), user.ID)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to list wishlist")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load wishlist")
		return
	}

	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, created, err := h.usecase.AddToWishlist(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to add wishlist item")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, status, item)
}

func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := h.usecase.RemoveFromWishlist(r.Context(), user.ID, r.PathValue("id"))
	switch {
	case err == nil:
		utils.WriteMessage(w, http.StatusOK, "Item removed from wishlist successfully")
	case errors.Is(err, domain.ErrInvalidID):
		utils.WriteError(w, http.StatusBadRequest, "Invalid item ID format")
	case errors.Is(err, domain.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "Item not found in wishlist")
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to remove wishlist item")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to remove from wishlist")
	}
}
