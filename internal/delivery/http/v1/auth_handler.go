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

type AuthHandler struct {
	authUC *usecase.AuthUsecase
}

func NewAuthHandler(authUC *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// IssueToken hands out an access token for an existing account.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.authUC.IssueToken(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrUnauthorized):
			utils.WriteError(w, http.StatusUnauthorized, "Unknown or inactive account")
		default:
			logger.WithContext(r.Context()).Error().Err(err).Msg("Token issuance failed")
			utils.WriteError(w, http.StatusInternalServerError, "Failed to issue token")
		}
		return
	}

	logger.WithContext(r.Context()).Info().Str("user_id", user.ID).Msg("Access token issued")
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken": token,
		"tokenType":   "Bearer",
		"user":        user,
	})
}

func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.authUC.GetProfile(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Token outlived the account.
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) UpdateNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.NotificationPreferences
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.authUC.UpdateNotificationPreferences(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to update notification preferences")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update notification preferences")
		return
	}

	utils.WriteJSON(w, http.StatusOK, updated)
}
