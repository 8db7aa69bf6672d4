package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/andrelima-dev/meuestoque/internal/repo"
)

// GetProfileHandler returns the authenticated user's profile.
//
// @Summary Get profile
// @Tags settings
// @Produce json
// @Success 200 {object} ProfileResponse
// @Security BearerAuth
// @Router /settings/profile [get]
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := userRepo.GetByID(currentUserID(r))
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Id: user.ID, Username: user.Username})
}

// UpdateProfileHandler renames the account.
//
// @Summary Update profile
// @Tags settings
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "New username"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} map[string]any
// @Failure 409 {string} string
// @Security BearerAuth
// @Router /settings/profile [put]
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !readJSON(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		writeFieldErrors(w, []FieldError{{Field: "username", Description: "username must have at least 3 characters"}})
		return
	}

	user, err := userRepo.UpdateProfile(currentUserID(r), username)
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		http.Error(w, "username already taken", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Id: user.ID, Username: user.Username})
}

// ChangePasswordHandler replaces the password after checking the current
// one.
//
// @Summary Change password
// @Tags settings
// @Accept json
// @Param passwords body ChangePasswordRequest true "Current and new password"
// @Success 204 {string} string
// @Failure 400 {object} map[string]any
// @Failure 401 {string} string
// @Security BearerAuth
// @Router /settings/password [put]
func ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !readJSON(w, r, &req) {
		return
	}
	if len(req.NewPassword) < 6 {
		writeFieldErrors(w, []FieldError{{Field: "new_password", Description: "password must have at least 6 characters"}})
		return
	}

	user, err := userRepo.GetByID(currentUserID(r))
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		http.Error(w, "current password does not match", http.StatusUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}
	if err := userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		http.Error(w, "failed to change password", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetResetReferenceHandler stores the timestamp from which the rolling
// sales balance is computed. Older sales stay stored; they are only
// excluded from the displayed totals.
//
// @Summary Set the balance reset reference
// @Tags settings
// @Accept json
// @Param reference body ResetReferenceRequest true "RFC3339 timestamp, defaults to now"
// @Success 204 {string} string
// @Failure 400 {object} map[string]any
// @Security BearerAuth
// @Router /settings/reset-reference [put]
func SetResetReferenceHandler(w http.ResponseWriter, r *http.Request) {
	if prefsStore == nil {
		http.Error(w, "preferences not enabled", http.StatusNotImplemented)
		return
	}
	var req ResetReferenceRequest
	if !readJSON(w, r, &req) {
		return
	}

	ref := time.Now()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			writeFieldErrors(w, []FieldError{{Field: "timestamp", Description: "timestamp must be RFC3339"}})
			return
		}
		ref = parsed
	}

	if err := prefsStore.SetResetReference(r.Context(), currentUserID(r), ref); err != nil {
		http.Error(w, "failed to store reset reference", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearResetReferenceHandler removes the reset reference, bringing the
// full sales history back into the balance.
//
// @Summary Clear the balance reset reference
// @Tags settings
// @Success 204 {string} string
// @Security BearerAuth
// @Router /settings/reset-reference [delete]
func ClearResetReferenceHandler(w http.ResponseWriter, r *http.Request) {
	if prefsStore == nil {
		http.Error(w, "preferences not enabled", http.StatusNotImplemented)
		return
	}
	if err := prefsStore.ClearResetReference(r.Context(), currentUserID(r)); err != nil {
		http.Error(w, "failed to clear reset reference", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
