package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/andrelima-dev/meuestoque/internal/auth"
	"github.com/andrelima-dev/meuestoque/internal/models"
	"github.com/andrelima-dev/meuestoque/internal/repo"
)

func validateCredentials(req CredentialsRequest) []FieldError {
	var errs []FieldError
	if len(strings.TrimSpace(req.Username)) < 3 {
		errs = append(errs, FieldError{"username", "username must have at least 3 characters"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, FieldError{"password", "password must have at least 6 characters"})
	}
	return errs
}

// issueTokens creates an access token plus, when a refresh store is wired,
// a refresh token.
func issueTokens(r *http.Request, user models.User) (string, string, error) {
	token, err := auth.GenerateToken(user)
	if err != nil {
		return "", "", err
	}
	var refreshToken string
	if refreshStore != nil {
		refreshToken, err = refreshStore.Issue(r.Context(), user.ID)
		if err != nil {
			return "", "", err
		}
	}
	return token, refreshToken, nil
}

// RegisterHandler creates an account and signs the new user in.
//
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {object} map[string]any
// @Failure 409 {string} string
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !readJSON(w, r, &req) {
		return
	}
	if errs := validateCredentials(req); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		http.Error(w, "username already taken", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	token, refreshToken, err := issueTokens(r, user)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterResult{
		Message:      "user created",
		Token:        token,
		RefreshToken: refreshToken,
	})
}

// LoginHandler authenticates a user. Repeated failures for the same
// username add strikes; enough strikes inside the window ban further
// attempts for a while.
//
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username and password"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string
// @Failure 403 {string} string
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !readJSON(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)

	if banStore != nil {
		banned, err := banStore.Banned(r.Context(), username)
		if err != nil {
			log.Printf("failed to check login ban for %q: %v", username, err)
		} else if banned {
			http.Error(w, "too many failed attempts, try again later", http.StatusForbidden)
			return
		}
	}

	user, err := userRepo.GetByUsername(username)
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	}
	if err != nil {
		if banStore != nil {
			if _, serr := banStore.Strike(r.Context(), username); serr != nil {
				log.Printf("failed to record login strike for %q: %v", username, serr)
			}
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if banStore != nil {
		banStore.ClearStrikes(r.Context(), username)
	}

	token, refreshToken, err := issueTokens(r, user)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: refreshToken})
}

// RefreshTokenHandler exchanges a refresh token for a fresh access token.
// The used refresh token is revoked and a new one issued in its place.
//
// @Summary Refresh the access token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string
// @Router /refresh [post]
func RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	if refreshStore == nil {
		http.Error(w, "refresh tokens not enabled", http.StatusNotImplemented)
		return
	}
	var req RefreshRequest
	if !readJSON(w, r, &req) {
		return
	}

	userID, err := refreshStore.Validate(r.Context(), req.RefreshToken)
	if errors.Is(err, auth.ErrRefreshTokenNotFound) {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "failed to validate refresh token", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.GetByID(userID)
	if err != nil {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	if err := refreshStore.Revoke(r.Context(), req.RefreshToken); err != nil {
		log.Printf("failed to revoke refresh token: %v", err)
	}
	token, refreshToken, err := issueTokens(r, user)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: refreshToken})
}
