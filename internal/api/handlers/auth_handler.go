package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/CoderFake/healthcare-system/internal/application/services"
	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// AuthService defines the session and account operations used over HTTP
type AuthService interface {
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context) (*entities.Account, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ResetPassword(ctx context.Context, username, newPassword string) error
	CreateAccount(ctx context.Context, fields entities.Fields) (*entities.Account, error)
	ListAccounts(ctx context.Context) ([]*entities.Account, error)
	DeleteAccount(ctx context.Context, username string) error
}

// AuthHandler handles login sessions and account management
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type resetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"new_password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "logged in", session)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if err := h.service.Logout(r.Context(), token); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "logged out", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.CurrentUser(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", account)
}

// ChangePassword handles POST /api/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ChangePassword(r.Context(), req.OldPassword, req.NewPassword); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "password changed", nil)
}

// ResetPassword handles POST /api/auth/reset
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Username, req.NewPassword); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "password reset", nil)
}

// ListAccounts handles GET /api/accounts
func (h *AuthHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", accounts)
}

// CreateAccount handles POST /api/accounts
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.service.CreateAccount(r.Context(), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, "account created", account)
}

// DeleteAccount handles DELETE /api/accounts/{username}
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAccount(r.Context(), r.PathValue("username")); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "account deleted", nil)
}
