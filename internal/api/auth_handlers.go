package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sisques-labs/pair-pay/internal/auth"
	"github.com/sisques-labs/pair-pay/internal/service"
)

// Identity errors keep the collaborator's own messages; they are not
// part of the Spanish catalog the domain endpoints use.
func respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		respondServiceError(w, err, "Could not complete the request")
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"fullName"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		respondAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), identity(r)); err != nil {
		respondServiceError(w, err, "Could not complete the request")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetCurrentUser(r.Context(), identity(r))
	if err != nil {
		// A valid token for a deleted account reads as unauthenticated.
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}
		respondServiceError(w, err, "Could not complete the request")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}
