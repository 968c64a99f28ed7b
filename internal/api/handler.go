// Package api exposes the application over JSON REST. Handlers translate
// HTTP requests into service calls and service errors into the envelope
// the clients expect: {"success":true, ...} or
// {"success":false, "error":"<message>"}.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sisques-labs/pair-pay/internal/middleware"
	"github.com/sisques-labs/pair-pay/internal/service"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	auth     *service.AuthService
	couples  *service.CoupleService
	expenses *service.ExpenseService
	balances *service.BalanceService
}

// NewHandler creates a new Handler wired to the given services.
func NewHandler(auth *service.AuthService, couples *service.CoupleService, expenses *service.ExpenseService, balances *service.BalanceService) *Handler {
	return &Handler{
		auth:     auth,
		couples:  couples,
		expenses: expenses,
		balances: balances,
	}
}

// identity rebuilds the caller's identity from the claims the auth
// middleware stored in the context.
func identity(r *http.Request) service.Identity {
	ctx := r.Context()
	return service.Identity{
		UserID:   middleware.GetUserID(ctx),
		Email:    middleware.GetEmail(ctx),
		FullName: middleware.GetFullName(ctx),
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// User-facing messages. The product ships in Spanish; unexpected
// collaborator failures collapse into the per-operation generic string
// while the original cause is logged at the service layer.
const (
	msgUnauthenticated = "Usuario no autenticado"
	msgMissingEmail    = "Email no disponible para el usuario actual"
	msgAlreadyPaired   = "Ya perteneces a una pareja"
	msgInvalidCode     = "Código de invitación inválido"
	msgCoupleFull      = "Esta pareja ya tiene 2 miembros"
	msgNotPaired       = "No perteneces a una pareja"
	msgExpenseNotFound = "Gasto no encontrado"
	msgCannotEdit      = "No tienes permiso para editar este gasto"
	msgCannotDelete    = "No tienes permiso para eliminar este gasto"
	msgNoBalance       = "No se pudo calcular el balance"
	msgNothingToSettle = "No hay balance pendiente"
	msgBalanceChanged  = "El balance cambió, vuelve a intentarlo"
)

// respondServiceError maps the shared service sentinels to HTTP
// responses. Unexpected errors fall back to the operation's generic
// message with a 500. Handlers special-case resource-specific sentinels
// (NotFound, Forbidden) before calling this.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, msgUnauthenticated)
	case errors.Is(err, service.ErrMissingEmail):
		respondError(w, http.StatusBadRequest, msgMissingEmail)
	case errors.Is(err, service.ErrAlreadyPaired):
		respondError(w, http.StatusConflict, msgAlreadyPaired)
	case errors.Is(err, service.ErrInvalidCode):
		respondError(w, http.StatusConflict, msgInvalidCode)
	case errors.Is(err, service.ErrCoupleFull):
		respondError(w, http.StatusConflict, msgCoupleFull)
	case errors.Is(err, service.ErrNotPaired):
		respondError(w, http.StatusBadRequest, msgNotPaired)
	case errors.Is(err, service.ErrNoBalance):
		respondError(w, http.StatusBadRequest, msgNoBalance)
	case errors.Is(err, service.ErrAlreadySettled):
		respondError(w, http.StatusConflict, msgNothingToSettle)
	case errors.Is(err, service.ErrBalanceChanged):
		respondError(w, http.StatusConflict, msgBalanceChanged)
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	default:
		slog.Error("Unexpected service error", "error", err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
