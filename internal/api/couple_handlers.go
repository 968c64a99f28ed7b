package api

import (
	"encoding/json"
	"net/http"
)

func (h *Handler) handleCreateCouple(w http.ResponseWriter, r *http.Request) {
	couple, err := h.couples.CreateCouple(r.Context(), identity(r))
	if err != nil {
		respondServiceError(w, err, "Error al crear la pareja")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"couple":  couple,
	})
}

func (h *Handler) handleJoinCouple(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvitationCode string `json:"invitationCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	couple, err := h.couples.JoinCouple(r.Context(), identity(r), req.InvitationCode)
	if err != nil {
		respondServiceError(w, err, "Error al unirse a la pareja")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"couple":  couple,
	})
}

// handleGetCurrentCouple is a degrading read: couple is null when the
// caller has no couple or the lookup failed.
func (h *Handler) handleGetCurrentCouple(w http.ResponseWriter, r *http.Request) {
	couple := h.couples.GetCurrentCouple(r.Context(), identity(r))
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"couple":  couple,
	})
}
