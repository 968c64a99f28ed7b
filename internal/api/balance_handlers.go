package api

import (
	"encoding/json"
	"io"
	"net/http"
)

// handleGetBalance is a degrading read: balance is null when the couple
// is missing a member or the computation failed.
func (h *Handler) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	bal := h.balances.GetCoupleBalance(r.Context(), identity(r))
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"balance": bal,
	})
}

func (h *Handler) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	// The body is optional; a settlement needs no fields.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settlement, err := h.balances.CreateSettlement(r.Context(), identity(r), req.Notes)
	if err != nil {
		respondServiceError(w, err, "Error al crear la liquidación")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"settlement": settlement,
	})
}

func (h *Handler) handleGetSettlements(w http.ResponseWriter, r *http.Request) {
	settlements := h.balances.GetSettlements(r.Context(), identity(r))
	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"settlements": settlements,
	})
}
