package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sisques-labs/pair-pay/internal/auth"
	"github.com/sisques-labs/pair-pay/internal/middleware"
)

// NewRouter builds the full HTTP surface: public auth endpoints, the
// JWT-protected API subrouter, liveness and metrics.
func NewRouter(h *Handler, jwtManager *auth.JWTManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Metrics, middleware.Logging)

	router.HandleFunc("/healthz", handleHealthz).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/api/auth/register", h.handleRegister).Methods("POST")
	router.HandleFunc("/api/auth/login", h.handleLogin).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuth(jwtManager))

	api.HandleFunc("/auth/logout", h.handleLogout).Methods("POST")
	api.HandleFunc("/auth/me", h.handleGetCurrentUser).Methods("GET")

	api.HandleFunc("/couple", h.handleCreateCouple).Methods("POST")
	api.HandleFunc("/couple", h.handleGetCurrentCouple).Methods("GET")
	api.HandleFunc("/couple/join", h.handleJoinCouple).Methods("POST")

	api.HandleFunc("/expenses", h.handleCreateExpense).Methods("POST")
	api.HandleFunc("/expenses", h.handleGetExpenses).Methods("GET")
	api.HandleFunc("/expenses/{id}", h.handleGetExpense).Methods("GET")
	api.HandleFunc("/expenses/{id}", h.handleUpdateExpense).Methods("PATCH")
	api.HandleFunc("/expenses/{id}", h.handleDeleteExpense).Methods("DELETE")

	api.HandleFunc("/balance", h.handleGetBalance).Methods("GET")
	api.HandleFunc("/settlements", h.handleGetSettlements).Methods("GET")
	api.HandleFunc("/settlements", h.handleCreateSettlement).Methods("POST")

	api.HandleFunc("/categories", h.handleGetCategories).Methods("GET")

	return router
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
