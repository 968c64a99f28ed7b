package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sisques-labs/pair-pay/internal/api"
	"github.com/sisques-labs/pair-pay/internal/auth"
	"github.com/sisques-labs/pair-pay/internal/config"
	"github.com/sisques-labs/pair-pay/internal/service"
	"github.com/sisques-labs/pair-pay/internal/storage/sqlite"
	"github.com/sisques-labs/pair-pay/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	handler := api.NewHandler(
		service.NewAuthService(authenticator, jwtManager, store),
		service.NewCoupleService(store),
		service.NewExpenseService(store),
		service.NewBalanceService(store),
	)
	router := api.NewRouter(handler, jwtManager)

	// h2c allows HTTP/2 without TLS when a proxy in front terminates it.
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
