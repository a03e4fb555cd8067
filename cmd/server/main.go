package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mkozlowski/albumz/internal/auth"
	"github.com/mkozlowski/albumz/internal/config"
	"github.com/mkozlowski/albumz/internal/domain"
	"github.com/mkozlowski/albumz/internal/handler"
	"github.com/mkozlowski/albumz/internal/storage/sqlite"
	"github.com/mkozlowski/albumz/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.UsingDefaultSecret() {
		slog.Warn("JWT_SECRET not set, using insecure development secret")
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authn := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	catalog := domain.NewCatalog(store)

	gin.SetMode(gin.ReleaseMode)
	router := handler.New(catalog, authn, tokens).Router()

	// Wrap with h2c so clients can use HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
