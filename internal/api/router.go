package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/myatmin/twodlive/internal/api/handler"
	"github.com/myatmin/twodlive/internal/api/middleware"
	"github.com/myatmin/twodlive/internal/api/response"
	"github.com/myatmin/twodlive/internal/live"
	"github.com/myatmin/twodlive/internal/services/auth"
	"github.com/myatmin/twodlive/internal/services/ledger"
	"github.com/myatmin/twodlive/internal/services/result"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	Ledger        *ledger.Service
	ResultService *result.Service
	Feed          result.Feed
	Hub           *live.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.AuthService)
	adminHandler := handler.NewAdminHandler(cfg.Ledger, cfg.ResultService)
	proxyHandler := handler.NewProxyHandler(cfg.Feed, cfg.Logger)
	liveHandler := handler.NewLiveHandler(cfg.Hub, cfg.ResultService, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.RequireAdmin()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no token required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Authenticated user routes
	user := api.PathPrefix("/user").Subrouter()
	user.Use(authMiddleware)
	user.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)

	// Admin routes (token + admin flag)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.Use(adminMiddleware)
	admin.HandleFunc("/fill-credit", adminHandler.FillCredit).Methods(http.MethodPost)
	admin.HandleFunc("/broadcast-result", adminHandler.BroadcastResult).Methods(http.MethodPost)
	admin.HandleFunc("/broadcast-live", adminHandler.BroadcastLive).Methods(http.MethodPost)

	// Upstream feed proxy (public, always 200)
	api.HandleFunc("/2d-proxy", proxyHandler.GetLive).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Websocket endpoint lives outside /api so the upgrade skips the
	// JSON-oriented middleware chain
	r.HandleFunc("/ws/live-result", liveHandler.Stream).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
