package handler

import (
	"log/slog"
	"net/http"

	"github.com/myatmin/twodlive/internal/api/response"
	"github.com/myatmin/twodlive/internal/services/result"
)

// ProxyHandler handles the upstream feed proxy endpoint
type ProxyHandler struct {
	feed   result.Feed
	logger *slog.Logger
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(feed result.Feed, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		feed:   feed,
		logger: logger.With(slog.String("component", "proxy_handler")),
	}
}

// GetLive handles GET /api/2d-proxy. It always answers 200: when the
// upstream is unreachable the body carries the offline placeholder
// instead of an error, so polling clients keep rendering.
func (h *ProxyHandler) GetLive(w http.ResponseWriter, r *http.Request) {
	live, err := h.feed.Fetch(r.Context())
	if err != nil {
		h.logger.Warn("upstream feed unavailable", slog.String("error", err.Error()))
	}

	response.JSON(w, http.StatusOK, response.LiveProxyResponse{Live: live})
}
