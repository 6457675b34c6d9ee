package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/myatmin/twodlive/internal/live"
	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/services/result"
)

// LiveHandler handles the websocket endpoint for live result streaming
type LiveHandler struct {
	hub           *live.Hub
	resultService *result.Service
	logger        *slog.Logger
}

// NewLiveHandler creates a new live handler
func NewLiveHandler(hub *live.Hub, resultService *result.Service, logger *slog.Logger) *LiveHandler {
	return &LiveHandler{
		hub:           hub,
		resultService: resultService,
		logger:        logger.With(slog.String("component", "live_handler")),
	}
}

// Stream handles GET /ws/live-result. New viewers get an INFO event
// carrying the latest published result before any RESULT frames.
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	latest, err := h.resultService.Latest(r.Context())
	if err != nil {
		if !errors.Is(err, model.ErrResultNotFound) {
			h.logger.Warn("could not load latest result for welcome event",
				slog.String("error", err.Error()))
		}
		latest = nil
	}

	live.ServeWS(h.hub, w, r, live.InfoEvent(latest), h.logger)
}
