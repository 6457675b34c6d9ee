package handler

import (
	"encoding/json"
	"net/http"

	"github.com/myatmin/twodlive/internal/api/request"
	"github.com/myatmin/twodlive/internal/api/response"
	"github.com/myatmin/twodlive/internal/services/ledger"
	"github.com/myatmin/twodlive/internal/services/result"
)

// AdminHandler handles admin-only endpoints
type AdminHandler struct {
	ledger        *ledger.Service
	resultService *result.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(ledger *ledger.Service, resultService *result.Service) *AdminHandler {
	return &AdminHandler{
		ledger:        ledger,
		resultService: resultService,
	}
}

// FillCredit handles POST /api/admin/fill-credit
func (h *AdminHandler) FillCredit(w http.ResponseWriter, r *http.Request) {
	var req request.FillCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	balance, err := h.ledger.Credit(r.Context(), req.Username, req.Amount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FillCreditResponse{
		Message: "Credit filled successfully",
		User: response.CreditSummary{
			Username: req.Username,
			Balance:  balance,
		},
	})
}

// BroadcastResult handles POST /api/admin/broadcast-result
func (h *AdminHandler) BroadcastResult(w http.ResponseWriter, r *http.Request) {
	var req request.BroadcastResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	event, err := h.resultService.Publish(r.Context(), req.Result)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BroadcastResponse{
		Status:      "ok",
		Broadcasted: event.Value,
	})
}

// BroadcastLive handles POST /api/admin/broadcast-live. It pulls the
// current number from the upstream feed and fans it out in one step.
func (h *AdminHandler) BroadcastLive(w http.ResponseWriter, r *http.Request) {
	event, err := h.resultService.PublishFromFeed(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BroadcastResponse{
		Status:      "ok",
		Broadcasted: event.Value,
	})
}
