package handler

import (
	"net/http"

	"github.com/myatmin/twodlive/internal/api/middleware"
	"github.com/myatmin/twodlive/internal/api/response"
	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/services/auth"
)

// UserHandler handles authenticated user endpoints
type UserHandler struct {
	authService *auth.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// GetMe handles GET /api/user/me. The balance is re-read from storage
// rather than taken from the token, so credits applied after login show up.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	user, err := h.authService.GetUser(r.Context(), model.UserID(claims.UserID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
