package response

import (
	"github.com/myatmin/twodlive/internal/model"
)

// User represents a user in API responses
type User struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	IsAdmin  bool    `json:"isAdmin"`
}

// UserFromModel converts a model.User to a response User.
// The password hash never leaves the server.
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		Balance:  u.Balance,
		IsAdmin:  u.IsAdmin,
	}
}

// RegisterResponse is the response for a successful registration
type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// LoginResponse is the response for a successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreditSummary is the per-user view returned after a credit operation
type CreditSummary struct {
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// FillCreditResponse is the response after crediting a user's balance
type FillCreditResponse struct {
	Message string        `json:"message"`
	User    CreditSummary `json:"user"`
}

// BroadcastResponse is the response after broadcasting a result
type BroadcastResponse struct {
	Status      string `json:"status"`
	Broadcasted string `json:"broadcasted"`
}

// LiveProxyResponse wraps the upstream live payload
type LiveProxyResponse struct {
	Live model.LiveResult `json:"live"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
