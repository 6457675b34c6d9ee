package request

// RegisterRequest is the body for POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FillCreditRequest is the body for POST /api/admin/fill-credit
type FillCreditRequest struct {
	Username string  `json:"username"`
	Amount   float64 `json:"amount"`
}

// BroadcastResultRequest is the body for POST /api/admin/broadcast-result
type BroadcastResultRequest struct {
	Result string `json:"result"`
}
