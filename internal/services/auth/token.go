package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/myatmin/twodlive/internal/model"
)

// Claims are the identity facts carried by a session token. They are
// recomputed from the signature on every request, never stored server-side.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// IssueToken signs a self-contained token binding the user's identity
func (s *Service) IssueToken(user *model.User) (string, error) {
	now := s.clock.Now()
	claims := &Claims{
		UserID:   string(user.ID),
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

// VerifyToken validates the signature and expiry of a token and returns
// its claims. Malformed, tampered or expired tokens all fail with
// model.ErrInvalidToken.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.cfg.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !token.Valid {
		return nil, model.ErrInvalidToken
	}
	return claims, nil
}
