package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/myatmin/twodlive/internal/dependencies/clock"
	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/storage"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// Service handles registration, login and token verification.
// Sessions are stateless: every request recomputes the claims from the
// signed token, so there is no server-side session state and no revocation.
// Rotating the secret invalidates every outstanding token at once.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// Config holds configuration for the auth service
type Config struct {
	// Secret keys the token signature. It must come from deployment
	// configuration; the service refuses to start without one.
	Secret []byte
	// TokenTTL is the validity window of issued tokens
	TokenTTL time.Duration
}

// DefaultConfig returns default auth configuration. The secret has no
// default and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("auth: signing secret is required")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	return &Service{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "auth")),
	}, nil
}

// Register creates a new user account. The first account ever registered
// is promoted to admin by the storage layer's atomic create.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if len(username) < minUsernameLength {
		return nil, model.ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return nil, model.ErrInvalidPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		PasswordHash: hash,
		Balance:      0,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
		slog.Bool("is_admin", user.IsAdmin))

	return user, nil
}

// Login authenticates a user and issues a signed token
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", model.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetUser returns the user with the given id
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// HashPassword computes the one-way digest of a password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored digest.
// bcrypt recomputes the full digest and compares in constant time, so no
// prefix-length timing signal leaks. Any mismatch, including a malformed
// stored digest, yields false rather than an error.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
