package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/storage"
)

// maxCreditAttempts bounds the retry loop for storage backends that report
// write conflicts instead of offering a native atomic increment
const maxCreditAttempts = 3

// Service applies race-safe credit mutations to user balances
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new ledger Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "ledger")),
	}
}

// Credit atomically adds amount to the named user's balance and returns
// the updated balance. Concurrent credits on the same user never lose an
// update: the delta is applied by the storage layer's atomic increment,
// never by a read-then-unconditional-write.
func (s *Service) Credit(ctx context.Context, username string, amount float64) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, model.ErrInvalidAmount
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return 0, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxCreditAttempts; attempt++ {
		balance, err := s.storage.CreditBalance(ctx, user.ID, amount)
		if err == nil {
			s.logger.Info("balance credited",
				slog.String("user_id", string(user.ID)),
				slog.Float64("amount", amount),
				slog.Float64("balance", balance))
			return balance, nil
		}
		if !errors.Is(err, model.ErrTransientConflict) {
			return 0, err
		}
		lastErr = err
		s.logger.Warn("credit conflict, retrying",
			slog.String("user_id", string(user.ID)),
			slog.Int("attempt", attempt))
	}

	return 0, fmt.Errorf("crediting %s after %d attempts: %w", username, maxCreditAttempts, lastErr)
}
