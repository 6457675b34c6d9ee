package storage

import (
	"context"

	"github.com/myatmin/twodlive/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// CreateUser persists a new user and its username index entry as a
	// single atomic unit. It fails with model.ErrUsernameExists if the
	// username is already taken. The very first user ever created is
	// marked as admin before being persisted; the check and the write
	// happen under the same guard, so two racing registrations cannot
	// both become the first user.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUser returns the user with the given id, or model.ErrUserNotFound
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// GetUserByUsername resolves the username index and returns the user,
	// or model.ErrUserNotFound
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// CountUsers returns the number of users ever registered
	CountUsers(ctx context.Context) (int64, error)

	// CreditBalance atomically applies a positive delta to the user's
	// balance and returns the updated balance. Concurrent credits on the
	// same user must serialize: the final balance is the sum of all
	// applied deltas. Implementations that cannot apply the delta without
	// a read-modify-write round trip must use a compare-and-swap retry
	// and surface model.ErrTransientConflict when the retries are
	// exhausted.
	CreditBalance(ctx context.Context, id model.UserID, amount float64) (float64, error)

	// Latest result operations
	SaveLatestResult(ctx context.Context, event *model.ResultEvent) error
	GetLatestResult(ctx context.Context) (*model.ResultEvent, error)
}
