package memory

import (
	"context"
	"sync"

	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	latestResult  *model.ResultEvent
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernameIndex[user.Username]; ok {
		return model.ErrUsernameExists
	}

	// First registration ever bootstraps the admin. Users are never
	// deleted, so the map size is the all-time count.
	if len(s.users) == 0 {
		user.IsAdmin = true
	}

	stored := *user
	s.users[user.ID] = &stored
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	// Return a copy so callers never observe a concurrent balance mutation
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Storage) CreditBalance(ctx context.Context, id model.UserID, amount float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	user.Balance += amount
	return user.Balance, nil
}

func (s *Storage) SaveLatestResult(ctx context.Context, event *model.ResultEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := *event
	s.latestResult = &ev
	return nil
}

func (s *Storage) GetLatestResult(ctx context.Context) (*model.ResultEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latestResult == nil {
		return nil, model.ErrResultNotFound
	}
	ev := *s.latestResult
	return &ev, nil
}
