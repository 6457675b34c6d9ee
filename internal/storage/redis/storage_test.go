package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/myatmin/twodlive/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newUser(id, username string) *model.User {
	return &model.User{
		ID:           model.UserID(id),
		Username:     username,
		PasswordHash: "hash123",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := s.newUser("user-1", "alice")

	err := s.storage.CreateUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal("alice", retrieved.Username)
	s.Equal("hash123", retrieved.PasswordHash)
	s.Equal(0.0, retrieved.Balance)
	s.True(user.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	_ = s.storage.CreateUser(s.ctx, s.newUser("user-1", "alice"))

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestCreateUserDuplicateUsername() {
	err := s.storage.CreateUser(s.ctx, s.newUser("user-1", "alice"))
	s.Require().NoError(err)

	err = s.storage.CreateUser(s.ctx, s.newUser("user-2", "alice"))
	s.ErrorIs(err, model.ErrUsernameExists)

	// The index still points at the original record
	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)

	count, err := s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *StorageSuite) TestRejectedCreateLeavesNoRecord() {
	s.Require().NoError(s.storage.CreateUser(s.ctx, s.newUser("user-1", "alice")))

	err := s.storage.CreateUser(s.ctx, s.newUser("user-2", "alice"))
	s.Require().ErrorIs(err, model.ErrUsernameExists)

	// The losing registration is rejected before anything is written,
	// so no user hash exists for it
	_, err = s.storage.GetUser(s.ctx, "user-2")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestFirstUserBecomesAdmin() {
	first := s.newUser("user-1", "alice")
	second := s.newUser("user-2", "bob")

	s.Require().NoError(s.storage.CreateUser(s.ctx, first))
	s.Require().NoError(s.storage.CreateUser(s.ctx, second))

	s.True(first.IsAdmin)
	s.False(second.IsAdmin)

	retrieved, _ := s.storage.GetUser(s.ctx, "user-1")
	s.True(retrieved.IsAdmin)
	retrieved, _ = s.storage.GetUser(s.ctx, "user-2")
	s.False(retrieved.IsAdmin)
}

func (s *StorageSuite) TestCountUsersEmpty() {
	count, err := s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}

// Balance tests

func (s *StorageSuite) TestCreditBalance() {
	_ = s.storage.CreateUser(s.ctx, s.newUser("user-1", "alice"))

	balance, err := s.storage.CreditBalance(s.ctx, "user-1", 25.5)
	s.Require().NoError(err)
	s.Equal(25.5, balance)

	balance, err = s.storage.CreditBalance(s.ctx, "user-1", 10)
	s.Require().NoError(err)
	s.Equal(35.5, balance)

	user, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(35.5, user.Balance)
}

func (s *StorageSuite) TestCreditBalanceUnknownUser() {
	_, err := s.storage.CreditBalance(s.ctx, "nonexistent", 10)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestConcurrentCreditsSumExactly() {
	_ = s.storage.CreateUser(s.ctx, s.newUser("user-1", "alice"))

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.storage.CreditBalance(s.ctx, "user-1", 10)
			s.NoError(err)
		}()
	}
	wg.Wait()

	user, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(float64(10*n), user.Balance)
}

// Latest result tests

func (s *StorageSuite) TestLatestResultRoundTrip() {
	_, err := s.storage.GetLatestResult(s.ctx)
	s.ErrorIs(err, model.ErrResultNotFound)

	event := &model.ResultEvent{
		Value:     "47",
		EmittedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.SaveLatestResult(s.ctx, event))

	retrieved, err := s.storage.GetLatestResult(s.ctx)
	s.Require().NoError(err)
	s.Equal("47", retrieved.Value)
	s.True(event.EmittedAt.Equal(retrieved.EmittedAt))
}

func (s *StorageSuite) TestLatestResultOverwrite() {
	_ = s.storage.SaveLatestResult(s.ctx, &model.ResultEvent{Value: "11", EmittedAt: time.Now()})
	_ = s.storage.SaveLatestResult(s.ctx, &model.ResultEvent{Value: "93", EmittedAt: time.Now()})

	retrieved, err := s.storage.GetLatestResult(s.ctx)
	s.Require().NoError(err)
	s.Equal("93", retrieved.Value)
}
