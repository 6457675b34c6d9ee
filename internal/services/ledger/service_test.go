package ledger

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/myatmin/twodlive/internal/model"
	"github.com/myatmin/twodlive/internal/storage/memory"
	"github.com/myatmin/twodlive/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()

	_ = s.storage.CreateUser(s.ctx, &model.User{
		ID:        "user-1",
		Username:  "alice",
		CreatedAt: time.Now(),
	})
}

func (s *ServiceSuite) TestCreditSucceeds() {
	balance, err := s.service.Credit(s.ctx, "alice", 100)
	s.Require().NoError(err)
	s.Equal(100.0, balance)

	balance, err = s.service.Credit(s.ctx, "alice", 50.25)
	s.Require().NoError(err)
	s.Equal(150.25, balance)
}

func (s *ServiceSuite) TestCreditRejectsInvalidAmounts() {
	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := s.service.Credit(s.ctx, "alice", amount)
		s.ErrorIs(err, model.ErrInvalidAmount)
	}

	// Balance stays untouched after rejected credits
	user, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(0.0, user.Balance)
}

func (s *ServiceSuite) TestCreditUnknownUser() {
	_, err := s.service.Credit(s.ctx, "nobody", 10)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestConcurrentCreditsSumExactly() {
	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.service.Credit(s.ctx, "alice", 10)
			s.NoError(err)
		}()
	}
	wg.Wait()

	user, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(float64(10*n), user.Balance)
}
