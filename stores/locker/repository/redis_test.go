package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/keys"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
	mockRedis "github.com/yr12345678/piers-rugyard-auctions/service/redis/mocks"
)

var (
	mockCtx = ctx.Background()
	bob     = domain.Address("0xB0B0000000000000000000000000000000000002")
)

type redisRepoSuite struct {
	suite.Suite
	redis *mockRedis.Service
	repo  locker.Repository
}

func (s *redisRepoSuite) SetupTest() {
	s.redis = &mockRedis.Service{}
	s.repo = NewRedis(s.redis)
}

func (s *redisRepoSuite) TearDownTest() {
	s.redis.AssertExpectations(s.T())
}

func TestRedisRepoSuite(t *testing.T) {
	suite.Run(t, new(redisRepoSuite))
}

func (s *redisRepoSuite) parcel() (locker.Parcel, []byte) {
	p := locker.NewParcel(
		domain.NewFunds("xrd", decimal.RequireFromString("142.5")),
		true,
		time.Date(2022, 6, 1, 6, 0, 0, 0, time.UTC),
	)
	raw, err := json.Marshal(p)
	s.Require().NoError(err)
	return p, raw
}

func (s *redisRepoSuite) TestAppend() {
	p, raw := s.parcel()
	s.redis.On("RPush", mockCtx, keys.LockerKey(bob), raw).Return(1, nil).Once()
	s.NoError(s.repo.Append(mockCtx, bob, p))
}

func (s *redisRepoSuite) TestTake() {
	p, raw := s.parcel()
	s.redis.On("LTake", mockCtx, keys.LockerKey(bob)).Return([][]byte{raw}, nil).Once()

	got, err := s.repo.Take(mockCtx, bob)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.True(p.Funds.Amount.Equal(got[0].Funds.Amount))
	s.Equal(p.Funds.Resource, got[0].Funds.Resource)
	s.True(got[0].TryDirect)
}

func (s *redisRepoSuite) TestListBadPayload() {
	s.redis.On("LRange", mockCtx, keys.LockerKey(bob), 0, 0).Return([][]byte{[]byte("{")}, nil).Once()
	_, err := s.repo.List(mockCtx, bob)
	s.Error(err)
}
