package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/campustrade/goapi/base/ctx"
	hcdomain "github.com/campustrade/goapi/domain/healthcheck"
	"github.com/campustrade/goapi/domain/healthcheck/mocks"
)

type healthCheckSuite struct {
	suite.Suite

	ctx  ctx.Ctx
	repo *mocks.HealthCheckRepo
	uc   hcdomain.HealthCheckUsecase
}

func (s *healthCheckSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.repo = &mocks.HealthCheckRepo{}
	s.uc = New(s.repo)
}

func (s *healthCheckSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func TestHealthCheckSuite(t *testing.T) {
	suite.Run(t, new(healthCheckSuite))
}

func (s *healthCheckSuite) TestHealthy() {
	s.repo.On("PingMongo", s.ctx).Return(nil).Once()
	s.repo.On("PingRedis", s.ctx).Return(nil).Once()

	report := s.uc.Check(s.ctx)
	s.Require().True(report.Healthy)
	s.Require().Equal(hcdomain.StateOk, report.Mongo)
	s.Require().Equal(hcdomain.StateOk, report.Redis)
}

func (s *healthCheckSuite) TestRedisDown() {
	s.repo.On("PingMongo", s.ctx).Return(nil).Once()
	s.repo.On("PingRedis", s.ctx).Return(errors.New("connection refused")).Once()

	report := s.uc.Check(s.ctx)
	s.Require().False(report.Healthy)
	s.Require().Equal(hcdomain.StateOk, report.Mongo)
	s.Require().Equal("connection refused", report.Redis)
}
