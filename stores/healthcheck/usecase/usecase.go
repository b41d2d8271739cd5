package usecase

import (
	"github.com/campustrade/goapi/base/ctx"
	hcdomain "github.com/campustrade/goapi/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(context ctx.Ctx) *hcdomain.Report {
	report := &hcdomain.Report{
		Healthy: true,
		Mongo:   hcdomain.StateOk,
		Redis:   hcdomain.StateOk,
	}
	if err := im.repo.PingMongo(context); err != nil {
		report.Healthy = false
		report.Mongo = err.Error()
	}
	if err := im.repo.PingRedis(context); err != nil {
		report.Healthy = false
		report.Redis = err.Error()
	}
	return report
}
