package healthcheck

import (
	"github.com/campustrade/goapi/base/ctx"
)

const (
	StateOk       = "ok"
	StateDegraded = "degraded"
)

// Report describes the state of each backing service.
type Report struct {
	Healthy bool   `json:"healthy"`
	Mongo   string `json:"mongo"`
	Redis   string `json:"redis"`
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) *Report
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingMongo(context ctx.Ctx) error
	PingRedis(context ctx.Ctx) error
}
