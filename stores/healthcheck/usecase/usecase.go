package usecase

import (
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/base/metrics"
	hcdomain "github.com/yr12345678/piers-rugyard-auctions/domain/healthcheck"
)

type impl struct {
	repo    hcdomain.HealthCheckRepo
	metrics metrics.Service
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo, met metrics.Service) hcdomain.HealthCheckUsecase {
	if met == nil {
		met = metrics.Noop()
	}
	return &impl{
		repo:    repo,
		metrics: met,
	}
}

func (im *impl) Check(c ctx.Ctx) (*hcdomain.Report, error) {
	report := &hcdomain.Report{Healthy: true, Backends: map[string]string{}}
	for backend, err := range im.repo.Ping(c) {
		if err == nil {
			report.Backends[backend] = "ok"
			continue
		}
		c.WithFields(log.Fields{"backend": backend, "err": err}).Error("health ping failed")
		im.metrics.BumpSum("ping.err", 1, "backend", backend)
		report.Backends[backend] = err.Error()
		report.Healthy = false
	}
	if !report.Healthy {
		return report, hcdomain.ErrUnhealthy
	}
	return report, nil
}
