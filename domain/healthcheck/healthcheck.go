package healthcheck

import (
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
)

var ErrUnhealthy = xerrors.New("backend unhealthy")

// Report lists every configured backend with "ok" or the reason it failed.
type Report struct {
	Healthy  bool              `json:"healthy"`
	Backends map[string]string `json:"backends"`
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	// Check returns ErrUnhealthy alongside the report when any backend failed.
	Check(c ctx.Ctx) (*Report, error)
}

// HealthCheckRepo pings the backends the process was configured with.
type HealthCheckRepo interface {
	Ping(c ctx.Ctx) map[string]error
}
