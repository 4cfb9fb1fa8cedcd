package api

import (
	"log/slog"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/infrastructure"
	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/metrics"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// Runtime is what the API handlers share.
type Runtime struct {
	Domain     *resources.Domain
	Logger     *slog.Logger
	Metrics    *metrics.Service
	Pagination pagination.Config
}

// NewRuntime scopes the infrastructure logger to the API module.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure, domain *resources.Domain) *Runtime {
	return &Runtime{
		Domain:     domain,
		Logger:     infra.Logger.With("module", "api"),
		Metrics:    infra.Metrics,
		Pagination: cfg.Pagination,
	}
}
