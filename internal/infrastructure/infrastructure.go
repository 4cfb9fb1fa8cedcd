// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, backend client, metrics) that domain
// systems require.
package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/pkg/client"
	"github.com/frenchcert/frenchcert/pkg/lifecycle"
	"github.com/frenchcert/frenchcert/pkg/logging"
	"github.com/frenchcert/frenchcert/pkg/metrics"
)

// ProbePath is requested once at startup to report backend reachability.
const ProbePath = "/fields"

const probeTimeout = 5 * time.Second

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Client    *client.Client
	Metrics   *metrics.Service
}

// New creates an Infrastructure logging to the configured file, or to
// stdout when none is set. The file stays open for the life of the process.
func New(cfg *config.Config) (*Infrastructure, error) {
	w, _, err := logging.Open(&cfg.Logging, os.Stdout)
	if err != nil {
		return nil, err
	}
	return NewWithWriter(cfg, w)
}

// NewWithWriter creates an Infrastructure whose logger writes to w. It
// initializes all systems but does not start them; call Start separately.
func NewWithWriter(cfg *config.Config, w io.Writer, opts ...client.Option) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.NewWriter(&cfg.Logging, w).With("version", cfg.Version)
	mtr := metrics.New(&cfg.Metrics)

	opts = append([]client.Option{client.WithObserver(mtr)}, opts...)
	c, err := client.New(&cfg.API, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("client init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Client:    c,
		Metrics:   mtr,
	}, nil
}

// Start registers the startup probe with the lifecycle coordinator. An
// unreachable backend is logged, not fatal: every view reports its own
// failures when the backend is down.
func (i *Infrastructure) Start() error {
	i.Lifecycle.OnStartup(func() {
		ctx, cancel := context.WithTimeout(i.Lifecycle.Context(), probeTimeout)
		defer cancel()

		start := time.Now()
		if _, err := i.Client.Get(ctx, ProbePath, url.Values{"limit": {"1"}}); err != nil {
			i.Logger.Warn("backend unreachable", "error", err)
			return
		}
		i.Logger.Info("backend reachable", "duration", time.Since(start))
	})
	return nil
}
