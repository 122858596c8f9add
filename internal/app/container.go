package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"tech-assigner/internal/config"
	"tech-assigner/internal/gateway/backend"
	"tech-assigner/internal/http/handlers"
	"tech-assigner/internal/http/middleware/ratelimit"
	"tech-assigner/internal/http/pprofserver"
	"tech-assigner/internal/http/router"
	"tech-assigner/internal/logx"
	"tech-assigner/internal/repository"
	"tech-assigner/internal/service/assigner"
)

// dbConnectFunc opens the audit database pool with retries.
type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := provideAll(container, repository.NewAuditRepo); err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer builds the dig container for the event consumer.
// It carries only the audit repository and the kafka wiring, no HTTP stack.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	b := NewContainerBuilder()
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		provideMetrics,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, logger logx.Logger, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type gatewayIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newBackendGateway(in gatewayIn) assigner.Gateway {
	client := backend.NewClient(in.Cfg.Backend.BaseURL, in.Cfg.Backend.Timeout)
	return backend.NewRetryingGateway(client, in.Logger, in.Retries, backend.RetryConfig{
		MaxAttempts: in.Cfg.Backend.Retry.MaxAttempts,
		BaseDelay:   in.Cfg.Backend.Retry.BaseDelay,
		MaxDelay:    in.Cfg.Backend.Retry.MaxDelay,
	})
}

func registerGateway(container *dig.Container) error {
	return provideAll(container, newBackendGateway)
}

type assignerServiceIn struct {
	dig.In

	Gateway assigner.Gateway
	Repo    *repository.AuditRepo
	Logger  logx.Logger
	Cfg     *config.Config

	SnapshotsTotal   prometheus.Counter `name:"reconcile_snapshots_total"`
	SnapshotFailures prometheus.Counter `name:"reconcile_snapshot_failures_total"`
	ActionsTotal     prometheus.Counter `name:"assignment_actions_total"`
}

func newAssignerService(in assignerServiceIn) *assigner.Service {
	return assigner.NewService(in.Gateway, in.Repo, in.Logger, in.Cfg.Backend.Timeout, assigner.Counters{
		SnapshotsTotal:   in.SnapshotsTotal,
		SnapshotFailures: in.SnapshotFailures,
		ActionsTotal:     in.ActionsTotal,
	})
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewAuditRepo,
		newAssignerService,
		handlers.NewConsoleUsecase,
		handlers.NewAuditReader,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	routerProvider := func(
		logger logx.Logger,
		base *handlers.Handlers,
		console *handlers.ConsoleHandler,
		audit *handlers.AuditHandler,
		rl *ratelimit.Middleware,
	) http.Handler {
		return router.New(logger, base, console, audit, rl)
	}
	return provideAll(container,
		handlers.New,
		handlers.NewConsoleHandler,
		handlers.NewAuditHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
		providePprofServer,
	)
}

type pprofServerOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func providePprofServer(cfg *config.Config) pprofServerOut {
	if !cfg.Pprof.Enabled {
		return pprofServerOut{}
	}
	return pprofServerOut{
		Server: &http.Server{
			Addr:              cfg.Pprof.Addr,
			Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}
