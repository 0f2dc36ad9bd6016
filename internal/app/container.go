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

	"swiftship/internal/config"
	"swiftship/internal/http/handlers"
	"swiftship/internal/http/middleware/ratelimit"
	"swiftship/internal/http/router"
	"swiftship/internal/logx"
	"swiftship/internal/metrics"
	"swiftship/internal/repository"
	"swiftship/internal/service/booking"
	"swiftship/internal/service/drivertasks"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container.
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
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
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
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
	)
}

// registerCollector re-uses an already registered collector, so containers
// built repeatedly in tests share the process-wide registry.
func registerCollector[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if ok := asAlreadyRegistered(err, &are); ok {
			return are.ExistingCollector.(C)
		}
		panic(err)
	}
	return c
}

func asAlreadyRegistered(err error, target *prometheus.AlreadyRegisteredError) bool {
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if ok {
		*target = are
	}
	return ok
}

func registerMetrics(container *dig.Container) error {
	if err := container.Provide(func() prometheus.Counter {
		return registerCollector(metrics.NewRateLimitExceededTotal())
	}, dig.Name("rate_limit_exceeded_total")); err != nil {
		return err
	}
	if err := container.Provide(func() prometheus.Counter {
		return registerCollector(metrics.NewGatewayRetriesTotal())
	}, dig.Name("gateway_retries_total")); err != nil {
		return err
	}
	return container.Provide(func() prometheus.Counter {
		return registerCollector(metrics.NewBookingsCreatedTotal())
	}, dig.Name("bookings_created_total"))
}

type bookingServiceIn struct {
	dig.In
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
	Timeout  time.Duration
	Logger   logx.Logger
	Created  prometheus.Counter `name:"bookings_created_total"`
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewBookingRepo,
		repository.NewDriverRepo,
		repository.NewUserRepo,
		func() time.Duration { return 3 * time.Second },
		func(in bookingServiceIn) *booking.Service {
			return booking.NewService(in.Bookings, in.Users, in.Timeout, in.Logger, in.Created)
		},
		func(b *repository.BookingRepo, d *repository.DriverRepo, timeout time.Duration, logger logx.Logger) *drivertasks.Service {
			return drivertasks.NewService(b, d, timeout, logger)
		},
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type routerIn struct {
	dig.In
	Base     *handlers.Handlers
	Bookings *handlers.BookingHandler
	Drivers  *handlers.DriverHandler
	Cfg      *config.Config
	Logger   logx.Logger
	Limit    *ratelimit.Middleware
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
	return provideAll(container,
		handlers.New,
		handlers.NewBookingUsecase,
		handlers.NewBookingHandler,
		handlers.NewDriverUsecase,
		handlers.NewDriverHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		func(in routerIn) http.Handler {
			return router.New(router.Deps{
				Base:      in.Base,
				Bookings:  in.Bookings,
				Drivers:   in.Drivers,
				JWTSecret: in.Cfg.Auth.JWTSecret,
				Logger:    in.Logger,
				RateLimit: in.Limit.Handler(),
			})
		},
		serverProvider,
	)
}
