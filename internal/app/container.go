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

	"service-courier-tracking/internal/auth"
	"service-courier-tracking/internal/config"
	"service-courier-tracking/internal/gateway/events"
	"service-courier-tracking/internal/geo"
	"service-courier-tracking/internal/http/handlers"
	mw "service-courier-tracking/internal/http/middleware"
	"service-courier-tracking/internal/http/middleware/ratelimit"
	"service-courier-tracking/internal/http/pprofserver"
	"service-courier-tracking/internal/http/router"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/realtime"
	"service-courier-tracking/internal/repository"
	"service-courier-tracking/internal/service/assignment"
	"service-courier-tracking/internal/service/courier"
	"service-courier-tracking/internal/service/location"
	"service-courier-tracking/internal/service/orders"
	"service-courier-tracking/internal/service/scoring"
	"service-courier-tracking/internal/service/tracking"
	"service-courier-tracking/internal/transport/ws"
)

type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

// reconcileInterval is the period of the availability reconcile loop.
type reconcileInterval time.Duration

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	dbConnect  dbConnectFunc
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		dbConnect:  connectDbWithRetry,
		logFatalf:  log.Fatalf,
	}
}

// WithConfig sets the configuration loader
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
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

// MustBuild builds the API container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the order ingest worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx, busFanIn)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx, busPublishOnly)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildShared(ctx context.Context, mode busMode) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := provideAll(container, provideMetrics); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMessaging(container, mode); err != nil {
		return nil, fmt.Errorf("messaging: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the API container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns the worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, load func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		load,
		NewLogger,
		func(cfg *config.Config) reconcileInterval {
			return reconcileInterval(cfg.Delivery.ReconcileInterval)
		},
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		if cfg.DB.AutoMigrate {
			if err := migrateWithRetry(ctx, logger, cfg.DB.DSN(), 10, time.Second); err != nil {
				return nil, err
			}
		}
		return dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container,
		providerDB,
		repository.NewCourierRepo,
		repository.NewOrderRepo,
		repository.NewDeliveryRepo,
	)
}

type coordinatorIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Store     *repository.DeliveryRepo
	Estimator *assignment.Estimator
	Results   *prometheus.CounterVec `name:"courier_assignments_total"`
}

type hubIn struct {
	dig.In

	Logger     logx.Logger
	Deliveries *prometheus.CounterVec `name:"room_broadcast_deliveries_total"`
}

type trackingIn struct {
	dig.In

	Config      *config.Config
	Logger      logx.Logger
	Orders      *repository.OrderRepo
	Store       *repository.DeliveryRepo
	Hub         *realtime.Hub
	Broadcaster realtime.Broadcaster
	Publisher   *events.RetryingPublisher
	Dispatcher  *assignment.Dispatcher
}

func newTrackingService(in trackingIn) *tracking.Service {
	deps := tracking.Deps{
		Orders:      in.Orders,
		Store:       in.Store,
		Rooms:       in.Hub,
		Broadcaster: in.Broadcaster,
		Dispatcher:  in.Dispatcher,
	}
	if in.Publisher != nil {
		deps.Publisher = in.Publisher
	}
	return tracking.NewService(deps, tracking.Config{
		StrictTransitions:   in.Config.Delivery.StrictTransitions,
		MaxActiveDeliveries: in.Config.Delivery.MaxActive,
		OperationTimeout:    in.Config.Delivery.OperationTimeout,
	}, in.Logger)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) (geo.Metric, error) {
			return geo.MetricByName(cfg.Scoring.Metric)
		},
		func(cfg *config.Config, metric geo.Metric) *scoring.Engine {
			return scoring.NewEngine(scoring.Config{
				MaxDistanceKM:       cfg.Scoring.MaxDistanceKM,
				MaxActiveDeliveries: cfg.Delivery.MaxActive,
				RatingWeight:        cfg.Scoring.RatingWeight,
				DistanceWeight:      cfg.Scoring.DistanceWeight,
				LoadWeight:          cfg.Scoring.LoadWeight,
			}, metric)
		},
		assignment.NewEstimator,
		func(in coordinatorIn) *assignment.Coordinator {
			return assignment.NewCoordinator(in.Store, in.Estimator, assignment.Config{
				MaxActiveDeliveries: in.Config.Delivery.MaxActive,
				OnTimeTarget:        in.Config.Delivery.OnTimeTarget,
				OperationTimeout:    in.Config.Delivery.OperationTimeout,
			}, in.Results, in.Logger)
		},
		func(
			orderRepo *repository.OrderRepo,
			courierRepo *repository.CourierRepo,
			engine *scoring.Engine,
			coordinator *assignment.Coordinator,
			logger logx.Logger,
		) *assignment.Dispatcher {
			return assignment.NewDispatcher(orderRepo, courierRepo, engine, coordinator, logger)
		},
		func(in hubIn) *realtime.Hub {
			return realtime.NewHub(in.Deliveries, in.Logger)
		},
		newTrackingService,
		func(cfg *config.Config, store *repository.DeliveryRepo, rooms realtime.Broadcaster, logger logx.Logger) *location.Service {
			return location.NewService(store, rooms, cfg.Delivery.OperationTimeout, logger)
		},
		func(cfg *config.Config, repo *repository.CourierRepo) *courier.Service {
			return courier.NewService(repo, cfg.Delivery.MaxActive, cfg.Delivery.OperationTimeout)
		},
		func(store *repository.OrderRepo, status *tracking.Service, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(store, status, logger)
		},
	)
}

type routerIn struct {
	dig.In

	Logger    logx.Logger
	Base      *handlers.Handlers
	Couriers  *handlers.CourierHandler
	Locations *handlers.LocationHandler
	Orders    *handlers.OrderHandler
	WS        *ws.Server
	Auth      *auth.Authenticator
	RateLimit *ratelimit.Middleware
	Requests  *prometheus.CounterVec   `name:"http_requests_total"`
	Duration  *prometheus.HistogramVec `name:"http_request_duration_seconds"`
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:      in.Base,
		Couriers:  in.Couriers,
		Locations: in.Locations,
		Orders:    in.Orders,
		WS:        in.WS,
		Auth:      auth.Middleware(in.Auth),
		RateLimit: in.RateLimit,
		Metrics:   mw.HTTPMetrics{Requests: in.Requests, Duration: in.Duration},
		Logger:    in.Logger,
	})
}

type wsIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Auth      *auth.Authenticator
	Tracking  *tracking.Service
	Locations *location.Service
	Hub       *realtime.Hub
	Gauge     prometheus.Gauge `name:"ws_connections"`
}

func newWSServer(in wsIn) *ws.Server {
	return ws.NewServer(in.Auth, in.Tracking, in.Locations, in.Hub, in.Gauge, ws.Config{
		SendBuffer:       in.Config.WS.SendBuffer,
		AuthTimeout:      in.Config.WS.AuthTimeout,
		OperationTimeout: in.Config.Delivery.OperationTimeout,
	}, in.Logger)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config, logger logx.Logger) *http.Server {
		if !cfg.Pprof.Enabled {
			return nil
		}
		return pprofserver.New(pprofserver.Config{
			Addr: cfg.Pprof.Addr,
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}, logger)
	}

	err := provideAll(container,
		func(cfg *config.Config) *auth.Authenticator {
			return auth.NewAuthenticator(cfg.Auth.JWTSecret)
		},
		func() ratelimit.Clock { return ratelimit.RealClock{} },
		newRateLimitMiddleware,
		func(logger logx.Logger, pool *pgxpool.Pool) *handlers.Handlers {
			if pool == nil {
				return handlers.New(logger, nil)
			}
			return handlers.New(logger, pool)
		},
		func(logger logx.Logger, svc *courier.Service) *handlers.CourierHandler {
			return handlers.NewCourierHandler(logger, svc)
		},
		func(logger logx.Logger, svc *location.Service) *handlers.LocationHandler {
			return handlers.NewLocationHandler(logger, svc)
		},
		func(logger logx.Logger, d *assignment.Dispatcher, t *tracking.Service) *handlers.OrderHandler {
			return handlers.NewOrderHandler(logger, d, t)
		},
		newWSServer,
		newRouter,
		serverProvider,
		newHealthServer,
	)
	if err != nil {
		return err
	}
	if err := container.Provide(pprofProvider, dig.Name("pprof_server")); err != nil {
		return fmt.Errorf("provide pprof server: %w", err)
	}
	return nil
}
