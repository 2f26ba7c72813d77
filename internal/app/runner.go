package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/service/assignment"
	"service-courier-tracking/internal/transport/rabbit"
)

const shutdownTimeout = 15 * time.Second

var exit = os.Exit

// Runner runs the API process.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a Runner.
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the servers using the provided DI container and blocks
// until its context is cancelled.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		exit(1)
	}
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

type runIn struct {
	dig.In

	Ctx         context.Context
	Logger      logx.Logger
	Server      *http.Server
	Pprof       *http.Server `name:"pprof_server" optional:"true"`
	Health      *healthServer `optional:"true"`
	Pool        *pgxpool.Pool
	Coordinator *assignment.Coordinator
	Interval    reconcileInterval
	Bus         *rabbit.Bus     `optional:"true"`
	Conn        *rabbit.Conn    `optional:"true"`
	Closer      messagingCloser `optional:"true"`
}

func appRun(in runIn) error {
	if in.Bus != nil && in.Conn != nil {
		msgs, err := in.Bus.Subscribe(in.Conn.Channel())
		if err != nil {
			return err
		}
		go func() {
			if err := in.Bus.Run(in.Ctx, msgs); err != nil && !errors.Is(err, context.Canceled) {
				in.Logger.Error("room bus stopped", logx.Event("room_bus_stopped"), logx.Err(err))
			}
		}()
	}
	if in.Health != nil {
		if err := in.Health.start(in.Logger); err != nil {
			return err
		}
	}

	startServer(in.Server, in.Logger, "service-courier")
	if in.Pprof != nil {
		startServer(in.Pprof, in.Logger, "pprof")
	}
	if in.Coordinator != nil {
		startReconcileLoop(in.Ctx, in.Logger, in.Coordinator, time.Duration(in.Interval))
	}

	waitForShutdown(in.Ctx, in.Logger)

	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	if in.Pprof != nil {
		gracefulShutdown(in.Pprof, in.Logger, shutdownTimeout)
	}
	if in.Health != nil {
		in.Health.stop()
	}
	closeResources(in.Pool, in.Closer, in.Logger)
	return in.Ctx.Err()
}

func startServer(server *http.Server, logger logx.Logger, name string) {
	go func() {
		logger.Info("http server listening",
			logx.Event("http_server_started"),
			logx.String("server", name),
			logx.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen error", logx.String("server", name), logx.Err(err))
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down service-courier", logx.Event("shutdown_started"))
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, closer messagingCloser, logger logx.Logger) {
	if closer != nil {
		if err := closer(); err != nil {
			logger.Error("messaging close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
