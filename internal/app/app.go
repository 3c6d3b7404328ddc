package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/studyplan-backend/internal/adapter/memory"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/availability"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/session"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/subject"
	"github.com/heartmarshall/studyplan-backend/internal/config"
	"github.com/heartmarshall/studyplan-backend/internal/service/planner"
	"github.com/heartmarshall/studyplan-backend/internal/service/planner/schedule"
	"github.com/heartmarshall/studyplan-backend/internal/transport/middleware"
	"github.com/heartmarshall/studyplan-backend/internal/transport/rest"
	"github.com/heartmarshall/studyplan-backend/migrations"
)

// Run is the application entry point. It loads configuration, initializes the
// logger and the selected storage backend, wires the planner service to the
// HTTP transport, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("log_level", cfg.Log.Level),
	)

	params := schedule.Parameters{
		HorizonDays:        cfg.Planner.HorizonDays,
		MaxDailyHours:      cfg.Planner.MaxDailyHours,
		DifficultyStep:     cfg.Planner.DifficultyStep,
		ReserveManualHours: cfg.Planner.ReserveManualHours,
	}

	var (
		svc  *planner.Service
		pool *pgxpool.Pool
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		svc = planner.NewService(
			logger,
			subject.New(pool),
			availability.New(pool),
			session.New(pool),
			postgres.NewTxManager(pool),
			params,
		)
		logger.Info("connected to postgres")

	case config.DriverMemory:
		store := memory.NewStore()
		svc = planner.NewService(
			logger,
			store.Subjects(),
			store.Availability(),
			store.Sessions(),
			store.Tx(),
			params,
		)
		logger.Info("using in-memory storage, state is lost on restart")

	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	mux := http.NewServeMux()
	rest.NewPlannerHandler(svc).Register(mux)

	var health *rest.HealthHandler
	if pool != nil {
		health = rest.NewHealthHandler(pool, BuildVersion())
	} else {
		health = rest.NewHealthHandler(nil, BuildVersion())
	}
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
	)(mux)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
