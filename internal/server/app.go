// Package server wires the CrossClip backend together: PostgreSQL storage,
// object storage for large items, the Google identity verifier, the gRPC
// API and the metrics/health HTTP endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/logging"
	"github.com/dmitrijs2005/crossclip/internal/server/auth"
	"github.com/dmitrijs2005/crossclip/internal/server/blobs"
	"github.com/dmitrijs2005/crossclip/internal/server/config"
	gs "github.com/dmitrijs2005/crossclip/internal/server/grpc"
	"github.com/dmitrijs2005/crossclip/internal/server/metrics"
	"github.com/dmitrijs2005/crossclip/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/crossclip/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}

	newRepoManager = repomanager.NewPostgresRepositoryManager

	newBlobStore = func(ctx context.Context, c *config.Config) (blobs.Store, error) {
		return blobs.NewS3Store(ctx, blobs.S3Settings{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
		})
	}
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	grpc     *gs.GRPCServer
	registry *prometheus.Registry
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(c.LogLevel))

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := newBlobStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	if c.GoogleClientID == "" {
		logger.Warn(ctx, "google client id is not set, every sign-in will fail")
	}
	verifier := auth.NewGoogleVerifier(c.GoogleTokenInfoURL, c.GoogleClientID, &http.Client{Timeout: 10 * time.Second})
	us := services.NewUserService(db, rm, verifier, c)
	is := services.NewItemService(db, rm, store, c, logger.With("module", "items"))

	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, is, c.SecretKey,
		gs.WithRateLimit(c.RateLimitPerSecond, c.RateLimitBurst),
		gs.WithMetrics(collector))

	return &App{config: c, logger: logger, db: db, grpc: srv, registry: registry}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if app.config.MetricsAddr == "" {
		return
	}

	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           metrics.NewRouter(app.registry, app.db.PingContext),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startMetricsServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
