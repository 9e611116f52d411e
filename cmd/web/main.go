package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"licenseadmin/internal/config"
	"licenseadmin/internal/database"
	"licenseadmin/internal/database/migration"
	handlers "licenseadmin/internal/http/handler"
	"licenseadmin/internal/http/middleware"
	"licenseadmin/internal/licenseapi"
	"licenseadmin/internal/logging"
	"licenseadmin/internal/otel"
	"licenseadmin/internal/repository"
	"licenseadmin/internal/repository/postgres"
	"licenseadmin/internal/service"
	"licenseadmin/internal/storage"
	"licenseadmin/internal/view"
)

const shutdownTimeout = 10 * time.Second

// @title License Admin API
// @version 1.0
// @description JSON mirror of the license console: validate, create and stats.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Location())
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server_failed", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// The activity log is persisted only when a database is configured.
	var (
		db       *sql.DB
		activity repository.ActivityRepository = repository.Discard{}
	)
	db, err = database.OpenActivityStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return err
		}
		activity = postgres.NewActivityPostgres(db)
	} else {
		logger.Info("activity_log_disabled", zap.String("reason", "DB_HOST not set"))
	}

	api, err := licenseapi.NewClient(cfg.LicenseAPI)
	if err != nil {
		return err
	}

	licenseSvc := service.NewLicenseService(api, activity, logger,
		service.WithClientVersion(cfg.LicenseAPI.ClientVersion),
	)
	var activityOpts []service.ActivityOption
	if cfg.Database.Enabled() && cfg.Archive.Enabled() {
		store, err := storage.NewMinIO(ctx, cfg.Archive)
		if err != nil {
			return err
		}
		activityOpts = append(activityOpts, service.WithArchive(store, cfg.Archive.Prefix, logger))
		logger.Info("activity_archive_enabled", zap.String("bucket", cfg.Archive.Bucket))
	}
	activitySvc := service.NewActivityService(activity, activityOpts...)

	if cfg.Database.Enabled() && cfg.Database.RetentionDays > 0 {
		retention := time.Duration(cfg.Database.RetentionDays) * 24 * time.Hour
		n, err := activitySvc.Prune(ctx, retention)
		if err != nil {
			logger.Warn("activity_prune_failed", zap.Error(err))
		} else {
			logger.Info("activity_pruned", zap.Int64("deleted", n), zap.Int("retention_days", cfg.Database.RetentionDays))
		}
	}

	pages, err := view.New(cfg.Location())
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID first so every later middleware and handler can read it
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(metrics.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// A typed nil *sql.DB would not compare equal to nil inside the interface.
	var pinger handlers.Pinger
	if db != nil {
		pinger = db
	}
	handlers.RegisterRoutes(app, pinger, licenseSvc, activitySvc, pages, handlers.ActivityGuard(cfg.ActivityAuth.Users()))

	if cfg.SwaggerEnabled {
		handlers.RegisterSwagger(app, cfg.AppHost)
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started",
			zap.String("addr", addr),
			zap.String("license_api", cfg.LicenseAPI.BaseURL),
			zap.Bool("activity_log", cfg.Database.Enabled()),
		)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server_stopping")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logger.Info("server_stopped")
	return nil
}
