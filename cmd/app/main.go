package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/filestore"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logger"
	"fulfillment/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	shutdownPeriod  = 15 * time.Second
	metricsInterval = 15 * time.Second
)

func main() {
	cfg, err := cmd.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting fulfillment service")
	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal("application failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg cmd.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := connectDatabase(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()
	fallback, err := kernel.NewMoney(cfg.Business.DefaultFreeShippingThreshold)
	if err != nil {
		return err
	}
	settings := redis.NewSettingsStore(rdb, cfg.Redis.FreeShippingKey, fallback)

	publisher, closePublisher, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		return fmt.Errorf("kafka: %w", err)
	}
	defer closePublisher()

	evidence, err := filestore.NewEvidenceStore(cfg.Evidence.Dir, cfg.Evidence.BaseURL)
	if err != nil {
		return err
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(db, publisher, log)
	app := cmd.NewCompositionRoot(cfg, db, uowFactory, settings, evidence, log)

	e, err := newEcho(cfg, app, evidence.Dir(), log)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		metrics.RunSystemCollector(gctx, metricsInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func connectDatabase(ctx context.Context, cfg cmd.Database, log *zap.Logger) (*gorm.DB, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 8), ctx)

	var db *gorm.DB
	err := backoff.RetryNotify(func() error {
		conn, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		db = conn
		return nil
	}, policy, func(err error, wait time.Duration) {
		log.Warn("database not ready, retrying", zap.Duration("wait", wait), zap.Error(err))
	})
	return db, err
}

func newPublisher(cfg cmd.Kafka, log *zap.Logger) (ports.EventPublisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Warn("KAFKA_BROKERS not set, domain events are only logged")
		return kafka.NewLogPublisher(log), func() {}, nil
	}
	producer, err := kafka.NewSyncProducer(cfg.Brokers, cfg.ClientID)
	if err != nil {
		return nil, nil, err
	}
	publisher := kafka.NewPublisher(producer, cfg.Topic, kafka.DefaultRetryConfig, log)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Error("close kafka producer", zap.Error(err))
		}
	}, nil
}

func newEcho(cfg cmd.Config, app cmd.CompositionRoot, evidenceDir string, log *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonLevel(cfg.LogLevel))
	e.HTTPErrorHandler = httpin.NewErrorHandler(log)

	limit, err := httpin.RateLimit(cfg.Server.RateLimit, log)
	if err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	e.Use(middleware.Recover())
	e.Use(httpin.RequestMetrics(log.With(zap.String("component", "http"))))
	e.Use(limit)

	doc, err := httpin.LoadOpenAPI(context.Background())
	if err != nil {
		return nil, err
	}
	contract, err := httpin.ValidateRequests(doc)
	if err != nil {
		return nil, err
	}
	auth := httpin.Authenticate(httpin.NewTokenIssuer(cfg.Server.JWTSecret))
	httpin.NewServer(app.HTTPHandlers()).Register(e, evidenceDir, auth, contract)
	return e, nil
}

func gommonLevel(level string) gommonlog.Lvl {
	switch level {
	case "debug":
		return gommonlog.DEBUG
	case "warn":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	default:
		return gommonlog.INFO
	}
}
