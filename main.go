package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/menulink/config"
	"github.com/Eursukkul/menulink/internal/consumer"
	"github.com/Eursukkul/menulink/internal/page"
	"github.com/Eursukkul/menulink/internal/realtime"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/internal/server"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/Eursukkul/menulink/pkg/cache"
	"github.com/Eursukkul/menulink/pkg/database"
	"github.com/Eursukkul/menulink/pkg/logger"
	"github.com/Eursukkul/menulink/pkg/rabbitmq"
	"github.com/Eursukkul/menulink/pkg/storage"
	"github.com/Eursukkul/menulink/pkg/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "info"}).Fatal("invalid configuration", zap.Error(err))
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		ServiceName: cfg.AppName,
		Development: !cfg.IsProduction(),
	})
	logger.Set(log)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:       cfg.OTel.Enabled,
		ServiceName:   cfg.AppName,
		Environment:   cfg.Environment,
		CollectorAddr: cfg.OTel.CollectorAddr,
	}); err != nil {
		log.Fatal("failed to init telemetry", zap.Error(err))
	}
	metrics, err := telemetry.NewMetrics()
	if err != nil {
		log.Fatal("failed to create metrics", zap.Error(err))
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	// Page cache: Redis when enabled, otherwise every load hits the database
	var pageCache cache.Cache = cache.Noop{}
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.PageCacheTTL,
		})
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer rc.Close()
		pageCache = rc
	}

	// Realtime hub, fed by RabbitMQ when configured and in process otherwise
	hub := realtime.NewHub()
	go hub.Run(ctx)

	var publisher service.EventPublisher = realtime.NewLocalPublisher(hub)
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqPublisher.Close()
		publisher = mqPublisher

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.ReservationBinding)
		if err != nil {
			log.Fatal("failed to connect RabbitMQ consumer", zap.Error(err))
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal("failed to start consuming", zap.Error(err))
		}
		consumer.NewReservationEventConsumer(hub).Start(msgs)
	}

	// Repositories
	restaurantRepo := repository.NewRestaurantRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	reservationSvc := service.NewReservationService(service.ReservationDeps{
		Restaurants:   restaurantRepo,
		Slots:         slotRepo,
		Reservations:  reservationRepo,
		Customers:     repository.NewCustomerRepository(db),
		Notifications: notificationRepo,
		Publisher:     publisher,
		Metrics:       metrics,
	})
	restaurantSvc := service.NewRestaurantService(restaurantRepo, slotRepo, pageCache)
	menuSvc := service.NewMenuService(menuRepo, pageCache)
	profileSvc := service.NewProfileService(profileRepo, pageCache)
	pageSvc := service.NewPageService(service.PageDeps{
		Restaurants: restaurantRepo,
		Menu:        menuRepo,
		Profile:     profileRepo,
		Analytics:   analyticsRepo,
		Assets:      storage.NewURLResolver(cfg.Storage.BaseURL, cfg.Storage.Bucket),
		Cache:       pageCache,
		Metrics:     metrics,
	})
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, notificationRepo, cfg.AnalyticsLimit)

	renderer, err := page.NewRenderer()
	if err != nil {
		log.Fatal("failed to parse page templates", zap.Error(err))
	}

	e := server.New(server.Services{
		Reservations: reservationSvc,
		Restaurants:  restaurantSvc,
		Menu:         menuSvc,
		Profiles:     profileSvc,
		Pages:        pageSvc,
		Analytics:    analyticsSvc,
	}, hub, renderer, server.Options{
		AppName:       cfg.AppName,
		JWTSecret:     cfg.JWTSecret,
		CSRFKey:       []byte(cfg.CSRFKey),
		SecureCookies: cfg.IsProduction(),
	})

	go func() {
		log.Info("MenuLink starting", zap.String("port", cfg.ServerPort), zap.String("db", cfg.DB.Driver))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		log.Error("telemetry shutdown failed", zap.Error(err))
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DB.Driver == "sqlite" {
		return database.NewSQLiteDB(cfg.DB.SQLitePath)
	}
	return database.NewPostgresDB(cfg.DSN(), cfg.DB.MaxOpen, cfg.DB.MaxIdle)
}
