package main

import (
	"database/sql"
	"net/http"
	"os"

	"catalog-service/internal/config"
	"catalog-service/internal/metrics"
	"catalog-service/internal/publisher"
	"catalog-service/internal/repository"
	"catalog-service/internal/server"
	"catalog-service/internal/service"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	log "github.com/sirupsen/logrus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		log.Warn("Could not load .env file.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Could not load configuration")
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	log.Info("Starting database migration...")
	m, err := migrate.New(cfg.DB.MigrationsPath, cfg.DB.URL)
	if err != nil {
		log.WithField("error", err).Fatal("Could not create migrate instance")
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.WithField("error", err).Fatal("Could not apply migration")
	}
	log.Info("Database migration finished successfully.")

	db, err := sql.Open("postgres", cfg.DB.URL)
	if err != nil {
		log.WithField("error", err).Fatal("Could not connect to the database")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DB.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		log.WithField("error", err).Fatal("Could not ping the database")
	}
	log.Info("Successfully connected to the PostgreSQL database.")

	var auditService *service.AuditService
	if cfg.Kafka.BootstrapServers != "" {
		auditPublisher, err := publisher.NewAuditPublisher(cfg.Kafka.BootstrapServers, cfg.Kafka.AuditTopic)
		if err != nil {
			log.WithError(err).Fatal("Could not create audit publisher")
		}
		defer auditPublisher.Close()
		auditService = service.NewAuditService(auditPublisher)
	} else {
		log.Warn("KAFKA_BOOTSTRAP_SERVERS not set, audit events are disabled")
	}

	// Repositories
	productRepository := repository.NewPostgresProductRepository(db)
	categoryRepository := repository.NewPostgresProductCategoryRepository(db)

	// Services
	productService := service.NewProductService(productRepository, auditService)
	categoryGuard := service.NewCategoryGuard(productService, categoryRepository)
	categoryService := service.NewProductCategoryService(categoryRepository, categoryGuard, auditService)
	catalogService := service.NewCatalogService(productRepository, categoryRepository)

	appMetrics := metrics.New()

	e := echo.New()
	e.HideBanner = true
	e.Validator = server.NewValidator()
	e.Use(middleware.Recover())
	e.Use(appMetrics.Middleware())

	server.RegisterRoutes(e, server.Handlers{
		Server:     server.NewServer(db),
		Products:   server.NewProductServer(productService),
		Categories: server.NewProductCategoryServer(categoryService),
		Admin:      server.NewCatalogServer(catalogService, appMetrics, server.SurfaceAdmin),
		Client:     server.NewCatalogServer(catalogService, appMetrics, server.SurfaceClient),
		Metrics:    appMetrics.Handler(),
	})

	log.WithField("port", cfg.HTTP.Port).Info("Catalog service is starting with Echo")

	if err := e.Start(":" + cfg.HTTP.Port); err != nil && err != http.ErrServerClosed {
		log.WithField("error", err).Fatal("Echo server failed to start")
	}
}
