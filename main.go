package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Itish41/ClauseGuard/analyzer"
	controller "github.com/Itish41/ClauseGuard/controller"
	"github.com/Itish41/ClauseGuard/initializers"
	"github.com/Itish41/ClauseGuard/metrics"
	middleware "github.com/Itish41/ClauseGuard/middleware"
	service "github.com/Itish41/ClauseGuard/service"
)

const serviceName = "clauseguard"

func main() {
	if err := initializers.LoadEnv(); err != nil {
		log.Fatalf("[CRITICAL] Failed to load env: %s", err)
	}
	cfg := initializers.LoadConfig()
	logger := initializers.NewLogger(serviceName, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var db *gorm.DB
	if cfg.RulebookSource == service.SourcePostgres {
		var err error
		db, err = initializers.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[CRITICAL] Failed to initialize database connection: %s", err)
		}
		if err := initializers.Migrate(db, initializers.DefaultMigrationsSource); err != nil {
			log.Fatalf("[CRITICAL] Failed to run database migrations: %s", err)
		}
	}

	rb, err := service.LoadRulebook(ctx, service.RulebookOptions{
		Source: cfg.RulebookSource,
		Path:   cfg.RulebookPath,
		S3: service.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		},
		DB:   db,
		Seed: cfg.RulebookSeed,
	}, logger)
	if err != nil {
		log.Fatalf("[CRITICAL] Failed to load rulebook: %s", err)
	}
	logger.Info("rulebook loaded",
		"source", cfg.RulebookSource,
		"keywords", len(rb.Keywords()),
		"compliance_keys", len(rb.ComplianceKeys()),
	)

	m := metrics.New(serviceName)
	analysisService := service.NewAnalysisService(
		analyzer.New(rb, cfg.AnalyzerConfig(), logger),
		service.AnalysisServiceConfig{
			MaxUploadBytes: cfg.MaxUploadBytes,
			ImageExtractor: service.NewOCRSpaceExtractor(service.OCRSpaceConfig{APIKey: cfg.OCRSpaceAPIKey}, logger),
			Recorder:       m,
			Logger:         logger,
		},
	)

	statuteIndex, err := service.NewStatuteIndex(cfg.ElasticsearchURL, logger)
	if err != nil {
		log.Fatalf("Failed to initialize statute index: %s", err)
	}
	if statuteIndex.Available() {
		if _, err := statuteIndex.IndexRulebook(ctx, rb); err != nil {
			logger.Warn("statute indexing failed, search may be stale", "error", err)
		}
	}

	globalLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	strictLimiter := middleware.StrictRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(middleware.CORSMiddleware())
	router.Use(m.Middleware())

	// Scrapes are not rate limited.
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/")
	api.Use(globalLimiter.Limit())
	controller.RegisterRoutes(api,
		controller.NewAnalysisController(analysisService, cfg.RulebookSource),
		controller.NewRulesController(rb, statuteIndex),
		strictLimiter.Limit(),
	)

	logger.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %s", err)
	}
}
