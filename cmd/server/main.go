package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/artifact"
	"github.com/yourorg/forecast-service/internal/config"
	"github.com/yourorg/forecast-service/internal/datasource"
	"github.com/yourorg/forecast-service/internal/handler"
	"github.com/yourorg/forecast-service/internal/kafka"
	"github.com/yourorg/forecast-service/internal/middleware"
	"github.com/yourorg/forecast-service/internal/model"
	"github.com/yourorg/forecast-service/internal/repository"
	"github.com/yourorg/forecast-service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Custom request validations
	model.RegisterValidators()

	// Artifact storage (local disk or S3)
	store, err := artifact.NewStorage(&cfg.Artifacts, logger)
	if err != nil {
		logger.Fatal("Failed to initialize artifact storage", zap.Error(err))
	}

	// Kafka producer (no-op when no brokers are configured)
	producer := kafka.NewProducer(splitBrokers(cfg.Kafka.Brokers), cfg.Kafka.ClientID, logger)
	defer producer.Close()

	// Initialize repositories and data sources
	runRepo := repository.NewTrainingRunRepository(db, logger)
	resolver := datasource.NewResolver(cfg.Data.LocalDir, cfg.Data.CacheTTL, logger)

	// Initialize services
	trainingService := service.NewTrainingService(
		resolver,
		store,
		runRepo,
		producer,
		cfg.Kafka.Topics["trainingEvents"],
		cfg.Training.ValFraction,
		cfg.Training.Seed,
		logger,
	)
	forecastService := service.NewForecastService(resolver, store, runRepo, logger)
	marketService := service.NewMarketService(resolver, logger)

	// Initialize handlers
	trainHandler := handler.NewTrainHandler(trainingService, logger)
	forecastHandler := handler.NewForecastHandler(forecastService, logger)
	marketHandler := handler.NewMarketHandler(marketService, logger)

	// Set up HTTP server with Gin
	router := setupRouter(trainHandler, forecastHandler, marketHandler, logger, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func splitBrokers(brokers string) []string {
	if strings.TrimSpace(brokers) == "" {
		return nil
	}

	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func setupRouter(
	trainHandler *handler.TrainHandler,
	forecastHandler *handler.ForecastHandler,
	marketHandler *handler.MarketHandler,
	logger *zap.Logger,
	cfg *config.Config,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	api := router.Group("/api")
	{
		api.GET("/symbols", marketHandler.GetSymbols)
		api.GET("/history", marketHandler.GetHistory)
		api.POST("/predict", forecastHandler.Predict)

		// Training and model registry routes, optionally guarded by a
		// shared service key.
		protected := api.Group("")
		protected.Use(middleware.ServiceAuthMiddleware(cfg.ServiceKey, logger))
		{
			protected.POST("/train", trainHandler.Train)
			protected.GET("/models", trainHandler.ListModels)
			protected.GET("/models/:ticker", trainHandler.GetModel)
		}
	}

	return router
}
