package main

import (
	"context"
	"net/http"
	"os"

	"supplier-registry-backend/config"
	"supplier-registry-backend/handlers"
	"supplier-registry-backend/logger"
	"supplier-registry-backend/notify"
	"supplier-registry-backend/ratelimit"
	"supplier-registry-backend/repository"
	"supplier-registry-backend/service"
	"supplier-registry-backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env from the working directory or the project root; absence is
	// fine, real environment variables take over.
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../../.env")
	}

	cfg, err := config.Load()
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	// Initialize database connection
	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Postgres")
	}
	defer db.Close()
	log.Info().Msg("Postgres connection established")

	// Initialize blob storage
	blobs, err := storage.NewBlobStoreFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}
	log.Info().Msg("storage initialized")

	// Initialize notifier; without an SMTP relay mail is logged, not sent
	var notifier notify.Notifier
	if cfg.SMTPHost != "" {
		notifier, err = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize SMTP notifier")
		}
	} else {
		log.Warn().Msg("SMTP_HOST not set, notifications will only be logged")
		notifier = &notify.LogNotifier{Log: log}
	}

	// Wire the pipeline
	supplierRepo := repository.NewSupplierRepository(db)
	limiter := ratelimit.NewMemoryStore(cfg.RateLimitMax, cfg.RateLimitWindow)

	supplierService := service.NewSupplierService(
		service.WithSupplierStore(supplierRepo),
		service.WithBlobStore(blobs),
		service.WithNotifier(notifier, cfg.MailFrom, cfg.InternalRecipients),
		service.WithRateLimiter(limiter),
		service.WithLogger(log),
	)

	supplierHandler := handlers.NewSupplierHandler(supplierService, log)

	// Setup Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "apikey", "X-Requested-With"},
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/suppliers", supplierHandler.RegisterSupplier)
		api.GET("/suppliers/:id", supplierHandler.GetSupplier)
	}

	// Serve locally stored uploads in development
	if os.Getenv("STORAGE_TYPE") == "" || os.Getenv("STORAGE_TYPE") == "local" {
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./storage/files"
		}
		r.Static("/uploads", localPath)
	}

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}
