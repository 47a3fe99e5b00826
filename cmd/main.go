package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/auxfresh/receipt-generator/internal/blob"
	"github.com/auxfresh/receipt-generator/internal/command"
	"github.com/auxfresh/receipt-generator/internal/config"
	"github.com/auxfresh/receipt-generator/internal/db"
	"github.com/auxfresh/receipt-generator/internal/events"
	"github.com/auxfresh/receipt-generator/internal/handler"
	"github.com/auxfresh/receipt-generator/internal/middleware"
	"github.com/auxfresh/receipt-generator/internal/query"
	"github.com/auxfresh/receipt-generator/internal/redis"
	"github.com/auxfresh/receipt-generator/internal/render"
	"github.com/auxfresh/receipt-generator/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if cfg.App.Mode == "debug" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Database connection + schema
	conn, err := db.Open(cfg.Postgres.URL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(context.Background(), conn); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis: token revocations and event streams
	rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	revocations := redis.NewRevocationStore(rdb.Client)
	publisher := events.NewPublisher(rdb.Client, logger)

	// Logo blob storage
	storage, err := blob.NewS3Storage(context.Background(),
		cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		logger.Fatal("failed to initialize blob storage", zap.Error(err))
	}

	// CQRS: repositories, command and query services
	userRepo := repository.NewUserRepository(conn)
	writeRepo := repository.NewReceiptWriteRepository(conn)
	readRepo := repository.NewReceiptReadRepository(conn)

	receiptCommands := command.NewReceiptCommandService(writeRepo, storage, publisher, logger)
	userCommands := command.NewUserCommandService(userRepo, publisher, logger)
	receiptQueries := query.NewReceiptQueryService(readRepo)
	userQueries := query.NewUserQueryService(userRepo)
	authQueries := query.NewAuthQueryService(userRepo, revocations,
		[]byte(cfg.Auth.JWTSecret), time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// PDF rasterizer is optional; without it export serves printable HTML.
	var exporter render.Exporter
	if cfg.PDF.RasterizerURL != "" {
		exporter = render.NewRasterizerClient(cfg.PDF.RasterizerURL)
	}

	authHandler := handler.NewAuthHandler(userCommands, authQueries)
	userHandler := handler.NewUserHandler(userQueries)
	receiptHandler := handler.NewReceiptHandler(receiptCommands, receiptQueries, exporter)

	// Audit trail consumer for receipt lifecycle events
	subscriber := events.NewSubscriber(rdb.Client, logger, events.SubscriberConfig{
		Group:    "audit-trail",
		Consumer: "audit-1",
		Stream:   events.ReceiptEventsStream,
		Handler: func(ctx context.Context, event events.Event) error {
			logger.Info("receipt event",
				zap.String("type", event.Type),
				zap.Time("timestamp", event.Timestamp),
				zap.Any("data", event.Data))
			return nil
		},
	})
	go func() {
		if err := subscriber.Start(context.Background()); err != nil {
			logger.Error("audit subscriber stopped", zap.Error(err))
		}
	}()

	// Setup router
	gin.SetMode(cfg.App.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	// Public auth routes
	auth := router.Group("/v1/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
	}

	// Authenticated routes
	v1 := router.Group("/v1", middleware.AuthMiddleware([]byte(cfg.Auth.JWTSecret), revocations))
	{
		v1.GET("/users/:userId", userHandler.GetUser)

		receipts := v1.Group("/receipts")
		{
			receipts.POST("/banking", receiptHandler.CreateBankingReceipt)
			receipts.POST("/banking/preview", receiptHandler.PreviewBankingReceipt)
			receipts.POST("/shopping", receiptHandler.CreateShoppingReceipt)
			receipts.POST("/shopping/preview", receiptHandler.PreviewShoppingReceipt)
			receipts.GET("", receiptHandler.ListReceipts)
			receipts.GET("/stats", receiptHandler.GetStats)
			receipts.GET("/:receiptId", receiptHandler.GetReceipt)
			receipts.GET("/:receiptId/export", receiptHandler.ExportReceipt)
			receipts.PATCH("/:receiptId", receiptHandler.UpdateReceipt)
			receipts.DELETE("/:receiptId", receiptHandler.DeleteReceipt)
		}
	}

	logger.Info("receipt generator starting", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
