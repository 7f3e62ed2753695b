package container

import (
	"fmt"

	"github.com/badgerly/badgerly-backend/internal/config"
	"github.com/badgerly/badgerly-backend/internal/delivery/http"
	"github.com/badgerly/badgerly-backend/internal/delivery/http/handler"
	"github.com/badgerly/badgerly-backend/internal/delivery/http/middleware"
	"github.com/badgerly/badgerly-backend/internal/delivery/ws"
	"github.com/badgerly/badgerly-backend/internal/infrastructure/database"
	"github.com/badgerly/badgerly-backend/internal/infrastructure/gemini"
	"github.com/badgerly/badgerly-backend/internal/infrastructure/payments"
	"github.com/badgerly/badgerly-backend/internal/infrastructure/server"
	"github.com/badgerly/badgerly-backend/internal/notification"
	"github.com/badgerly/badgerly-backend/internal/pkg/logger"
	"github.com/badgerly/badgerly-backend/internal/repository/postgres"
	"github.com/badgerly/badgerly-backend/internal/usecase/auth"
	"github.com/badgerly/badgerly-backend/internal/usecase/badger"
	"github.com/badgerly/badgerly-backend/internal/usecase/challenge"
	"github.com/badgerly/badgerly-backend/internal/usecase/chat"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis backs offline notification fan-out; the app runs without it
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, offline notifications disabled", "error", err)
		redisClient = nil
	}

	// AI replies degrade to personality phrase banks when Gemini is missing
	geminiClient, err := gemini.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Warn("gemini unavailable, using canned badger replies", "error", err)
	}

	// Monetary rewards need Stripe; challenge creation rejects them otherwise
	stripeClient, err := payments.NewStripeClient(cfg.StripeSecret)
	if err != nil {
		log.Warn("stripe unavailable, monetary rewards disabled", "error", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	badgerRepo := postgres.NewBadgerRepository(db)
	challengeRepo := postgres.NewChallengeRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	progressRepo := postgres.NewProgressRepository(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHrs,
	)

	badgerUseCase := badger.NewBadgerUseCase(
		badgerRepo,
		challengeRepo,
	)

	var generator chat.ReplyGenerator
	if geminiClient != nil {
		generator = geminiClient
	}
	chatUseCase := chat.NewChatUseCase(
		challengeRepo,
		badgerRepo,
		messageRepo,
		generator,
		log,
	)

	var paymentClient challenge.PaymentClient
	if stripeClient != nil {
		paymentClient = stripeClient
	}
	challengeUseCase := challenge.NewChallengeUseCase(
		challengeRepo,
		badgerRepo,
		messageRepo,
		progressRepo,
		userRepo,
		paymentClient,
		log,
	)

	// Initialize realtime layer
	notifier := notification.NewService(redisClient, log)
	registry := ws.NewSessionRegistry()
	hub := ws.NewHub()
	notifier.SetInbandDeliverer(registry)

	wsHandler := ws.NewHandler(
		authUseCase,
		chatUseCase,
		registry,
		hub,
		notifier,
		log,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	badgerHandler := handler.NewBadgerHandler(badgerUseCase)
	challengeHandler := handler.NewChallengeHandler(challengeUseCase)
	paymentHandler := handler.NewPaymentHandler(challengeUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		badgerHandler,
		challengeHandler,
		paymentHandler,
		wsHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error("error closing redis", "error", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	c.Log.Sync()
	return nil
}
