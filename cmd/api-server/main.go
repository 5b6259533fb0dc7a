package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/linemark/linemark/database"
	"github.com/linemark/linemark/internal/config"
	"github.com/linemark/linemark/internal/handler"
	"github.com/linemark/linemark/internal/importer"
	"github.com/linemark/linemark/internal/logging"
	"github.com/linemark/linemark/internal/middleware"
	"github.com/linemark/linemark/internal/repository"
	"github.com/linemark/linemark/internal/repository/memory"
	"github.com/linemark/linemark/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(cfg)

	// Persistence: Postgres when configured, in-memory store otherwise.
	var (
		documentRepo  repository.DocumentRepository
		commentRepo   repository.CommentRepository
		highlightRepo repository.HighlightRepository
		relationRepo  repository.RelationRepository
		userRepo      repository.UserRepository
		tokenRepo     repository.RefreshTokenRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := database.ConnectDB(cfg, logger)
		if err != nil {
			log.Fatalf("could not connect to database: %v", err)
		}
		documentRepo = repository.NewDocumentRepository(db)
		commentRepo = repository.NewCommentRepository(db)
		highlightRepo = repository.NewHighlightRepository(db)
		relationRepo = repository.NewRelationRepository(db)
		userRepo = repository.NewUserRepository(db)
		tokenRepo = repository.NewRefreshTokenRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store; data will not survive restarts")
		store := memory.NewStore()
		documentRepo = store.Documents()
		commentRepo = store.Comments()
		highlightRepo = store.Highlights()
		relationRepo = store.Relations()
		userRepo = store.Users()
		tokenRepo = store.Tokens()
	}

	// Refresh tokens move to Redis when available.
	if cfg.RedisURL != "" {
		redisStore, err := repository.NewRedisTokenStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		defer redisStore.Close()
		tokenRepo = redisStore
		logger.Info("refresh tokens stored in Redis")
	}

	fetcher := importer.New(cfg.ImportTimeout, cfg.ImportMaxBytes)

	authService := service.NewAuthService(userRepo, tokenRepo, cfg)
	documentService := service.NewDocumentService(documentRepo, fetcher)
	annotationService := service.NewAnnotationService(documentRepo, commentRepo, highlightRepo, relationRepo)

	accessTokenTTLSeconds := int64(cfg.AccessTokenTTL.Seconds())
	authHandler := handler.NewAuthHandler(authService, accessTokenTTLSeconds)
	documentHandler := handler.NewDocumentHandler(documentService, annotationService)
	commentHandler := handler.NewCommentHandler(annotationService)
	highlightHandler := handler.NewHighlightHandler(annotationService)
	relationHandler := handler.NewRelationHandler(annotationService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authMW := middleware.AuthMiddleware(authService)
	loginLimiter := middleware.NewRateLimiter(rate.Limit(1), 5).Middleware()
	importLimiter := middleware.NewRateLimiter(rate.Limit(0.5), 3).Middleware()

	api := r.Group("/api")
	authHandler.RegisterRoutes(api, authMW, loginLimiter)
	documentHandler.RegisterRoutes(api, authMW, importLimiter)
	commentHandler.RegisterRoutes(api, authMW)
	highlightHandler.RegisterRoutes(api, authMW)
	relationHandler.RegisterRoutes(api, authMW)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
