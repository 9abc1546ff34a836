package web

import (
	"context"
	"net/http"
	"time"

	"faq-agent/config"
	"faq-agent/database"
	"faq-agent/engine"
	"faq-agent/web/handlers"
	"faq-agent/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router  *gin.Engine
	engine  *engine.Engine
	logger  *zap.Logger
	config  *config.Config
	store   *database.PostgresStore
	limiter *middleware.SessionRateLimiter
}

func NewServer(eng *engine.Engine, logger *zap.Logger, cfg *config.Config, store *database.PostgresStore) *Server {
	// Set Gin mode based on environment
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		// Add logger to context
		c.Set("logger", logger)
		c.Next()
	})

	limiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
		MessagesPerMinute: cfg.RateLimitPerMin,
		BurstSize:         cfg.RateLimitBurstSize,
		CleanupInterval:   time.Duration(cfg.RateLimitCleanupMins) * time.Minute,
	}, logger)

	server := &Server{
		router:  router,
		engine:  eng,
		logger:  logger,
		config:  cfg,
		store:   store,
		limiter: limiter,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	chatHandler := handlers.NewChatHandler(s.engine, s.store, s.logger, s.config.UtteranceTimeout)

	session := middleware.SessionMiddleware(s.store)

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.POST("/chat", session, middleware.RateLimitMiddleware(s.limiter), chatHandler.SendMessage)
	s.router.GET("/chat/history", session, chatHandler.History)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	s.limiter.Stop()
	s.logger.Info("Shutting down web server")
	return srv.Shutdown(context.Background())
}
