package devapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"anoa.com/leadercircle/internal/config"
	"anoa.com/leadercircle/pkg/logger"
)

// Server is a local stand-in for the community API: same routes, same JSON
// shapes, backed by gorm.
type Server struct {
	engine *gin.Engine
	db     *gorm.DB
	rdb    *redis.Client
	http   *http.Server
}

// Deps are the optional backends. A nil Search falls back to database LIKE
// matching; a nil Redis disables rate limiting.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Search Search
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := NewStore(deps.DB)
	search := deps.Search
	if search == nil {
		search = NewStoreSearch(store)
	}
	tokens := NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	now := time.Now

	authHandler := &authHandler{store: store, tokens: tokens, search: search}
	userHandler := &userHandler{store: store}
	profileHandler := &profileHandler{store: store, search: search, policy: bluemonday.StrictPolicy()}
	eventHandler := &eventHandler{store: store, now: now}
	resourceHandler := &resourceHandler{store: store, search: search}
	connectionHandler := &connectionHandler{store: store, now: now}
	messageHandler := &messageHandler{
		store:  store,
		rdb:    deps.Redis,
		limit:  cfg.RateLimitMessage,
		policy: bluemonday.StrictPolicy(),
		now:    now,
	}

	router := gin.New()
	// Route on the escaped path so ids containing "/" still match one segment.
	router.UseRawPath = true
	router.UnescapePathValues = true

	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	protected := api.Group("")
	protected.Use(tokens.RequireAuth())
	{
		protected.GET("/users", userHandler.List)
		protected.GET("/users/me", userHandler.Me)
		protected.GET("/users/role/:role", userHandler.ByRole)
		protected.GET("/users/cohort/:id", userHandler.ByCohort)
		protected.GET("/users/:id", userHandler.Get)

		protected.GET("/profiles/search", profileHandler.Search)
		protected.GET("/profiles/:userId", profileHandler.Get)
		protected.PUT("/profiles/:userId", profileHandler.Update)

		protected.GET("/events", eventHandler.List)
		protected.GET("/events/public", eventHandler.Public)
		protected.GET("/events/upcoming", eventHandler.Upcoming)
		protected.GET("/events/user/:id", eventHandler.ByUser)
		protected.GET("/events/:id", eventHandler.Get)
		protected.GET("/events/:id/attendees", eventHandler.Attendees)
		protected.POST("/events/rsvp", eventHandler.RSVP)

		protected.GET("/resources", resourceHandler.List)
		protected.GET("/resources/search", resourceHandler.Search)
		protected.GET("/resources/type/:type", resourceHandler.ByType)
		protected.GET("/resources/module/:module", resourceHandler.ByModule)
		protected.GET("/resources/:id", resourceHandler.Get)

		protected.POST("/connections", connectionHandler.Create)
		protected.GET("/connections/pending", connectionHandler.Pending)
		protected.GET("/connections/accepted", connectionHandler.Accepted)
		protected.PUT("/connections/:id", connectionHandler.Update)

		protected.POST("/messages", messageHandler.Send)
		protected.GET("/messages/thread/:id", messageHandler.Thread)
		protected.PUT("/messages/:id/read", messageHandler.MarkRead)
	}

	return &Server{
		engine: router,
		db:     deps.DB,
		rdb:    deps.Redis,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("devapi listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the database and redis connections.
func (s *Server) Close() error {
	var errs []error
	if s.rdb != nil {
		errs = append(errs, s.rdb.Close())
	}
	if sqlDB, err := s.db.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
