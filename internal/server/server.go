package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/config"
	"anoa.com/healthmanage/internal/middleware"
	"anoa.com/healthmanage/pkg/metrics"
	"anoa.com/healthmanage/pkg/ratelimit"
	"anoa.com/healthmanage/pkg/search"
	"anoa.com/healthmanage/pkg/storage"
	"anoa.com/healthmanage/pkg/validator"
)

type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

func NewServer(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*Server, error) {
	if err := validator.Register(); err != nil {
		return nil, err
	}

	engine := authz.New(authz.WithObserver(func(resource authz.Resource, action authz.Action, outcome string) {
		metrics.RecordDecision(string(resource), string(action), outcome)
	}))

	imageStorage, err := newImageStorage(cfg)
	if err != nil {
		return nil, err
	}
	limiter, err := newLimiter(cfg, log)
	if err != nil {
		return nil, err
	}

	handlers := newHandlers(cfg, db, log, engine, imageStorage, newActivityIndex(cfg, log), limiter)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())
	router.Use(middleware.RequestLogger(log))
	setupCORS(router, cfg.AllowedOrigins)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", healthz(db))

	auth := middleware.NewAuthMiddleware(handlers.users, cfg.JWTSecret)
	registerRoutes(router, auth, handlers)

	return &Server{
		engine: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down http server")
	return s.http.Shutdown(shutdownCtx)
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func newImageStorage(cfg *config.Config) (storage.ImageStorage, error) {
	if !cfg.CloudinaryEnabled() {
		return storage.Disabled(), nil
	}
	return storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
}

func newActivityIndex(cfg *config.Config, log *zap.Logger) search.ActivityIndex {
	if cfg.MeiliSearchHost == "" {
		return search.Noop()
	}
	idx := search.NewMeiliActivityIndex(cfg.MeiliSearchHost, cfg.MeiliMasterKey)
	if err := search.Setup(idx); err != nil {
		log.Warn("failed to configure activity index", zap.Error(err))
	}
	return idx
}

func newLimiter(cfg *config.Config, log *zap.Logger) (ratelimit.Limiter, error) {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, message throttling disabled")
		return ratelimit.New(nil), nil
	}
	rdb, err := ratelimit.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return ratelimit.New(rdb), nil
}

func setupCORS(router *gin.Engine, origins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
