package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/kalakar-academy/academy-api/api/swagger"
	"github.com/kalakar-academy/academy-api/internal/handler"
	"github.com/kalakar-academy/academy-api/internal/middleware"
	"github.com/kalakar-academy/academy-api/internal/repository"
	"github.com/kalakar-academy/academy-api/internal/service"
	"github.com/kalakar-academy/academy-api/pkg/cache"
	"github.com/kalakar-academy/academy-api/pkg/config"
	"github.com/kalakar-academy/academy-api/pkg/database"
	"github.com/kalakar-academy/academy-api/pkg/logger"
	corsmiddleware "github.com/kalakar-academy/academy-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kalakar-academy/academy-api/pkg/middleware/requestid"
	"github.com/kalakar-academy/academy-api/pkg/response"
)

// @title Kalakar Art Academy API
// @version 1.0.0
// @description Enrollment and contact persistence gateway
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// The pool dials lazily: the server comes up even when the database
	// is down, and /api/health reports the actual connection state.
	pool := database.NewPool(cfg.Database)
	defer pool.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, stats served uncached", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, validate, logr)
	contactSvc := service.NewContactService(contactRepo, validate, logr)
	statsSvc := service.NewStatsService(enrollmentRepo, contactRepo, redisClient, cfg.Stats.CacheTTL, logr)
	metricsSvc := service.NewMetricsService()

	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	healthHandler := handler.NewHealthHandler(pool)

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logr.Sugar().Errorw("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Envelope{
			Success: false,
			Error:   "Internal server error",
		})
	}))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/health", healthHandler.Health)
		api.POST("/enrollment", enrollmentHandler.Create)
		api.GET("/enrollments", enrollmentHandler.List)
		api.POST("/contact", contactHandler.Create)
		api.GET("/contacts", contactHandler.List)
		api.GET("/stats", statsHandler.Stats)
	}

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Envelope{
			Success: false,
			Error:   "Route not found",
			Data: gin.H{
				"availableEndpoints": []string{
					"GET " + cfg.APIPrefix + "/health",
					"POST " + cfg.APIPrefix + "/enrollment",
					"GET " + cfg.APIPrefix + "/enrollments",
					"POST " + cfg.APIPrefix + "/contact",
					"GET " + cfg.APIPrefix + "/contacts",
					"GET " + cfg.APIPrefix + "/stats",
				},
			},
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
	logr.Info("server stopped")
}
