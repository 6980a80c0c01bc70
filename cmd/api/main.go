package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DevByAndrei/portfolio/config"
	"github.com/DevByAndrei/portfolio/internal/handlers"
	"github.com/DevByAndrei/portfolio/internal/middleware"
	"github.com/DevByAndrei/portfolio/internal/models"
	"github.com/DevByAndrei/portfolio/internal/services"
	"github.com/DevByAndrei/portfolio/pkg/httpclient"
	"github.com/DevByAndrei/portfolio/pkg/logger"
	"github.com/DevByAndrei/portfolio/pkg/metrics"
	"github.com/DevByAndrei/portfolio/pkg/profiling"
	"github.com/DevByAndrei/portfolio/pkg/resend"
	"github.com/DevByAndrei/portfolio/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerAPIRoutes registers the API routes for a given router group
func registerAPIRoutes(
	group *gin.RouterGroup,
	generalRateLimiter *middleware.RateLimiter,
	contactRateLimiter *middleware.ContactRateLimiter,
	contactHandler *handlers.ContactHandler,
	healthHandler *handlers.HealthHandler,
) {
	group.POST("/sendEmail", contactRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), contactHandler.SendEmail)

	// Utility endpoints (operational)
	group.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	group.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}

// registerStaticRoutes serves the built front-end bundle. Unmatched
// non-API paths fall back to index.html so client-side routing works.
func registerStaticRoutes(router *gin.Engine, staticDir string) {
	if staticDir == "" {
		return
	}

	assetsDir := filepath.Join(staticDir, "assets")
	if _, err := os.Stat(assetsDir); err == nil {
		router.Static("/assets", assetsDir)
	}

	index := filepath.Join(staticDir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, models.ContactResponse{Success: false, Error: "Not found"})
			return
		}

		// Serve real files (robots.txt, favicon, ...) directly, everything
		// else gets the SPA entry point.
		candidate := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
		c.File(index)
	})
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting portfolio API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
		cfg.Observability.OTLPEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize metrics
	metrics.Init()

	// Initialize continuous profiling
	profilerStop, err := profiling.Init(profiling.Config{
		Enabled:               cfg.Profiling.Enabled,
		Endpoint:              cfg.Profiling.Endpoint,
		AppName:               cfg.Profiling.AppName,
		UploadIntervalSeconds: cfg.Profiling.UploadIntervalSeconds,
	}, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Initialize HTTP client for the mail provider
	httpClient := httpclient.NewStandardClient()
	mailer := resend.NewClient(cfg.Mail.ResendAPIKey, httpClient)

	// Initialize services
	contactService := services.NewContactService(mailer, cfg)

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(contactService)
	healthHandler := handlers.NewHealthHandler(func() bool {
		return cfg.Mail.ResendAPIKey != "" || cfg.IsDevelopment()
	})

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())

	// CORS: the form may be embedded anywhere, so any origin may POST.
	// Credentials stay off, which is what makes the wildcard safe.
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	// Non-POST hits on /api/sendEmail answer 405 instead of 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.ContactResponse{Success: false, Error: handlers.MsgMethodNotAllowed})
	})

	// Rate limiters: sliding window per client for the contact form,
	// token bucket for the operational endpoints
	contactRateLimiter := middleware.NewContactRateLimiter(
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		cfg.RateLimit.MaxRequests,
	)
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	defer generalRateLimiter.Stop()

	// API routes
	api := router.Group("/api")
	api.Use(middleware.SecurityHeadersMiddleware())
	registerAPIRoutes(api, generalRateLimiter, contactRateLimiter, contactHandler, healthHandler)

	// Front-end bundle
	registerStaticRoutes(router, cfg.Server.StaticDir)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
