package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "repair_pricing/docs" // generated by swag init
	"repair_pricing/internal/adapter/http/handlers"
	"repair_pricing/internal/adapter/http/middleware"
	"repair_pricing/internal/infrastructure/bootstrap"
	"repair_pricing/internal/infrastructure/config"
	"repair_pricing/internal/infrastructure/logger"
	"repair_pricing/internal/infrastructure/metrics"
	"repair_pricing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run will start the server and block until SIGINT/SIGTERM or a listener failure.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := bootstrap.InitLogger(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	catalog, err := bootstrap.OpenCatalog(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s catalog: %w", cfg.Catalog.Backend, err)
	}
	defer func() {
		if err := catalog.Close(); err != nil {
			logger.Warn("Failed to close catalog", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	estimator, err := bootstrap.NewEstimator(cfg, catalog.Repo, metrics.NewEstimatorMetrics(reg))
	if err != nil {
		return fmt.Errorf("failed to build estimator: %w", err)
	}

	server := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler: NewRouter(estimator, cfg.Pricing.MaxBatchSize, reg),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	logger.Info("Starting server", zap.Int("port", cfg.HTTP.Port), zap.String("backend", cfg.Catalog.Backend))
	return serve(server, sigChan, cfg.HTTP.ShutdownTimeout)
}

// serve runs srv until stop fires, then shuts it down within timeout. A listener error
// is returned instead of exiting so the caller's cleanup still runs.
func serve(srv *http.Server, stop <-chan os.Signal, timeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to startup the application: %w", err)
		}
		return nil
	case <-stop:
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}

// NewRouter assembles middlewares and routes. reg also backs the /metrics endpoint.
func NewRouter(uc usecase.IPriceEstimationUseCase, maxBatchSize int, reg *prometheus.Registry) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, metrics.NewHTTPMetrics(reg))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler(reg)))

	priceHandler := handlers.NewPriceEstimateHandler(uc, maxBatchSize)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPricingRoutes(v1, priceHandler)
	return router
}

func setMiddlewares(router *gin.Engine, httpMetrics *metrics.HTTPMetrics) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.AccessLog())
	router.Use(httpMetrics.Middleware())
}
