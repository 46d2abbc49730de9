package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"option-pricer/internal/api"
	"option-pricer/internal/api/handlers"
	"option-pricer/internal/api/models"
	"option-pricer/internal/cache"
	"option-pricer/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Get configuration from environment
	port := envOr("API_PORT", "8080")
	production := os.Getenv("API_ENV") == "production"

	if err := logger.Init(envOr("LOG_LEVEL", "info"), !production); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	limits := handlers.DefaultLimits
	if v := os.Getenv("API_MAX_PATHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			logger.L().Fatal("invalid API_MAX_PATHS", zap.String("value", v))
		}
		limits.MaxPaths = n
		if limits.DefaultPaths > n {
			limits.DefaultPaths = n
		}
	}

	var origins []string
	if v := os.Getenv("API_CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	ttl, err := time.ParseDuration(envOr("API_CACHE_TTL", "10m"))
	if err != nil {
		logger.L().Fatal("invalid API_CACHE_TTL", zap.Error(err))
	}
	quotes := cache.New[models.PriceResponse](ttl)
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go quotes.Janitor(janitorCtx, 5*time.Minute)

	router := api.NewRouter(api.Options{Limits: limits, AllowedOrigins: origins, QuoteCache: quotes})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.L().Info("starting API server",
			zap.String("addr", srv.Addr),
			zap.Int("max_paths", limits.MaxPaths),
			zap.Duration("cache_ttl", ttl),
			zap.Bool("production", production))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.Infof("shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
