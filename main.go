package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/RyanRana/reallycheapflightfinderbro/api"
	"github.com/RyanRana/reallycheapflightfinderbro/config"
	"github.com/RyanRana/reallycheapflightfinderbro/flights"
	"github.com/RyanRana/reallycheapflightfinderbro/pkg/cache"
	"github.com/RyanRana/reallycheapflightfinderbro/pkg/deals"
	"github.com/RyanRana/reallycheapflightfinderbro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal(err, "failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LoggingConfig.Level,
		Format: cfg.LoggingConfig.Format,
	})
	log.Info("configuration loaded", "environment", cfg.Environment, "port", cfg.Port)

	var source flights.PriceSource = flights.NewClient(cfg.ProviderConfig)

	// Wrap the provider with the response cache unless disabled.
	if cfg.CacheEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr(),
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unavailable, running without the response cache", "error", err)
		} else {
			manager := cache.NewManager(cache.NewRedisCache(redisClient, ""))
			source = flights.NewCachedSource(source, manager, cfg.SearchConfig.CacheTTL, log)
			log.Info("response cache enabled", "addr", cfg.RedisConfig.Addr(), "ttl", cfg.SearchConfig.CacheTTL)
		}
	}

	engine := deals.NewEngine(source, cfg.SearchConfig, log)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.RegisterRoutes(router, engine)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced server shutdown")
	}
	log.Info("server stopped")
}
