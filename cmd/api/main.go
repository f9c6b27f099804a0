package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/config"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/delivery/http/middleware"
	v1 "github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/delivery/http/v1"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/infrastructure/cache"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/repository/postgres"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/usecase"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/logger"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/utils"
)

const serviceName = "dealhunt-api"

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgxPool.Close()
	if err := postgres.EnsureSchema(context.Background(), pgxPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare database schema")
	}
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	userRepo := postgres.NewUserRepository(pgxPool)
	wishlistRepo := postgres.NewWishlistRepository(pgxPool)

	memCache := cache.NewMemoryCache(cfg.CacheWishlistTTL, 2*cfg.CacheWishlistTTL)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenExpiry)

	mux := http.NewServeMux()
	registerRoutes(mux, routeDeps{
		tokens:   tokens,
		auth:     v1.NewAuthHandler(usecase.NewAuthUsecase(userRepo, tokens)),
		wishlist: v1.NewWishlistHandler(usecase.NewWishlistUsecase(wishlistRepo, memCache, cfg.CacheWishlistTTL)),
		health:   v1.NewHealthHandler(pgxPool),
	})

	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // visitor TTL
	)

	handler := middleware.NewCORSMiddleware(cfg.AllowedOrigin)(mux)
	handler = middleware.PrometheusMetrics(serviceName, mux)(handler)
	handler = middleware.NewRequestLogger(tokens)(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()
	logger.ServiceStart(serviceName, "v1", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.ServiceStop(serviceName)
}
