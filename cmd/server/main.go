package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/config"
	"github.com/stayhub/hotel-booking-backend/internal/database"
	"github.com/stayhub/hotel-booking-backend/internal/handler"
	"github.com/stayhub/hotel-booking-backend/internal/logger"
	"github.com/stayhub/hotel-booking-backend/internal/middleware"
	"github.com/stayhub/hotel-booking-backend/internal/redisstore"
	"github.com/stayhub/hotel-booking-backend/internal/repository"
	"github.com/stayhub/hotel-booking-backend/internal/router"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	"github.com/stayhub/hotel-booking-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting StayHub API")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	roleRepo := repository.NewRoleRepository(pool)
	permissionRepo := repository.NewPermissionRepository(pool)
	rolePermissionRepo := repository.NewRolePermissionRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	countryRepo := repository.NewCountryRepository(pool)
	currencyRepo := repository.NewCurrencyRepository(pool)

	// ─── Redis-backed Stores ───────────────────────────────────────────
	eventBus := redisstore.NewEventBus(rdb)
	denylist := redisstore.NewTokenDenylist(rdb)
	loginCounter := redisstore.NewWindowCounter(rdb, time.Minute)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, denylist)
	roleService := service.NewRoleService(roleRepo)
	permissionService := service.NewPermissionService(permissionRepo, rolePermissionRepo, eventBus, log)
	rolePermissionService := service.NewRolePermissionService(roleRepo, permissionRepo, rolePermissionRepo, eventBus, log)
	countryService := service.NewCountryService(countryRepo)
	currencyService := service.NewCurrencyService(currencyRepo)

	// ─── Metrics ───────────────────────────────────────────────────────
	httpMetrics, err := middleware.NewHTTPMetrics(prometheus.NewRegistry())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register HTTP metrics")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:           handler.NewAuthHandler(authService, rolePermissionService, log),
		Role:           handler.NewRoleHandler(roleService, log),
		Permission:     handler.NewPermissionHandler(permissionService, log),
		RolePermission: handler.NewRolePermissionHandler(rolePermissionService, log),
		Country:        handler.NewCountryHandler(countryService, log),
		Currency:       handler.NewCurrencyHandler(currencyService, log),
		WS:             handler.NewWSHandler(eventBus, rolePermissionService, log, cfg.AllowedOrigins),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}, log),
		Metrics: httpMetrics,
	}

	loginLimiter := middleware.NewRateLimiter(loginCounter, "login", cfg.RateLimitPerMinute, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, loginLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new HTTP requests; open WebSocket streams end with ctx.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
