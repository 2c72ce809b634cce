package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/config"
	"github.com/stayhub/hotel-booking-backend/internal/handler"
	"github.com/stayhub/hotel-booking-backend/internal/middleware"
	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth           *handler.AuthHandler
	Role           *handler.RoleHandler
	Permission     *handler.PermissionHandler
	RolePermission *handler.RolePermissionHandler
	Country        *handler.CountryHandler
	Currency       *handler.CurrencyHandler
	WS             *handler.WSHandler
	Health         *handler.HealthHandler
	Metrics        *middleware.HTTPMetrics
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	loginLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// Restrict to AllowedOrigins when configured, otherwise allow all.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and every envelope carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))
	router.Use(handlers.Metrics.Handler())
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: cfg.CompressionMinBytes,
	}))

	router.GET("/health", handlers.Health.Health)
	if handlers.Metrics != nil {
		router.GET("/metrics", gin.WrapH(handlers.Metrics.Exposition()))
	}

	requireJWT := middleware.RequireJWT(authService)
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleSupervisor)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		login := []gin.HandlerFunc{handlers.Auth.Login}
		if loginLimiter != nil {
			login = append([]gin.HandlerFunc{loginLimiter.Middleware()}, login...)
		}
		auth.POST("/login", login...)
		auth.POST("/logout", requireJWT, handlers.Auth.Logout)
		auth.GET("/me", requireJWT, handlers.Auth.Me)
	}

	// ─── 2. Reference Data (public reads, admin writes) ────────────────
	cacheReads := middleware.CacheControl(int(cfg.ReferenceCacheTTL.Seconds()))

	countries := router.Group("/api/v1/countries")
	{
		countries.GET("", cacheReads, handlers.Country.GetAll)
		countries.GET("/:id", cacheReads, handlers.Country.Get)
		countries.POST("", requireJWT, adminOnly, handlers.Country.Create)
		countries.PUT("/:id", requireJWT, adminOnly, handlers.Country.Update)
		countries.DELETE("/:id", requireJWT, adminOnly, handlers.Country.Delete)
	}

	currencies := router.Group("/api/v1/currencies")
	{
		currencies.GET("", cacheReads, handlers.Currency.GetAll)
		currencies.GET("/:id", cacheReads, handlers.Currency.Get)
		currencies.POST("", requireJWT, adminOnly, handlers.Currency.Create)
		currencies.PUT("/:id", requireJWT, adminOnly, handlers.Currency.Update)
		currencies.DELETE("/:id", requireJWT, adminOnly, handlers.Currency.Delete)
	}

	// ─── 3. Staff Group (JWT + ADMIN/SUPERVISOR) ───────────────────────
	staffAPI := router.Group("/api/v1")
	staffAPI.Use(requireJWT, staff)
	{
		staffAPI.GET("/roles", handlers.Role.ListRoles)
		staffAPI.GET("/roles/:id", handlers.Role.GetRole)

		permissions := staffAPI.Group("/permissions")
		{
			permissions.GET("", handlers.Permission.List)
			permissions.GET("/:id", handlers.Permission.Get)
			permissions.POST("", adminOnly, handlers.Permission.Create)
			permissions.PUT("/:id", adminOnly, handlers.Permission.Update)
			permissions.DELETE("/:id", adminOnly, handlers.Permission.Delete)
		}

		rp := staffAPI.Group("/role-permissions")
		{
			rp.GET("", handlers.RolePermission.GetMatrix)
			rp.GET("/matrix", handlers.RolePermission.GetMatrix)
			rp.GET("/role/:roleId", handlers.RolePermission.GetRolePermissions)
			rp.POST("/role/:roleId/permission/:permissionId", handlers.RolePermission.AssignPermission)
			rp.DELETE("/role/:roleId/permission/:permissionId", handlers.RolePermission.RemovePermission)
			rp.POST("/role/:roleId/permissions", handlers.RolePermission.AssignPermissions)
			rp.DELETE("/role/:roleId/permissions", handlers.RolePermission.RemoveAllPermissions)
		}
	}

	// ─── 4. WebSocket Group (token via ?token=) ────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(requireJWT, staff)
	{
		ws.GET("/role-permissions/stream", handlers.WS.RolePermissionStream)
	}

	return router
}
