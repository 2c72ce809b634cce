package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/middleware"
	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	"github.com/stayhub/hotel-booking-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService           *service.AuthService
	rolePermissionService *service.RolePermissionService
	log                   zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	rolePermissionService *service.RolePermissionService,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:           authService,
		rolePermissionService: rolePermissionService,
		log:                   log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and returns a JWT carrying the user's role.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().Int("user_id", result.User.ID).Str("role", result.User.RoleName).Msg("user logged in")
	response.Success(c, http.StatusOK, result)
}

// Logout godoc
// POST /api/v1/auth/logout
// Revokes the presented token until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the current user with the permissions granted to their role.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	permissions, err := h.rolePermissionService.GetRolePermissions(c.Request.Context(), user.RoleID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	names := make([]string, 0, len(permissions))
	for _, p := range permissions {
		names = append(names, p.Name)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":        user,
		"permissions": names,
	})
}
