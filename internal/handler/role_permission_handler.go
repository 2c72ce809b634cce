package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	"github.com/stayhub/hotel-booking-backend/internal/validator"
)

// RolePermissionHandler exposes the role-permission matrix.
type RolePermissionHandler struct {
	service *service.RolePermissionService
	log     zerolog.Logger
}

// NewRolePermissionHandler creates a new RolePermissionHandler.
func NewRolePermissionHandler(svc *service.RolePermissionService, log zerolog.Logger) *RolePermissionHandler {
	return &RolePermissionHandler{
		service: svc,
		log:     log.With().Str("component", "role_permission_handler").Logger(),
	}
}

type assignPermissionsRequest struct {
	PermissionIDs []int `json:"permission_ids" binding:"required,min=1,dive,gt=0,lte=2147483647"`
}

// GetMatrix godoc
// GET /api/v1/role-permissions
// GET /api/v1/role-permissions/matrix
func (h *RolePermissionHandler) GetMatrix(c *gin.Context) {
	matrix, err := h.service.GetRolePermissionMatrix(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, matrix)
}

// GetRolePermissions godoc
// GET /api/v1/role-permissions/role/:roleId
func (h *RolePermissionHandler) GetRolePermissions(c *gin.Context) {
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}

	permissions, err := h.service.GetRolePermissions(c.Request.Context(), roleID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"role_id": roleID, "permissions": permissions})
}

// AssignPermission godoc
// POST /api/v1/role-permissions/role/:roleId/permission/:permissionId
func (h *RolePermissionHandler) AssignPermission(c *gin.Context) {
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}
	permissionID, ok := paramID(c, "permissionId")
	if !ok {
		return
	}

	grant, err := h.service.AssignPermissionToRole(c.Request.Context(), roleID, permissionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, grant)
}

// RemovePermission godoc
// DELETE /api/v1/role-permissions/role/:roleId/permission/:permissionId
func (h *RolePermissionHandler) RemovePermission(c *gin.Context) {
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}
	permissionID, ok := paramID(c, "permissionId")
	if !ok {
		return
	}

	if err := h.service.RemovePermissionFromRole(c.Request.Context(), roleID, permissionID); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "permission removed from role"})
}

// AssignPermissions godoc
// POST /api/v1/role-permissions/role/:roleId/permissions
func (h *RolePermissionHandler) AssignPermissions(c *gin.Context) {
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}

	var req assignPermissionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	count, err := h.service.AssignMultiplePermissionsToRole(c.Request.Context(), roleID, req.PermissionIDs)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"count": count})
}

// RemoveAllPermissions godoc
// DELETE /api/v1/role-permissions/role/:roleId/permissions
func (h *RolePermissionHandler) RemoveAllPermissions(c *gin.Context) {
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}

	count, err := h.service.RemoveAllPermissionsFromRole(c.Request.Context(), roleID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": count})
}
