package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
)

type RoleHandler struct {
	service *service.RoleService
	log     zerolog.Logger
}

func NewRoleHandler(svc *service.RoleService, log zerolog.Logger) *RoleHandler {
	return &RoleHandler{service: svc, log: log.With().Str("component", "role_handler").Logger()}
}

// ListRoles gets all roles sorted by name.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

// GetRole gets a role by ID.
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	role, err := h.service.GetRole(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"role": role})
}
