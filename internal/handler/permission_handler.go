package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	"github.com/stayhub/hotel-booking-backend/internal/validator"
)

type PermissionHandler struct {
	service *service.PermissionService
	log     zerolog.Logger
}

func NewPermissionHandler(svc *service.PermissionService, log zerolog.Logger) *PermissionHandler {
	return &PermissionHandler{
		service: svc,
		log:     log.With().Str("component", "permission_handler").Logger(),
	}
}

type permissionRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

func (h *PermissionHandler) List(c *gin.Context) {
	permissions, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"permissions": permissions})
}

func (h *PermissionHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	permission, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"permission": permission})
}

func (h *PermissionHandler) Create(c *gin.Context) {
	var req permissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	permission, err := h.service.Create(c.Request.Context(), service.PermissionInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"permission": permission})
}

func (h *PermissionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req permissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	permission, err := h.service.Update(c.Request.Context(), id, service.PermissionInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"permission": permission})
}

func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "permission deleted successfully"})
}
