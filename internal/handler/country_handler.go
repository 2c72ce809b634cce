package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	"github.com/stayhub/hotel-booking-backend/internal/validator"
)

type CountryHandler struct {
	countryService service.CountryService
	log            zerolog.Logger
}

func NewCountryHandler(countryService service.CountryService, log zerolog.Logger) *CountryHandler {
	return &CountryHandler{
		countryService: countryService,
		log:            log.With().Str("component", "country_handler").Logger(),
	}
}

type countryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,len=2,alpha"`
}

type countryUpdateRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
	Code string `json:"code" binding:"omitempty,len=2,alpha"`
}

func (h *CountryHandler) GetAll(c *gin.Context) {
	countries, err := h.countryService.GetAllCountries(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"countries": countries})
}

func (h *CountryHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	country, err := h.countryService.GetCountry(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"country": country})
}

func (h *CountryHandler) Create(c *gin.Context) {
	var req countryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	country, err := h.countryService.CreateCountry(c.Request.Context(), req.Name, req.Code)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"country": country})
}

func (h *CountryHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req countryUpdateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	country, err := h.countryService.UpdateCountry(c.Request.Context(), id, req.Name, req.Code)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"country": country})
}

func (h *CountryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.countryService.DeleteCountry(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "country deleted successfully"})
}
