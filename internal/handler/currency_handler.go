package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	"github.com/stayhub/hotel-booking-backend/internal/validator"
)

type CurrencyHandler struct {
	currencyService service.CurrencyService
	log             zerolog.Logger
}

func NewCurrencyHandler(currencyService service.CurrencyService, log zerolog.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
		log:             log.With().Str("component", "currency_handler").Logger(),
	}
}

type currencyRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Code   string `json:"code" binding:"required,len=3,alpha"`
	Symbol string `json:"symbol" binding:"omitempty,max=8"`
}

type currencyUpdateRequest struct {
	Name   string `json:"name" binding:"omitempty,max=100"`
	Code   string `json:"code" binding:"omitempty,len=3,alpha"`
	Symbol string `json:"symbol" binding:"omitempty,max=8"`
}

func (h *CurrencyHandler) GetAll(c *gin.Context) {
	currencies, err := h.currencyService.GetAllCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"currencies": currencies})
}

func (h *CurrencyHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	currency, err := h.currencyService.GetCurrency(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"currency": currency})
}

func (h *CurrencyHandler) Create(c *gin.Context) {
	var req currencyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req.Name, req.Code, req.Symbol)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"currency": currency})
}

func (h *CurrencyHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req currencyUpdateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Request.Context(), id, req.Name, req.Code, req.Symbol)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"currency": currency})
}

func (h *CurrencyHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.currencyService.DeleteCurrency(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "currency deleted successfully"})
}
