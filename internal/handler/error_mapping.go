package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
)

// kindStatus maps a service error kind to its HTTP status and error code.
var kindStatus = map[service.Kind]struct {
	status int
	code   response.ErrCode
}{
	service.KindNotFound:     {http.StatusNotFound, response.ErrNotFound},
	service.KindValidation:   {http.StatusBadRequest, response.ErrValidation},
	service.KindConflict:     {http.StatusBadRequest, response.ErrConflict},
	service.KindUnauthorized: {http.StatusUnauthorized, response.ErrInvalidCredentials},
}

// respondError writes the response for an error returned by a service.
// Untyped errors are logged and reported as 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if m, ok := kindStatus[svcErr.Kind]; ok {
			response.FailWithMessage(c, m.status, m.code, svcErr.Message)
			return
		}
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// paramID parses a positive int4 path parameter. On failure it writes a
// 400 INVALID_ID response and returns false.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return int(id), true
}
