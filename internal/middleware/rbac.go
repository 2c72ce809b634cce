package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayhub/hotel-booking-backend/internal/response"
)

// RequireRole lets the request through only when the token's role is one of roles.
// It must run after RequireJWT.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}
