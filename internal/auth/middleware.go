package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CurrentClaims extracts the typed claims that the echo-jwt middleware
// attached to the request context.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}

// RequireEventPoster allows the request through only when the token carries
// the canPostEvents capability. It must run after the JWT middleware.
func RequireEventPoster(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := CurrentClaims(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if !claims.CanPostEvents {
			return echo.NewHTTPError(http.StatusForbidden, "posting events is not enabled for this account")
		}
		return next(c)
	}
}
