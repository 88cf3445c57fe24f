package utils

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
)

const bearerPrefix = "Bearer "

// CreateBearerTokenMiddleware rejects requests whose bearer token is not one
// of validTokens.
func CreateBearerTokenMiddleware(validTokens []string) echo.MiddlewareFunc {
	tokens := make([][]byte, 0, len(validTokens))
	for _, token := range validTokens {
		tokens = append(tokens, []byte(token))
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			token, ok := strings.CutPrefix(auth, bearerPrefix)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}
			for _, valid := range tokens {
				if subtle.ConstantTimeCompare([]byte(token), valid) == 1 {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
	}
}
