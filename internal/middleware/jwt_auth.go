package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "userID"
	ContextClaims = "claims"
)

// JWTAuth checks for a valid token and stores the caller's identity on the
// context. The token is read from the Authorization header or, failing that,
// the token cookie.
func JWTAuth(creds *auth.Credentials) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c)
			if tokenString == "" {
				if cookie, err := c.Cookie("token"); err == nil {
					tokenString = cookie.Value
				}
			}
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusForbidden, "A token is required for authentication")
			}

			claims, err := creds.Verify(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Token")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextClaims, claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
