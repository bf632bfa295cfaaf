package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
)

// RequireLevel gates a route on the caller's user type. It loads the caller's
// document so downstream handlers can pick it up from the context.
func RequireLevel(users repositories.UserRepository, level models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextUserID).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !user.UserType.AtLeast(level) {
				return echo.NewHTTPError(http.StatusForbidden, "User is unauthorized to make this request.")
			}

			c.Set("user", user)
			return next(c)
		}
	}
}
