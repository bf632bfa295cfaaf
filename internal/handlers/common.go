package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/middleware"
)

// getUserIDFromContext returns the authenticated caller's id, or "" when the
// request is unauthenticated.
func getUserIDFromContext(c echo.Context) string {
	id, _ := c.Get(middleware.ContextUserID).(string)
	return id
}

// httpError converts a classified error into the HTTP error the outward layer
// reports. Unclassified errors become a generic 500; their detail stays in
// the server log via echo's error handler.
func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apperr.HTTPStatus(err), apperr.Message(err)).SetInternal(err)
}
