package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
)

// currentUser extracts the account injected by the Auth middleware and
// performs a fast-fail check before any service call: presence of the
// user proves the middleware ran and the account passed the activation
// check.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return user, nil
}
