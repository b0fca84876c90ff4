package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/api/middleware"
	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// messageResponse is the envelope for operations with no payload.
type messageResponse struct {
	Message string `json:"message"`
}

// dataEnvelope wraps single-entity responses: { "data": Entity }.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// listEnvelope is the list response contract:
// { results, paginationResult, data }.
type listEnvelope[T any] struct {
	Results          int              `json:"results"`
	PaginationResult ports.Pagination `json:"paginationResult"`
	Data             []T              `json:"data"`
}

func newListEnvelope[T any](page *ports.Page[T]) listEnvelope[T] {
	return listEnvelope[T]{
		Results:          len(page.Items),
		PaginationResult: page.Pagination,
		Data:             page.Items,
	}
}

// sessionResponse is returned by every login-shaped operation.
type sessionResponse struct {
	Token string       `json:"token"`
	Data  *domain.User `json:"data"`
}

// bindListQuery reads the shared list parameters. An explicit page ≤ 0
// is a client bug and gets a 400 instead of a silent default.
func bindListQuery(c echo.Context) (ports.ListQuery, error) {
	q := ports.ListQuery{
		Keyword: c.QueryParam("keyword"),
		Sort:    c.QueryParam("sort"),
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page <= 0 {
			return q, echo.NewHTTPError(http.StatusBadRequest, "page must be a positive integer")
		}
		q.Page = page
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return q, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		q.Limit = limit
	}
	return q.Normalize(), nil
}

// setSessionCookie attaches the session token. SameSite=Lax keeps the
// cookie off cross-site POSTs while still following top-level navigations.
func setSessionCookie(c echo.Context, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
