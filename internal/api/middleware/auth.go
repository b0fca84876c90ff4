package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// Auth resolves the session from the cookie (primary) or an
// Authorization bearer header, loads the account and injects it into
// the echo context. An inactive account is rejected exactly like a
// missing session: deactivation logs the user out everywhere, token
// validity notwithstanding.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session credentials")
			}

			userID := ParseUserID(token, jwtSecret)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			if !user.CanAuthenticate() {
				return echo.NewHTTPError(http.StatusUnauthorized, "account is deactivated")
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}

// ParseUserID validates the token and returns its subject, or "" when
// the token is invalid in any way.
func ParseUserID(token, jwtSecret string) string {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// TokenFromRequest extracts the session token from the session cookie,
// falling back to a bearer Authorization header.
func TokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
