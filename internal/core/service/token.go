package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
)

// TokenIssuer signs HS256 session tokens. The token only carries the
// account id and role; activation state is re-checked against the
// database on every request, so deactivating an account invalidates
// its sessions immediately.
type TokenIssuer struct {
	secret string
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime (the session cookie shares it).
func (i *TokenIssuer) TTL() time.Duration { return i.ttl }

// Issue signs a session token for the user.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.secret))
}
