package ports

import (
	"context"
	"time"
)

// ResetRecord is the state of one password-reset flow. Only a sha256 of
// the 6-digit code is stored. Verified flips once the code has been
// checked; ResetPassword refuses to run before that.
type ResetRecord struct {
	CodeHash [32]byte `json:"codeHash"`
	Attempts int      `json:"attempts"`
	Verified bool     `json:"verified"`
}

// ResetStore persists reset records keyed by account email. Get returns
// domain.ErrResetInvalid when no record exists (missing and expired are
// indistinguishable on purpose). Update keeps the remaining TTL.
type ResetStore interface {
	Save(ctx context.Context, email string, rec ResetRecord, ttl time.Duration) error
	Get(ctx context.Context, email string) (*ResetRecord, error)
	Update(ctx context.Context, email string, rec ResetRecord) error
	Delete(ctx context.Context, email string) error
}

// ResetLimiter throttles reset requests per account.
type ResetLimiter interface {
	// Allow reports whether another reset request may be issued for email.
	Allow(ctx context.Context, email string) (bool, error)
}
