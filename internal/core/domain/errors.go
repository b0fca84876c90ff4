package domain

import "errors"

// Account errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrAccountActive      = errors.New("account is already active")
)

// Password-reset flow errors. The flow is a small state machine
// (requested → code-verified → consumed) and each illegal transition has
// its own sentinel so the transport layer can answer precisely.
var (
	ErrResetInvalid     = errors.New("invalid or expired reset code")
	ErrResetAttempts    = errors.New("too many reset code attempts")
	ErrResetRateLimited = errors.New("too many reset requests, try again later")
	ErrResetNotVerified = errors.New("reset code has not been verified")
)

// Generic resource errors.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("access forbidden")
)

// Booking errors.
var (
	ErrNoSeats          = errors.New("not enough seats available")
	ErrBookingCancelled = errors.New("booking is already cancelled")
	ErrTripNotBookable  = errors.New("trip is not open for booking")
)
