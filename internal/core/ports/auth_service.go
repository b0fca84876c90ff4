package ports

import (
	"context"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
)

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// AuthService owns the session lifecycle: registration, login (password
// and Google), logout, the password-reset state machine, and account
// reactivation. Login-shaped operations return a signed session token
// alongside the user.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GoogleLogin(ctx context.Context, code string) (string, *domain.User, error)
	// Logout is best-effort: it clears any pending password-reset state
	// for the account and never fails from the caller's perspective.
	Logout(ctx context.Context, userID string)
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, newPassword string) (string, *domain.User, error)
	Reactivate(ctx context.Context, email, password string) (string, *domain.User, error)
}

// GoogleProfile is the subset of the Google userinfo payload the
// service needs to provision an account.
type GoogleProfile struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Avatar    string
}

// GoogleExchanger turns an OAuth authorization code into a profile.
type GoogleExchanger interface {
	Exchange(ctx context.Context, code string) (*GoogleProfile, error)
}
