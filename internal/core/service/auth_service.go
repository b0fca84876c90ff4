package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tourism-Ease/booking-api/internal/api/metrics"
	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

const (
	resetTTL         = 10 * time.Minute
	resetMaxAttempts = 5
	minPasswordLen   = 6
)

// AuthService implements the session lifecycle: signup, password and
// Google login, logout, the password-reset state machine and account
// reactivation.
type AuthService struct {
	users   ports.UserRepository
	resets  ports.ResetStore
	limiter ports.ResetLimiter
	google  ports.GoogleExchanger
	mail    ports.MailQueue
	tokens  *TokenIssuer
	logger  zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	resets ports.ResetStore,
	limiter ports.ResetLimiter,
	google ports.GoogleExchanger,
	mail ports.MailQueue,
	tokens *TokenIssuer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		resets:  resets,
		limiter: limiter,
		google:  google,
		mail:    mail,
		tokens:  tokens,
		logger:  logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (string, *domain.User, error) {
	if input.Email == "" || len(input.Password) < minPasswordLen {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         domain.RoleUser,
		Active:       true,
		PasswordHash: string(hash),
	}
	user.Touch(time.Now().UTC(), true)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}

	s.mail.Enqueue(ports.MailJob{
		To:       created.Email,
		Subject:  "Welcome to Tourism Ease",
		Body:     fmt.Sprintf("Hi %s, your account is ready. Happy travels!", created.FirstName),
		Template: ports.MailWelcome,
	})

	s.logger.Info().Str("user_id", created.ID).Msg("account created")
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same answer as a wrong password: no account enumeration.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, domain.ErrAccountInactive
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("password").Inc()
	return token, user, nil
}

func (s *AuthService) GoogleLogin(ctx context.Context, code string) (string, *domain.User, error) {
	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Msg("google exchange failed")
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if !user.Active {
			return "", nil, domain.ErrAccountInactive
		}
		if user.GoogleID == "" {
			if user, err = s.users.Update(ctx, user.ID, map[string]any{"googleId": profile.Subject}); err != nil {
				return "", nil, err
			}
		}
	case errors.Is(err, domain.ErrUserNotFound):
		user = &domain.User{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Email:     profile.Email,
			Avatar:    profile.Avatar,
			Role:      domain.RoleUser,
			Active:    true,
			GoogleID:  profile.Subject,
		}
		user.Touch(time.Now().UTC(), true)
		if user, err = s.users.Create(ctx, user); err != nil {
			return "", nil, err
		}
		s.logger.Info().Str("user_id", user.ID).Msg("account provisioned via google")
	default:
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("google").Inc()
	return token, user, nil
}

// Logout clears any pending password-reset state for the account. It is
// best-effort: the session cookie is cleared by the handler no matter
// what happens here.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return
	}
	if err := s.resets.Delete(ctx, user.Email); err != nil {
		s.logger.Warn().Err(err).Msg("logout: reset state cleanup failed")
	}
}

// ForgotPassword starts the reset flow. Unknown addresses get the same
// success answer as known ones so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrResetRateLimited
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}

	rec := ports.ResetRecord{CodeHash: sha256.Sum256([]byte(code))}
	if err := s.resets.Save(ctx, email, rec, resetTTL); err != nil {
		return err
	}

	s.mail.Enqueue(ports.MailJob{
		To:       email,
		Subject:  "Your password reset code",
		Body:     fmt.Sprintf("Hi %s, your reset code is %s. It expires in 10 minutes.", user.FirstName, code),
		Template: ports.MailResetCode,
	})

	metrics.PasswordResetRequestsTotal.Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

// VerifyResetCode checks the 6-digit code and, on success, marks the
// flow verified so ResetPassword becomes legal. Each wrong code burns
// one of the record's attempts.
func (s *AuthService) VerifyResetCode(ctx context.Context, email, code string) error {
	if !validResetCode(code) {
		return domain.ErrResetInvalid
	}

	rec, err := s.resets.Get(ctx, email)
	if err != nil {
		return err
	}

	if rec.Attempts >= resetMaxAttempts {
		metrics.PasswordResetConfirmsTotal.WithLabelValues("attempts_exceeded").Inc()
		return domain.ErrResetAttempts
	}
	rec.Attempts++

	hash := sha256.Sum256([]byte(code))
	if subtle.ConstantTimeCompare(hash[:], rec.CodeHash[:]) != 1 {
		if uerr := s.resets.Update(ctx, email, *rec); uerr != nil {
			return uerr
		}
		metrics.PasswordResetConfirmsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrResetInvalid
	}

	rec.Verified = true
	if err := s.resets.Update(ctx, email, *rec); err != nil {
		return err
	}

	metrics.PasswordResetConfirmsTotal.WithLabelValues("ok").Inc()
	return nil
}

// ResetPassword consumes a verified reset record, rotates the password
// and performs an implicit login.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) (string, *domain.User, error) {
	if len(newPassword) < minPasswordLen {
		return "", nil, domain.ErrInvalidCredentials
	}

	rec, err := s.resets.Get(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if !rec.Verified {
		return "", nil, domain.ErrResetNotVerified
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	user, err = s.users.Update(ctx, user.ID, map[string]any{"passwordHash": string(hash)})
	if err != nil {
		return "", nil, err
	}

	if err := s.resets.Delete(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("reset record cleanup failed")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("reset").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("password reset completed")
	return token, user, nil
}

// Reactivate turns an inactive account back on given valid credentials
// and logs it in.
func (s *AuthService) Reactivate(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.Active {
		return "", nil, domain.ErrAccountActive
	}

	user, err = s.users.Update(ctx, user.ID, map[string]any{"active": true})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("reactivate").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("account reactivated")
	return token, user, nil
}

// generateResetCode returns a random zero-padded 6-digit code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// validResetCode reports whether code is exactly six ASCII digits.
func validResetCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
