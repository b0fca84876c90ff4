package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// profileFields are the only account fields the owner can change
// through updateMe. Everything else (role, active, password) has its
// own guarded path.
var profileFields = map[string]struct{}{
	"firstName": {},
	"lastName":  {},
	"phone":     {},
	"avatar":    {},
}

// adminFields extends profileFields with the account controls only
// admins may touch.
var adminFields = map[string]struct{}{
	"firstName": {},
	"lastName":  {},
	"phone":     {},
	"avatar":    {},
	"email":     {},
	"role":      {},
	"active":    {},
}

// UserService implements profile self-service and the administrative
// account CRUD.
type UserService struct {
	users  ports.UserRepository
	tokens *TokenIssuer
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, tokens *TokenIssuer, logger zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile shallow-merges the provided fields into the account.
// Unknown or privileged fields are silently dropped.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*domain.User, error) {
	filtered := filterFields(fields, profileFields)
	if len(filtered) == 0 {
		return s.users.FindByID(ctx, userID)
	}
	return s.users.Update(ctx, userID, filtered)
}

func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) (string, *domain.User, error) {
	if len(next) < minPasswordLen {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user, err = s.users.Update(ctx, userID, map[string]any{"passwordHash": string(hash)})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Deactivate flips the account off but keeps the document around so the
// reactivation flow can bring it back.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	_, err := s.users.Update(ctx, userID, map[string]any{"active": false})
	if err == nil {
		s.logger.Info().Str("user_id", userID).Msg("account deactivated")
	}
	return err
}

func (s *UserService) List(ctx context.Context, q ports.ListQuery) (*ports.Page[domain.User], error) {
	return s.users.List(ctx, q)
}

func (s *UserService) AdminCreate(ctx context.Context, input ports.SignupInput, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Email == "" || len(input.Password) < minPasswordLen {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         role,
		Active:       true,
		PasswordHash: string(hash),
	}
	user.Touch(time.Now().UTC(), true)
	return s.users.Create(ctx, user)
}

func (s *UserService) AdminUpdate(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	filtered := filterFields(fields, adminFields)
	if role, ok := filtered["role"].(string); ok && !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}
	if len(filtered) == 0 {
		return s.users.FindByID(ctx, id)
	}
	return s.users.Update(ctx, id, filtered)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func filterFields(fields map[string]any, allowed map[string]struct{}) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}
	return out
}
