package ports

import (
	"context"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
)

// UserService covers the profile operations of the authenticated user
// plus the administrative account CRUD.
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile shallow-merges the provided fields into the account.
	UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*domain.User, error)
	// ChangePassword verifies the current password before rotating it and
	// re-issues a session token.
	ChangePassword(ctx context.Context, userID, current, next string) (string, *domain.User, error)
	// Deactivate flips active=false but keeps the account document so it
	// can be reactivated later.
	Deactivate(ctx context.Context, userID string) error

	List(ctx context.Context, q ListQuery) (*Page[domain.User], error)
	AdminCreate(ctx context.Context, input SignupInput, role string) (*domain.User, error)
	AdminUpdate(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
