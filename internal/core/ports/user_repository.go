package ports

import (
	"context"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
)

// UserRepository defines persistence for accounts. Update applies a
// shallow merge: only the provided fields change, everything else is
// left untouched.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) (*Page[domain.User], error)
}
