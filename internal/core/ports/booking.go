package ports

import (
	"context"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
)

// CreateBookingInput carries the data needed to reserve seats on a trip.
type CreateBookingInput struct {
	UserID string
	TripID string
	Seats  int
}

// BookingService enforces the seat-capacity rules and the ownership
// rules: the "user" role only ever sees its own bookings, admins see all.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	List(ctx context.Context, role, userID string, q ListQuery) (*Page[domain.Booking], error)
	Get(ctx context.Context, role, userID, id string) (*domain.Booking, error)
	Cancel(ctx context.Context, role, userID, id string) (*domain.Booking, error)
}

// BookingRepository persists bookings. The generic CRUD repository
// covers everything except the status transition.
type BookingRepository interface {
	CrudRepository[domain.Booking]
	SetStatus(ctx context.Context, id, status string) error
}

// TripRepository extends the generic repository with atomic seat
// accounting. AdjustSeats must reject a positive delta that would
// exceed capacity.
type TripRepository interface {
	CrudRepository[domain.Trip]
	AdjustSeats(ctx context.Context, id string, delta int) error
}
