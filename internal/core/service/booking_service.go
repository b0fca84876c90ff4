package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Tourism-Ease/booking-api/internal/api/metrics"
	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

const bookingsResource = "bookings"

// BookingService reserves and releases trip seats. Seat accounting is
// delegated to the trip repository's atomic update so concurrent
// bookings can never oversell a departure.
type BookingService struct {
	bookings ports.BookingRepository
	trips    ports.TripRepository
	users    ports.UserRepository
	cache    ports.ListCache
	mail     ports.MailQueue
	logger   zerolog.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	trips ports.TripRepository,
	users ports.UserRepository,
	cache ports.ListCache,
	mail ports.MailQueue,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		trips:    trips,
		users:    users,
		cache:    cache,
		mail:     mail,
		logger:   logger,
	}
}

func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	if input.Seats <= 0 {
		return nil, domain.ErrNoSeats
	}

	trip, err := s.trips.FindByID(ctx, input.TripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripScheduled {
		return nil, domain.ErrTripNotBookable
	}

	if err := s.trips.AdjustSeats(ctx, trip.ID, input.Seats); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference:  uuid.NewString(),
		UserID:     input.UserID,
		TripID:     trip.ID,
		Seats:      input.Seats,
		TotalPrice: float64(input.Seats) * trip.Price,
		Status:     domain.BookingConfirmed,
	}
	booking.Touch(time.Now().UTC(), true)

	if err := s.bookings.Insert(ctx, booking); err != nil {
		// Give the seats back; the reservation never existed.
		if rerr := s.trips.AdjustSeats(ctx, trip.ID, -input.Seats); rerr != nil {
			s.logger.Error().Err(rerr).Str("trip_id", trip.ID).Msg("seat release after failed insert")
		}
		s.cache.InvalidateResource(ctx, bookingsResource)
		return nil, err
	}

	s.cache.InvalidateResource(ctx, bookingsResource)
	s.cache.InvalidateResource(ctx, "trips")

	if user, uerr := s.users.FindByID(ctx, input.UserID); uerr == nil {
		s.mail.Enqueue(ports.MailJob{
			To:      user.Email,
			Subject: "Booking confirmed: " + trip.Name,
			Body: fmt.Sprintf("Hi %s, your booking %s for %d seat(s) on %s is confirmed. Total: %.2f.",
				user.FirstName, booking.Reference, booking.Seats, trip.Name, booking.TotalPrice),
			Template: ports.MailBookingConfirmation,
		})
	}

	metrics.BookingsCreatedTotal.Inc()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("trip_id", trip.ID).
		Int("seats", booking.Seats).
		Msg("booking created")
	return booking, nil
}

// List returns all bookings for admins and only the caller's own
// bookings for everyone else.
func (s *BookingService) List(ctx context.Context, role, userID string, q ports.ListQuery) (*ports.Page[domain.Booking], error) {
	if role == domain.RoleAdmin {
		return s.bookings.List(ctx, q)
	}
	return s.bookings.ListBy(ctx, "userId", userID, q)
}

func (s *BookingService) Get(ctx context.Context, role, userID, id string) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && booking.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// Cancel frees the booking's seats. Cancelling twice is an error, not a
// silent no-op, so clients can surface it.
func (s *BookingService) Cancel(ctx context.Context, role, userID, id string) (*domain.Booking, error) {
	booking, err := s.Get(ctx, role, userID, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingCancelled {
		return nil, domain.ErrBookingCancelled
	}

	if err := s.bookings.SetStatus(ctx, id, domain.BookingCancelled); err != nil {
		s.cache.InvalidateResource(ctx, bookingsResource)
		return nil, err
	}

	if err := s.trips.AdjustSeats(ctx, booking.TripID, -booking.Seats); err != nil {
		s.logger.Error().Err(err).Str("trip_id", booking.TripID).Msg("seat release on cancel failed")
	}

	s.cache.InvalidateResource(ctx, bookingsResource)
	s.cache.InvalidateResource(ctx, "trips")

	booking.Status = domain.BookingCancelled
	metrics.BookingsCancelledTotal.Inc()
	s.logger.Info().Str("booking_id", id).Msg("booking cancelled")
	return booking, nil
}
