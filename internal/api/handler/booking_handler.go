package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// BookingHandler exposes the /bookings endpoints. Every route requires
// a session; the ownership rules live in the service.
type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	TripID string `json:"tripId" validate:"required"`
	Seats  int    `json:"seats" validate:"required,gt=0"`
}

// Create reserves seats on a trip for the authenticated user.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body      createBookingRequest  true  "Trip and seat count"
// @Success      201   {object}  dataEnvelope[domain.Booking]
// @Failure      422   {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookings.Create(c.Request().Context(), ports.CreateBookingInput{
		UserID: user.EntityID(),
		TripID: req.TripID,
		Seats:  req.Seats,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataEnvelope[*domain.Booking]{Data: booking})
}

// List returns the caller's bookings, or every booking for admins.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listEnvelope[domain.Booking]
// @Failure      401    {object}  map[string]string
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	q, err := bindListQuery(c)
	if err != nil {
		return err
	}

	page, err := h.bookings.List(c.Request().Context(), user.Role, user.EntityID(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListEnvelope(page))
}

// Get returns one booking. Users only see their own.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  dataEnvelope[domain.Booking]
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Get(c.Request().Context(), user.Role, user.EntityID(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*domain.Booking]{Data: booking})
}

// Cancel marks a booking cancelled and releases its seats.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  dataEnvelope[domain.Booking]
// @Failure      409  {object}  map[string]string
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Cancel(c.Request().Context(), user.Role, user.EntityID(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*domain.Booking]{Data: booking})
}
