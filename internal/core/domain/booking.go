package domain

// Booking lifecycle states.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking reserves seats on a trip for a user. Reference is the
// customer-facing identifier printed on confirmation mail.
type Booking struct {
	Meta       `bson:",inline"`
	Reference  string  `json:"reference" bson:"reference"`
	UserID     string  `json:"userId" bson:"userId"`
	TripID     string  `json:"tripId" bson:"tripId"`
	Seats      int     `json:"seats" bson:"seats"`
	TotalPrice float64 `json:"totalPrice" bson:"totalPrice"`
	Status     string  `json:"status" bson:"status"`
}
