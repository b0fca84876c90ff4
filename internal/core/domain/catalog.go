package domain

import "time"

// Transportation types.
const (
	TransportFlight = "flight"
	TransportBus    = "bus"
	TransportTrain  = "train"
	TransportCar    = "car"
)

// Trip lifecycle states.
const (
	TripScheduled = "scheduled"
	TripOngoing   = "ongoing"
	TripCompleted = "completed"
	TripCancelled = "cancelled"
)

// Destination is a bookable place: country + city with marketing copy.
type Destination struct {
	Meta        `bson:",inline"`
	Name        string `json:"name" bson:"name" validate:"required"`
	Country     string `json:"country" bson:"country" validate:"required"`
	City        string `json:"city" bson:"city" validate:"required"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// Hotel belongs to a destination.
type Hotel struct {
	Meta          `bson:",inline"`
	Name          string  `json:"name" bson:"name" validate:"required"`
	DestinationID string  `json:"destinationId" bson:"destinationId" validate:"required"`
	Address       string  `json:"address" bson:"address" validate:"required"`
	Stars         int     `json:"stars" bson:"stars" validate:"min=1,max=5"`
	PricePerNight float64 `json:"pricePerNight" bson:"pricePerNight" validate:"gte=0"`
	Description   string  `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// Transportation is a leg offered by a carrier between two cities.
type Transportation struct {
	Meta          `bson:",inline"`
	Type          string  `json:"type" bson:"type" validate:"required,oneof=flight bus train car"`
	Company       string  `json:"company" bson:"company" validate:"required"`
	DepartureCity string  `json:"departureCity" bson:"departureCity" validate:"required"`
	ArrivalCity   string  `json:"arrivalCity" bson:"arrivalCity" validate:"required"`
	Price         float64 `json:"price" bson:"price" validate:"gte=0"`
}

// Package bundles a destination, hotel and transportation at one price.
type Package struct {
	Meta             `bson:",inline"`
	Name             string  `json:"name" bson:"name" validate:"required"`
	Description      string  `json:"description,omitempty" bson:"description,omitempty"`
	DestinationID    string  `json:"destinationId" bson:"destinationId" validate:"required"`
	HotelID          string  `json:"hotelId" bson:"hotelId" validate:"required"`
	TransportationID string  `json:"transportationId" bson:"transportationId" validate:"required"`
	Price            float64 `json:"price" bson:"price" validate:"gte=0"`
	DurationDays     int     `json:"durationDays" bson:"durationDays" validate:"gt=0"`
	ImageURL         string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// Trip is a dated departure of a package with finite capacity.
type Trip struct {
	Meta        `bson:",inline"`
	Name        string    `json:"name" bson:"name" validate:"required"`
	PackageID   string    `json:"packageId" bson:"packageId" validate:"required"`
	StartDate   time.Time `json:"startDate" bson:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" bson:"endDate" validate:"required"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"gt=0"`
	SeatsBooked int       `json:"seatsBooked" bson:"seatsBooked" validate:"gte=0"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Status      string    `json:"status" bson:"status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// ApplyDefaults makes a freshly created trip bookable: a trip stored
// without an explicit status would otherwise never pass the scheduled
// check at booking time.
func (t *Trip) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TripScheduled
	}
}

// SeatsLeft returns the remaining bookable capacity.
func (t *Trip) SeatsLeft() int {
	left := t.Capacity - t.SeatsBooked
	if left < 0 {
		return 0
	}
	return left
}

// FAQEntry is a question/answer pair served by the FAQ matcher.
type FAQEntry struct {
	Meta     `bson:",inline"`
	Question string   `json:"question" bson:"question" validate:"required"`
	Answer   string   `json:"answer" bson:"answer" validate:"required"`
	Keywords []string `json:"keywords,omitempty" bson:"keywords,omitempty"`
}
