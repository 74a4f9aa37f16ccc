package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a user's reservation of seats on a travel option.
// TotalPrice is fixed at creation and never recomputed.
type Booking struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	BookingReference string          `json:"booking_reference" db:"booking_reference"`
	UserID           uuid.UUID       `json:"user_id" db:"user_id"`
	TravelOptionID   uuid.UUID       `json:"travel_option_id" db:"travel_option_id"`
	Seats            int             `json:"seats" db:"seats"`
	TotalPrice       decimal.Decimal `json:"total_price" db:"total_price"`
	Status           BookingStatus   `json:"status" db:"status"`
	BookedAt         time.Time       `json:"booked_at" db:"booked_at"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty" db:"cancelled_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// IsCancelled reports whether the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// BookingWithOption is a booking joined with its travel option, for listings
type BookingWithOption struct {
	Booking
	TravelCode    string     `json:"travel_code" db:"travel_code"`
	TravelType    TravelType `json:"travel_type" db:"travel_type"`
	Source        string     `json:"source" db:"source"`
	Destination   string     `json:"destination" db:"destination"`
	DepartureTime time.Time  `json:"departure_time" db:"departure_time"`
}

// CreateBookingRequest represents the request to book seats on a travel option
type CreateBookingRequest struct {
	Seats int `json:"seats" form:"seats" binding:"required"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if r.Seats < 1 {
		return errors.New("seats must be at least 1")
	}
	return nil
}
