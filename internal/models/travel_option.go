package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TravelType represents the mode of a travel option
type TravelType string

const (
	TravelTypeFlight TravelType = "flight"
	TravelTypeTrain  TravelType = "train"
	TravelTypeBus    TravelType = "bus"
)

// IsValid reports whether the travel type is one of the known modes
func (t TravelType) IsValid() bool {
	switch t {
	case TravelTypeFlight, TravelTypeTrain, TravelTypeBus:
		return true
	}
	return false
}

// TravelOption represents a single bookable departure with fixed capacity and price.
// available_seats is mutated only by the booking service.
type TravelOption struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	TravelCode     string          `json:"travel_code" db:"travel_code"`
	TravelType     TravelType      `json:"travel_type" db:"travel_type"`
	Source         string          `json:"source" db:"source"`
	Destination    string          `json:"destination" db:"destination"`
	DepartureTime  time.Time       `json:"departure_time" db:"departure_time"`
	Price          decimal.Decimal `json:"price" db:"price"`
	AvailableSeats int             `json:"available_seats" db:"available_seats"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Validate validates travel option fields
func (o *TravelOption) Validate() error {
	if o.TravelCode == "" {
		return errors.New("travel_code is required")
	}
	if !o.TravelType.IsValid() {
		return errors.New("travel_type must be flight, train or bus")
	}
	if o.Source == "" || o.Destination == "" {
		return errors.New("source and destination are required")
	}
	if o.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if o.AvailableSeats < 0 {
		return errors.New("available_seats must not be negative")
	}
	return nil
}

// CatalogFilter holds the optional, conjunctive catalog filters.
// Zero values mean "not filtered".
type CatalogFilter struct {
	TravelType    string     // exact match
	Source        string     // case-insensitive contains
	Destination   string     // case-insensitive contains
	DepartureDate *time.Time // calendar date match
}
