package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/waytrip/travel-booking-backend/internal/database"
	"github.com/waytrip/travel-booking-backend/internal/models"
)

// ErrInvalidSeatCount is returned when a booking requests fewer than one seat
var ErrInvalidSeatCount = errors.New("seats must be at least 1")

// BookingService is the inventory/booking core. It is the only code path that
// changes available_seats: reservations and cancellations go through the
// booking repository's transactions, which keep the seat counter and the
// booking ledger consistent under concurrent requests.
type BookingService struct {
	bookingRepo *database.BookingRepository
	optionRepo  *database.TravelOptionRepository
	logger      *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo *database.BookingRepository,
	optionRepo *database.TravelOptionRepository,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		optionRepo:  optionRepo,
		logger:      logger,
	}
}

// CreateBooking reserves seats on a travel option for a user. The total price
// is seats × the option's unit price at booking time, computed with decimal
// arithmetic, and never changes afterwards. Returns
// database.ErrInsufficientSeats when the request exceeds availability; in that
// case nothing is persisted.
func (s *BookingService) CreateBooking(userID, travelOptionID uuid.UUID, seats int) (*models.Booking, error) {
	if seats < 1 {
		return nil, ErrInvalidSeatCount
	}

	option, err := s.optionRepo.GetByID(travelOptionID)
	if err != nil {
		return nil, err
	}

	// Cheap pre-check; the authoritative check is the conditional decrement
	// inside the repository transaction.
	if seats > option.AvailableSeats {
		return nil, database.ErrInsufficientSeats
	}

	reference, err := s.bookingRepo.GenerateBookingReference()
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		BookingReference: reference,
		UserID:           userID,
		TravelOptionID:   option.ID,
		Seats:            seats,
		TotalPrice:       option.Price.Mul(decimal.NewFromInt(int64(seats))),
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":        booking.ID,
		"booking_reference": booking.BookingReference,
		"user_id":           userID,
		"travel_option_id":  option.ID,
		"seats":             seats,
		"total_price":       booking.TotalPrice.String(),
	}).Info("Booking confirmed")

	return booking, nil
}

// CancelBooking cancels a booking owned by the user and restores its seats.
// Already-cancelled bookings are returned unchanged; seats are only restored
// on the confirmed to cancelled transition. Bookings owned by someone else
// read as database.ErrNotFound.
func (s *BookingService) CancelBooking(userID, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.Cancel(bookingID, userID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":        booking.ID,
		"booking_reference": booking.BookingReference,
		"user_id":           userID,
		"seats":             booking.Seats,
	}).Info("Booking cancelled")

	return booking, nil
}

// GetOption retrieves a single travel option
func (s *BookingService) GetOption(travelOptionID uuid.UUID) (*models.TravelOption, error) {
	return s.optionRepo.GetByID(travelOptionID)
}

// ListCatalog retrieves travel options matching the filter
func (s *BookingService) ListCatalog(filter models.CatalogFilter) ([]models.TravelOption, error) {
	return s.optionRepo.List(filter)
}

// ListUserBookings retrieves the user's bookings, most recent first
func (s *BookingService) ListUserBookings(userID uuid.UUID) ([]models.BookingWithOption, error) {
	return s.bookingRepo.ListByUser(userID)
}
