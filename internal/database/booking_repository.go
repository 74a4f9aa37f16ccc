package database

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/waytrip/travel-booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table and is
// the only writer of travel_options.available_seats. Seat accounting and the
// booking row always change inside one transaction.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// GenerateBookingReference generates a unique booking reference.
// Format: TB-YYYYMMDD-XXXXXX (6 char hex). Example: TB-20260828-A1B2C3
func (r *BookingRepository) GenerateBookingReference() (string, error) {
	todayStr := time.Now().Format("20060102")

	for attempts := 0; attempts < 10; attempts++ {
		randomBytes := make([]byte, 3)
		if _, err := rand.Read(randomBytes); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		randomStr := strings.ToUpper(hex.EncodeToString(randomBytes))

		newRef := fmt.Sprintf("TB-%s-%s", todayStr, randomStr)

		var count int
		err := r.db.Get(&count, `SELECT COUNT(*) FROM bookings WHERE booking_reference = $1`, newRef)
		if err != nil {
			return "", fmt.Errorf("failed to check reference uniqueness: %w", err)
		}

		if count == 0 {
			return newRef, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique booking reference after 10 attempts")
}

// Create persists a confirmed booking and decrements the travel option's
// available seats in a single transaction. The decrement is conditional
// ("available_seats >= seats"); zero rows affected means another booking got
// there first and the whole unit aborts with ErrInsufficientSeats.
func (r *BookingRepository) Create(booking *models.Booking) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE travel_options
		SET available_seats = available_seats - $2, updated_at = NOW()
		WHERE id = $1
		  AND available_seats >= $2
	`, booking.TravelOptionID, booking.Seats)
	if err != nil {
		return fmt.Errorf("failed to reserve seats: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrInsufficientSeats
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.Status = models.BookingStatusConfirmed

	err = tx.QueryRowx(`
		INSERT INTO bookings (
			id, booking_reference, user_id, travel_option_id,
			seats, total_price, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING booked_at, updated_at
	`,
		booking.ID, booking.BookingReference, booking.UserID, booking.TravelOptionID,
		booking.Seats, booking.TotalPrice, booking.Status,
	).Scan(&booking.BookedAt, &booking.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	return nil
}

// Cancel marks a booking cancelled and restores its seats to the travel
// option, atomically. The lookup is scoped by owner, so a booking that exists
// but belongs to someone else reads as ErrNotFound. Cancelling an already
// cancelled booking is a no-op: the booking is returned unchanged and seats
// are not restored again.
func (r *BookingRepository) Cancel(bookingID, userID uuid.UUID) (*models.Booking, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var booking models.Booking
	err = tx.Get(&booking, `
		SELECT id, booking_reference, user_id, travel_option_id,
		       seats, total_price, status, booked_at, cancelled_at, updated_at
		FROM bookings
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, bookingID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.IsCancelled() {
		return &booking, nil
	}

	var cancelledAt time.Time
	err = tx.QueryRowx(`
		UPDATE bookings
		SET status = $2, cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING cancelled_at, updated_at
	`, booking.ID, models.BookingStatusCancelled).Scan(&cancelledAt, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE travel_options
		SET available_seats = available_seats + $2, updated_at = NOW()
		WHERE id = $1
	`, booking.TravelOptionID, booking.Seats)
	if err != nil {
		return nil, fmt.Errorf("failed to restore seats: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &cancelledAt

	return &booking, nil
}

// GetByIDForUser retrieves a booking by ID, scoped to its owner
func (r *BookingRepository) GetByIDForUser(bookingID, userID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking

	err := r.db.Get(&booking, `
		SELECT id, booking_reference, user_id, travel_option_id,
		       seats, total_price, status, booked_at, cancelled_at, updated_at
		FROM bookings
		WHERE id = $1 AND user_id = $2
	`, bookingID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// ListByUser retrieves all bookings for a user joined with their travel
// options, most recent first
func (r *BookingRepository) ListByUser(userID uuid.UUID) ([]models.BookingWithOption, error) {
	bookings := []models.BookingWithOption{}

	err := r.db.Select(&bookings, `
		SELECT b.id, b.booking_reference, b.user_id, b.travel_option_id,
		       b.seats, b.total_price, b.status, b.booked_at, b.cancelled_at, b.updated_at,
		       o.travel_code, o.travel_type, o.source, o.destination, o.departure_time
		FROM bookings b
		JOIN travel_options o ON o.id = b.travel_option_id
		WHERE b.user_id = $1
		ORDER BY b.booked_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

// SumConfirmedSeats returns the total confirmed seats booked on a travel option
func (r *BookingRepository) SumConfirmedSeats(travelOptionID uuid.UUID) (int, error) {
	var total int

	err := r.db.Get(&total, `
		SELECT COALESCE(SUM(seats), 0)
		FROM bookings
		WHERE travel_option_id = $1
		  AND status = $2
	`, travelOptionID, models.BookingStatusConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to sum booked seats: %w", err)
	}

	return total, nil
}
