package database

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waytrip/travel-booking-backend/internal/models"
)

func setupBookingRepo(t *testing.T) (*BookingRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewBookingRepository(sqlxDB), mock
}

func TestGenerateBookingReference(t *testing.T) {
	repo, mock := setupBookingRepo(t)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ref, err := repo.GenerateBookingReference()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "TB-"))
		assert.Len(t, ref, len("TB-20060102-")+6)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Retries On Collision", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ref, err := repo.GenerateBookingReference()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "TB-"))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateBooking(t *testing.T) {
	repo, mock := setupBookingRepo(t)

	optionID := uuid.New()
	userID := uuid.New()

	newBooking := func(seats int) *models.Booking {
		return &models.Booking{
			BookingReference: "TB-20260828-A1B2C3",
			UserID:           userID,
			TravelOptionID:   optionID,
			Seats:            seats,
			TotalPrice:       decimal.RequireFromString("450.00"),
		}
	}

	t.Run("Success", func(t *testing.T) {
		booking := newBooking(3)
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE travel_options`).
			WithArgs(optionID, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"booked_at", "updated_at"}).AddRow(now, now))
		mock.ExpectCommit()

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, booking.ID)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, now, booking.BookedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient Seats", func(t *testing.T) {
		booking := newBooking(10)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE travel_options`).
			WithArgs(optionID, 10).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Create(booking)
		assert.ErrorIs(t, err, ErrInsufficientSeats)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert Failure Rolls Back Decrement", func(t *testing.T) {
		booking := newBooking(2)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE travel_options`).
			WithArgs(optionID, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		err := repo.Create(booking)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert booking")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancelBooking(t *testing.T) {
	repo, mock := setupBookingRepo(t)

	bookingID := uuid.New()
	userID := uuid.New()
	optionID := uuid.New()

	bookingColumns := []string{
		"id", "booking_reference", "user_id", "travel_option_id",
		"seats", "total_price", "status", "booked_at", "cancelled_at", "updated_at",
	}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(bookingID, userID).
			WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(
				bookingID, "TB-20260828-A1B2C3", userID, optionID,
				3, "450.00", "confirmed", now, nil, now,
			))
		mock.ExpectQuery(`UPDATE bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"cancelled_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(`UPDATE travel_options`).
			WithArgs(optionID, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		booking, err := repo.Cancel(bookingID, userID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, booking.Status)
		require.NotNil(t, booking.CancelledAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Cancelled Is No-Op", func(t *testing.T) {
		now := time.Now()
		cancelledAt := now.Add(-time.Hour)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(bookingID, userID).
			WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(
				bookingID, "TB-20260828-A1B2C3", userID, optionID,
				3, "450.00", "cancelled", now, cancelledAt, now,
			))
		mock.ExpectRollback()

		booking, err := repo.Cancel(bookingID, userID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, booking.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(bookingID, userID).
			WillReturnRows(sqlmock.NewRows(bookingColumns))
		mock.ExpectRollback()

		booking, err := repo.Cancel(bookingID, userID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, booking)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListByUser(t *testing.T) {
	repo, mock := setupBookingRepo(t)

	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_reference", "user_id", "travel_option_id",
			"seats", "total_price", "status", "booked_at", "cancelled_at", "updated_at",
			"travel_code", "travel_type", "source", "destination", "departure_time",
		}).AddRow(
			uuid.New(), "TB-20260828-A1B2C3", userID, uuid.New(),
			2, "160.00", "confirmed", now, nil, now,
			"TR005", "train", "Boston", "Chicago", now.Add(48*time.Hour),
		))

	bookings, err := repo.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "TR005", bookings[0].TravelCode)
	assert.Equal(t, models.TravelTypeTrain, bookings[0].TravelType)
	assert.Equal(t, 2, bookings[0].Seats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumConfirmedSeats(t *testing.T) {
	repo, mock := setupBookingRepo(t)

	optionID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(seats\), 0\)\s+FROM bookings`).
		WithArgs(optionID, models.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5))

	total, err := repo.SumConfirmedSeats(optionID)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}
