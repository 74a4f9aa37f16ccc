package services

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/waytrip/travel-booking-backend/internal/database"
)

func setupRegistrationService(t *testing.T) (*RegistrationService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pgDB := &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}
	userRepo := database.NewUserRepository(pgDB)
	profileRepo := database.NewProfileRepository(pgDB)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// MinCost keeps hashing fast in tests
	return NewRegistrationService(userRepo, profileRepo, bcrypt.MinCost, logger), mock
}

func TestRegister(t *testing.T) {
	t.Run("Success Creates User And Profile", func(t *testing.T) {
		svc, mock := setupRegistrationService(t)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO profiles`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user, err := svc.Register("traveler", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, "traveler", user.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-password")))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		svc, mock := setupRegistrationService(t)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		user, err := svc.Register("traveler", "secret-password")
		assert.ErrorIs(t, err, database.ErrDuplicate)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Profile Creation Failure Propagates", func(t *testing.T) {
		svc, mock := setupRegistrationService(t)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO profiles`).
			WillReturnError(assert.AnError)

		user, err := svc.Register("traveler", "secret-password")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "profile")
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuthenticate(t *testing.T) {
	userColumns := []string{
		"id", "username", "password_hash", "email", "first_name", "last_name",
		"created_at", "updated_at",
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		svc, mock := setupRegistrationService(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("traveler").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				uuid.New(), "traveler", string(hash),
				nil, nil, nil, now, now,
			))

		user, err := svc.Authenticate("traveler", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, "traveler", user.Username)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, mock := setupRegistrationService(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("traveler").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				uuid.New(), "traveler", string(hash),
				nil, nil, nil, now, now,
			))

		user, err := svc.Authenticate("traveler", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Username", func(t *testing.T) {
		svc, mock := setupRegistrationService(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := svc.Authenticate("ghost", "secret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
