package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waytrip/travel-booking-backend/internal/database"
	"github.com/waytrip/travel-booking-backend/internal/services"
)

// setupTestDB creates a mock database for testing
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupCatalogRouter(db *sqlx.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	bookingRepo := database.NewBookingRepository(db)
	optionRepo := database.NewTravelOptionRepository(&database.PostgresDB{DB: db})
	bookingService := services.NewBookingService(bookingRepo, optionRepo, testLogger())
	handler := NewCatalogHandler(bookingService)

	router := gin.New()
	router.GET("/", handler.ListOptions)
	return router
}

var optionColumns = []string{
	"id", "travel_code", "travel_type", "source", "destination",
	"departure_time", "price", "available_seats", "created_at", "updated_at",
}

func addOptionRow(rows *sqlmock.Rows, code string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		uuid.New(), code, "flight", "New York", "Chicago",
		now.Add(72*time.Hour), "250.00", 60, now, now,
	)
}

func TestListOptions(t *testing.T) {
	t.Run("No Filters", func(t *testing.T) {
		db, mock := setupTestDB(t)
		router := setupCatalogRouter(db)

		mock.ExpectQuery(`SELECT (.+) FROM travel_options`).
			WillReturnRows(addOptionRow(sqlmock.NewRows(optionColumns), "FL001"))

		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Options []json.RawMessage `json:"options"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Options, 1)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("With Filters", func(t *testing.T) {
		db, mock := setupTestDB(t)
		router := setupCatalogRouter(db)

		mock.ExpectQuery(`SELECT (.+) FROM travel_options WHERE travel_type = \$1 AND source ILIKE \$2`).
			WithArgs("flight", "%york%").
			WillReturnRows(addOptionRow(sqlmock.NewRows(optionColumns), "FL001"))

		req := httptest.NewRequest("GET", "/?type=flight&source=york", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "FL001")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Date Filter", func(t *testing.T) {
		db, mock := setupTestDB(t)
		router := setupCatalogRouter(db)

		mock.ExpectQuery(`SELECT (.+) FROM travel_options WHERE departure_time::date = \$1`).
			WithArgs("2026-09-15").
			WillReturnRows(sqlmock.NewRows(optionColumns))

		req := httptest.NewRequest("GET", "/?date=2026-09-15", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid Date", func(t *testing.T) {
		db, _ := setupTestDB(t)
		router := setupCatalogRouter(db)

		req := httptest.NewRequest("GET", "/?date=15-09-2026", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_request")
	})

	t.Run("Invalid Type", func(t *testing.T) {
		db, _ := setupTestDB(t)
		router := setupCatalogRouter(db)

		req := httptest.NewRequest("GET", "/?type=boat", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_request")
	})
}
