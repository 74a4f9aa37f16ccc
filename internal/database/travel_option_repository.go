package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/waytrip/travel-booking-backend/internal/models"
)

// TravelOptionRepository handles database operations for the travel_options table.
// available_seats is never written here; only the booking repository adjusts it,
// inside its transactions.
type TravelOptionRepository struct {
	db DB
}

// NewTravelOptionRepository creates a new TravelOptionRepository
func NewTravelOptionRepository(db DB) *TravelOptionRepository {
	return &TravelOptionRepository{db: db}
}

// Create inserts a new travel option
func (r *TravelOptionRepository) Create(option *models.TravelOption) error {
	if err := option.Validate(); err != nil {
		return err
	}

	if option.ID == uuid.Nil {
		option.ID = uuid.New()
	}

	query := `
		INSERT INTO travel_options (
			id, travel_code, travel_type, source, destination,
			departure_time, price, available_seats
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		option.ID, option.TravelCode, option.TravelType, option.Source,
		option.Destination, option.DepartureTime, option.Price, option.AvailableSeats,
	).Scan(&option.CreatedAt, &option.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create travel option: %w", err)
	}

	return nil
}

// GetByID retrieves a travel option by ID
func (r *TravelOptionRepository) GetByID(id uuid.UUID) (*models.TravelOption, error) {
	var option models.TravelOption

	query := `
		SELECT id, travel_code, travel_type, source, destination,
		       departure_time, price, available_seats, created_at, updated_at
		FROM travel_options
		WHERE id = $1
	`

	err := r.db.Get(&option, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get travel option: %w", err)
	}

	return &option, nil
}

// GetByCode retrieves a travel option by its unique travel code
func (r *TravelOptionRepository) GetByCode(code string) (*models.TravelOption, error) {
	var option models.TravelOption

	query := `
		SELECT id, travel_code, travel_type, source, destination,
		       departure_time, price, available_seats, created_at, updated_at
		FROM travel_options
		WHERE travel_code = $1
	`

	err := r.db.Get(&option, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get travel option: %w", err)
	}

	return &option, nil
}

// likeEscaper neutralizes LIKE wildcards in user input so a search for "100%"
// matches the literal string instead of everything
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// List retrieves travel options matching the filter. All filters are optional
// and combined with AND; substring matches are case-insensitive.
func (r *TravelOptionRepository) List(filter models.CatalogFilter) ([]models.TravelOption, error) {
	var conditions []string
	var args []interface{}

	if filter.TravelType != "" {
		args = append(args, filter.TravelType)
		conditions = append(conditions, fmt.Sprintf("travel_type = $%d", len(args)))
	}
	if filter.Source != "" {
		args = append(args, "%"+escapeLikePattern(filter.Source)+"%")
		conditions = append(conditions, fmt.Sprintf("source ILIKE $%d", len(args)))
	}
	if filter.Destination != "" {
		args = append(args, "%"+escapeLikePattern(filter.Destination)+"%")
		conditions = append(conditions, fmt.Sprintf("destination ILIKE $%d", len(args)))
	}
	if filter.DepartureDate != nil {
		args = append(args, filter.DepartureDate.Format("2006-01-02"))
		conditions = append(conditions, fmt.Sprintf("departure_time::date = $%d", len(args)))
	}

	query := `
		SELECT id, travel_code, travel_type, source, destination,
		       departure_time, price, available_seats, created_at, updated_at
		FROM travel_options
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	options := []models.TravelOption{}
	err := r.db.Select(&options, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list travel options: %w", err)
	}

	return options, nil
}

// DeleteAll removes every travel option. Used by the sample data loader.
func (r *TravelOptionRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM travel_options`); err != nil {
		return fmt.Errorf("failed to delete travel options: %w", err)
	}
	return nil
}
