package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/waytrip/travel-booking-backend/internal/models"
)

// ProfileRepository handles database operations for the profiles table
type ProfileRepository struct {
	db DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts an empty profile for a user. Called synchronously from the
// registration path; every user has exactly one profile.
func (r *ProfileRepository) Create(userID uuid.UUID) (*models.Profile, error) {
	profile := &models.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO profiles (
			id, user_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(query, profile.ID, profile.UserID, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// GetByUserID retrieves the profile for a user
func (r *ProfileRepository) GetByUserID(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile

	query := `
		SELECT id, user_id, full_name, phone, city, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	err := r.db.Get(&profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// Update updates the profile's free-text fields
func (r *ProfileRepository) Update(userID uuid.UUID, fullName, phone, city string) error {
	query := `
		UPDATE profiles
		SET full_name = $1,
		    phone = $2,
		    city = $3,
		    updated_at = $4
		WHERE user_id = $5
	`

	result, err := r.db.Exec(query, fullName, phone, city, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
