package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NullString wraps sql.NullString to provide proper JSON marshaling
type NullString struct {
	sql.NullString
}

// MarshalJSON implements json.Marshaler
func (ns NullString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.String)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (ns *NullString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != nil {
		ns.Valid = true
		ns.String = *s
	} else {
		ns.Valid = false
	}
	return nil
}

// NullTime wraps sql.NullTime to provide proper JSON marshaling
type NullTime struct {
	sql.NullTime
}

// MarshalJSON implements json.Marshaler
func (nt NullTime) MarshalJSON() ([]byte, error) {
	if nt.Valid {
		return json.Marshal(nt.Time)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (nt *NullTime) UnmarshalJSON(data []byte) error {
	var t *time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	if t != nil {
		nt.Valid = true
		nt.Time = *t
	} else {
		nt.Valid = false
	}
	return nil
}

// User represents a user account
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never expose in JSON
	Email        NullString `json:"email,omitempty" db:"email"`
	FirstName    NullString `json:"first_name,omitempty" db:"first_name"`
	LastName     NullString `json:"last_name,omitempty" db:"last_name"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Profile holds auxiliary user data, exactly one row per user.
// It is created together with the account and has no independent lifecycle.
type Profile struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	FullName  NullString `json:"full_name,omitempty" db:"full_name"`
	Phone     NullString `json:"phone,omitempty" db:"phone"`
	City      NullString `json:"city,omitempty" db:"city"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// SignupRequest represents the request to create a user account
type SignupRequest struct {
	Username        string `json:"username" form:"username" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" binding:"required"`
}

// Validate validates the signup request and returns field-keyed errors
func (r *SignupRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if len(r.Username) < 3 {
		errs["username"] = "username must be at least 3 characters"
	}
	if len(r.Password) < 8 {
		errs["password"] = "password must be at least 8 characters"
	}
	if r.Password != r.PasswordConfirm {
		errs["password_confirm"] = "passwords do not match"
	}
	return errs
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RefreshTokenRequest represents the request to exchange a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
}

// UpdateProfileRequest updates the user's account fields and profile fields together
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email" binding:"omitempty,email"`
	FullName  string `json:"full_name" form:"full_name"`
	Phone     string `json:"phone" form:"phone"`
	City      string `json:"city" form:"city"`
}
