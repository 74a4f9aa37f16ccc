package handlers

import "github.com/waytrip/travel-booking-backend/internal/models"

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BookingFormResponse carries what the booking form renders: the travel option
// and the advertised seat bounds. Errors is populated when the form is
// re-rendered after a failed submission. The advertised max is a hint only;
// availability can change between render and submit, and the transactional
// check in the booking service is authoritative.
type BookingFormResponse struct {
	Option   *models.TravelOption `json:"option"`
	MinSeats int                  `json:"min_seats"`
	MaxSeats int                  `json:"max_seats"`
	Errors   map[string]string    `json:"errors,omitempty"`
}

// SignupFormResponse carries the signup form fields and any field errors
type SignupFormResponse struct {
	Fields []string          `json:"fields"`
	Errors map[string]string `json:"errors,omitempty"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// ProfileResponse combines the user's account fields with their profile
type ProfileResponse struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}
