package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/waytrip/travel-booking-backend/internal/database"
	"github.com/waytrip/travel-booking-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when username/password authentication fails
var ErrInvalidCredentials = errors.New("invalid username or password")

// RegistrationService creates user accounts. Profile creation happens here,
// synchronously, as part of registration: every account gets its empty profile
// row before Register returns.
type RegistrationService struct {
	userRepo    *database.UserRepository
	profileRepo *database.ProfileRepository
	bcryptCost  int
	logger      *logrus.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	userRepo *database.UserRepository,
	profileRepo *database.ProfileRepository,
	bcryptCost int,
	logger *logrus.Logger,
) *RegistrationService {
	return &RegistrationService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Register creates a new user account with a bcrypt password hash and an empty
// profile. Returns database.ErrDuplicate if the username is taken.
func (s *RegistrationService) Register(username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(username, string(hash))
	if err != nil {
		return nil, err
	}

	if _, err := s.profileRepo.Create(user.ID); err != nil {
		return nil, fmt.Errorf("failed to create profile for new user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, nil
}

// GetUser retrieves a user by ID. Used by the token refresh flow to confirm
// the account still exists before issuing a new pair.
func (s *RegistrationService) GetUser(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}

// Authenticate verifies a username/password pair and returns the user.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *RegistrationService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
