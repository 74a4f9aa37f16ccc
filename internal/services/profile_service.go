package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/waytrip/travel-booking-backend/internal/database"
	"github.com/waytrip/travel-booking-backend/internal/models"
)

// ProfileService reads and updates the combined account/profile view
type ProfileService struct {
	userRepo    *database.UserRepository
	profileRepo *database.ProfileRepository
	logger      *logrus.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userRepo *database.UserRepository,
	profileRepo *database.ProfileRepository,
	logger *logrus.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// GetProfile returns the user's account fields together with their profile
func (s *ProfileService) GetProfile(userID uuid.UUID) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, nil, err
	}

	return user, profile, nil
}

// UpdateProfile writes the account fields and profile fields in one call and
// returns the updated view
func (s *ProfileService) UpdateProfile(userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, *models.Profile, error) {
	if err := s.userRepo.UpdateUser(userID, req.FirstName, req.LastName, req.Email); err != nil {
		return nil, nil, err
	}

	if err := s.profileRepo.Update(userID, req.FullName, req.Phone, req.City); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
	}).Info("Profile updated")

	return s.GetProfile(userID)
}
