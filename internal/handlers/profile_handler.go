package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waytrip/travel-booking-backend/internal/database"
	"github.com/waytrip/travel-booking-backend/internal/middleware"
	"github.com/waytrip/travel-booking-backend/internal/models"
	"github.com/waytrip/travel-booking-backend/internal/services"
)

// ProfileHandler serves the combined account/profile view
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns the authenticated user's account and profile fields.
// GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	user, profile, err := h.profileService.GetProfile(userCtx.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: user, Profile: profile})
}

// UpdateProfile updates the account fields and profile fields together and
// returns the updated view.
// POST /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid profile fields"})
		return
	}

	user, profile, err := h.profileService.UpdateProfile(userCtx.UserID, &req)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: user, Profile: profile})
}
