package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waytrip/travel-booking-backend/internal/database"
	"github.com/waytrip/travel-booking-backend/internal/models"
	"github.com/waytrip/travel-booking-backend/internal/services"
	"github.com/waytrip/travel-booking-backend/pkg/jwt"
)

// AuthHandler serves signup, login and token refresh
type AuthHandler struct {
	registrationService *services.RegistrationService
	jwtService          *jwt.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(registrationService *services.RegistrationService, jwtService *jwt.Service) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		jwtService:          jwtService,
	}
}

// GetSignupForm returns the empty signup form payload.
// GET /signup
func (h *AuthHandler) GetSignupForm(c *gin.Context) {
	c.JSON(http.StatusOK, SignupFormResponse{
		Fields: []string{"username", "password", "password_confirm"},
	})
}

// Signup registers a new account and creates its empty profile. Validation
// failures answer 200 with field errors so the form re-renders in place.
// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rerenderSignupForm(c, map[string]string{"form": "Enter a username and password."})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		h.rerenderSignupForm(c, errs)
		return
	}

	user, err := h.registrationService.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			h.rerenderSignupForm(c, map[string]string{"username": "A user with that username already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to create account"})
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to issue tokens"})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// Login authenticates a user and issues a token pair.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Username and password are required"})
		return
	}

	user, err := h.registrationService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid_credentials", Message: "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to authenticate"})
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to issue tokens"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// Refresh exchanges a valid refresh token for a new access/refresh pair.
// The account is re-read so tokens are never issued for a deleted user.
// POST /refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "refresh_token is required"})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid_token", Message: "Invalid or expired refresh token"})
		return
	}

	user, err := h.registrationService.GetUser(claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "user_not_found", Message: "User no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to fetch user"})
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to issue tokens"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

func (h *AuthHandler) issueTokens(user *models.User) (string, string, error) {
	accessToken, err := h.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (h *AuthHandler) rerenderSignupForm(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusOK, SignupFormResponse{
		Fields: []string{"username", "password", "password_confirm"},
		Errors: fieldErrors,
	})
}
