package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/waytrip/travel-booking-backend/internal/database"
	"github.com/waytrip/travel-booking-backend/internal/middleware"
	"github.com/waytrip/travel-booking-backend/internal/models"
	"github.com/waytrip/travel-booking-backend/internal/services"
)

// BookingHandler serves booking creation, listing and cancellation
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// GetBookingForm returns the booking form payload for a travel option.
// GET /book/:id
func (h *BookingHandler) GetBookingForm(c *gin.Context) {
	if _, exists := middleware.GetUserContext(c); !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	optionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Travel option not found"})
		return
	}

	option, err := h.bookingService.GetOption(optionID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Travel option not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to fetch travel option"})
		return
	}

	c.JSON(http.StatusOK, BookingFormResponse{
		Option:   option,
		MinSeats: 1,
		MaxSeats: option.AvailableSeats,
	})
}

// CreateBooking attempts to book seats on a travel option. Validation
// failures, including insufficient availability, answer 200 with the form
// payload and field errors so the form re-renders in place; nothing is
// persisted in that case.
// POST /book/:id
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	optionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Travel option not found"})
		return
	}

	option, err := h.bookingService.GetOption(optionID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Travel option not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to fetch travel option"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rerenderBookingForm(c, option, map[string]string{"seats": "Enter a valid seat count."})
		return
	}
	if err := req.Validate(); err != nil {
		h.rerenderBookingForm(c, option, map[string]string{"seats": err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(userCtx.UserID, optionID, req.Seats)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrInsufficientSeats):
			h.rerenderBookingForm(c, option, map[string]string{"seats": "Not enough seats available."})
		case errors.Is(err, services.ErrInvalidSeatCount):
			h.rerenderBookingForm(c, option, map[string]string{"seats": err.Error()})
		case errors.Is(err, database.ErrDuplicate):
			// Reference collided between the uniqueness check and the insert;
			// nothing was persisted, so the client can simply resubmit.
			h.rerenderBookingForm(c, option, map[string]string{"form": "Could not confirm your booking. Please try again."})
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Travel option not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed.",
		"booking": booking,
	})
}

// rerenderBookingForm re-reads the option so the form shows current
// availability, then answers 200 with the field errors
func (h *BookingHandler) rerenderBookingForm(c *gin.Context, option *models.TravelOption, fieldErrors map[string]string) {
	if fresh, err := h.bookingService.GetOption(option.ID); err == nil {
		option = fresh
	}
	c.JSON(http.StatusOK, BookingFormResponse{
		Option:   option,
		MinSeats: 1,
		MaxSeats: option.AvailableSeats,
		Errors:   fieldErrors,
	})
}

// MyBookings lists the authenticated user's bookings, newest first.
// GET /my-bookings
func (h *BookingHandler) MyBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	bookings, err := h.bookingService.ListUserBookings(userCtx.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking attempts to cancel a booking and redirects to the bookings
// list regardless of outcome. Cancelling an already cancelled booking is a
// no-op; a booking that does not exist or belongs to another user is
// indistinguishable from missing and is silently skipped.
// GET /cancel/:id
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if bookingID, err := uuid.Parse(c.Param("id")); err == nil {
		// The redirect target shows the resulting state either way.
		_, _ = h.bookingService.CancelBooking(userCtx.UserID, bookingID)
	}

	c.Redirect(http.StatusFound, "/my-bookings")
}
