package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/waytrip/travel-booking-backend/internal/models"
	"github.com/waytrip/travel-booking-backend/internal/services"
)

// CatalogHandler serves the public travel option catalog
type CatalogHandler struct {
	bookingService *services.BookingService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(bookingService *services.BookingService) *CatalogHandler {
	return &CatalogHandler{bookingService: bookingService}
}

// ListOptions lists travel options with optional filters.
// GET /?type=flight&source=New&destination=Los&date=2026-09-01
func (h *CatalogHandler) ListOptions(c *gin.Context) {
	filter := models.CatalogFilter{
		TravelType:  c.Query("type"),
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "date must be in YYYY-MM-DD format",
			})
			return
		}
		filter.DepartureDate = &date
	}

	if filter.TravelType != "" && !models.TravelType(filter.TravelType).IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "type must be flight, train or bus",
		})
		return
	}

	options, err := h.bookingService.ListCatalog(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Failed to list travel options"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}
