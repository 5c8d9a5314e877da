package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/arcn-hotels/service-booking/internal/application"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/api/v1/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/reject", h.RejectBooking)
		bookings.GET("/user/:userId", h.GetBookingsByUserID)
		bookings.GET("/user/email/:userEmail", h.GetBookingsByUserEmail)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	bookingID, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, gin.H{"booking_id": bookingID})
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	result, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	result, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// RejectBooking handles POST /api/v1/bookings/:id/reject.
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	result, err := h.service.RejectBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// GetBookingsByUserID handles GET /api/v1/bookings/user/:userId.
func (h *BookingHandler) GetBookingsByUserID(c *gin.Context) {
	result, err := h.service.GetBookingsByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// GetBookingsByUserEmail handles GET /api/v1/bookings/user/email/:userEmail.
func (h *BookingHandler) GetBookingsByUserEmail(c *gin.Context) {
	result, err := h.service.GetBookingsByUserEmail(c.Request.Context(), c.Param("userEmail"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}
