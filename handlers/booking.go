package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorly/middleware"
	"mentorly/services/booking"
	"mentorly/utils"
)

// CreateBooking reserves a slot for the authenticated learner.
func CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	req.LearnerID = middleware.GetUserID(c)

	result, err := BookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, result)
}

// CompletePayment confirms a payment-deferred booking.
func CompletePayment(c *gin.Context) {
	var req struct {
		PaymentRef string `json:"paymentRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := BookingService.CompletePayment(c.Request.Context(), c.Param("id"), req.PaymentRef)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, result)
}

// UpdateBookingStatus moves a booking along its lifecycle.
func UpdateBookingStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := BookingService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, result)
}

// GetBooking returns a single booking to one of its parties.
func GetBooking(c *gin.Context) {
	b, err := BookingService.GetBooking(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, b)
}

// ListBookings returns the authenticated user's bookings, either side of the
// table.
func ListBookings(c *gin.Context) {
	bookings, err := BookingService.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, bookings)
}
