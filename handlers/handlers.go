package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorly/models"
	"mentorly/services/availability"
	"mentorly/services/booking"
	"mentorly/utils"
)

// Package-level services, wired in main before the router starts.
var (
	BookingService      booking.BookingService
	AvailabilityService availability.Service
)

// respondError translates a domain error into the HTTP envelope. Anything
// that is not an AppError is an internal failure and stays opaque.
func respondError(c *gin.Context, err error) {
	appErr, ok := models.AsAppError(err)
	if !ok {
		utils.GetLogger().Error("internal error: " + err.Error())
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred.")
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case models.ErrCodeValidation, models.ErrCodeInvalidDuration, models.ErrCodeUnsupportedPlatform:
		status = http.StatusBadRequest
	case models.ErrCodeNotFound:
		status = http.StatusNotFound
	case models.ErrCodeUnauthorized:
		status = http.StatusForbidden
	case models.ErrCodeNoAvailability, models.ErrCodeSlotUnavailable, models.ErrCodeInvalidState:
		status = http.StatusConflict
	case models.ErrCodeProvisioningFailed:
		status = http.StatusBadGateway
	}
	utils.JSONError(c, status, appErr.Code, appErr.Message)
}
