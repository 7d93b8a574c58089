package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mentorly/middleware"
	"mentorly/models"
	"mentorly/utils"
)

// SetWeeklySchedule replaces the authenticated provider's entire weekly
// availability in one shot.
func SetWeeklySchedule(c *gin.Context) {
	var req models.WeeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	count, err := AvailabilityService.ReplaceWeeklySchedule(c.Request.Context(), middleware.GetUserID(c), req.Slots)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"slotsStored": count})
}

// GetDayAvailability lists a provider's active slots for one weekday.
func GetDayAvailability(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 0 || day > 6 {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", "day must be an integer 0-6")
		return
	}

	slots, err := AvailabilityService.GetSlotsForDay(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, slots)
}
