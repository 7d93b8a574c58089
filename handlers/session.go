package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorly/middleware"
	"mentorly/services/session"
	"mentorly/utils"
)

// SessionService is wired in main alongside the other package services.
var SessionService session.Service

// CreateSession publishes a new offering for the authenticated provider.
func CreateSession(c *gin.Context) {
	var req session.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	req.ProviderID = middleware.GetUserID(c)

	created, err := SessionService.CreateSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, created)
}

// UpdateSessionStatus moves an offering along draft/active/completed/cancelled.
func UpdateSessionStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := SessionService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"status": req.Status})
}

// GetSession returns one offering.
func GetSession(c *gin.Context) {
	s, err := SessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, s)
}
