package controllers

import (
	"net/http"

	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Projects *services.ProjectService
}

// GetDashboardStats aggregates project counts and revenue.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	stats, err := dc.Projects.DashboardStats(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetNextOrderNumber returns a candidate order number for today. The number
// is only reserved once a project is created with it.
func (dc *DashboardController) GetNextOrderNumber(c *gin.Context) {
	number, err := dc.Projects.NextOrderNumber(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"numberOrder": number})
}
