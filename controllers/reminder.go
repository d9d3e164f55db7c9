// controllers/reminder.go
package controllers

import (
	"net/http"

	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Reminders *services.ReminderService
}

// RunReminders triggers a deadline reminder pass outside the schedule.
// Projects already reminded today are skipped.
func (rc *ReminderController) RunReminders(c *gin.Context) {
	sent, err := rc.Reminders.SendDeadlineReminders(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminders processed", "sent": sent})
}

// GetReminderLogs lists reminder attempts, newest first, optionally for one
// project.
func (rc *ReminderController) GetReminderLogs(c *gin.Context) {
	logs, err := rc.Reminders.ListLogs(c.Request.Context(), c.Query("projectId"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
