package controllers

import (
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into dst and writes a ValidationFailed
// response when it is not valid JSON for dst.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondWithAppError(c, utils.NewValidationError(utils.FieldError{
			Field:   "body",
			Message: "Invalid input: " + err.Error(),
		}))
		return false
	}
	return true
}
