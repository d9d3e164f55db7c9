package controllers

import (
	"net/http"

	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the account behind the bearer credential.
func (ac *AuthController) GetProfile(c *gin.Context) {
	account, err := ac.Accounts.Profile(c.Request.Context(), c.GetString(utils.ContextUserID))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": userView(account)},
	})
}

func (ac *AuthController) VerifyToken(c *gin.Context) {
	account, err := ac.Accounts.Profile(c.Request.Context(), c.GetString(utils.ContextUserID))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token is valid",
		"data":    gin.H{"user": userView(account)},
	})
}
