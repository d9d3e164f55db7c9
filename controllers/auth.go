// controllers/auth.go
package controllers

import (
	"net/http"

	"freelance-backend/models"
	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthController struct {
	Accounts *services.AccountService
}

func (ac *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	account, token, err := ac.Accounts.Register(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"data":    gin.H{"user": userView(account), "token": token},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input) {
		return
	}

	account, token, err := ac.Accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    gin.H{"user": userView(account), "token": token},
	})
}

func userView(a *models.Account) gin.H {
	return gin.H{
		"userId":    a.UserID,
		"fullName":  a.FullName,
		"email":     a.Email,
		"createdAt": a.CreatedAt,
	}
}
