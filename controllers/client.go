package controllers

import (
	"net/http"

	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

type ClientController struct {
	Clients *services.ClientService
}

func (cc *ClientController) GetClients(c *gin.Context) {
	clients, err := cc.Clients.List(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (cc *ClientController) GetClient(c *gin.Context) {
	client, err := cc.Clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient stores a client; clientId is generated when omitted.
func (cc *ClientController) CreateClient(c *gin.Context) {
	var input services.ClientInput
	if !bindJSON(c, &input) {
		return
	}

	client, err := cc.Clients.Create(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	var input services.ClientUpdate
	if !bindJSON(c, &input) {
		return
	}

	client, err := cc.Clients.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) DeleteClient(c *gin.Context) {
	client, err := cc.Clients.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully", "client": client})
}
