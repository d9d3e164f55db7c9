package controllers

import (
	"net/http"

	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

// ServiceController serves the catalog of offered services.
type ServiceController struct {
	Catalog *services.CatalogService
}

func (sc *ServiceController) GetServices(c *gin.Context) {
	list, err := sc.Catalog.List(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (sc *ServiceController) GetService(c *gin.Context) {
	service, err := sc.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	var input services.ServiceInput
	if !bindJSON(c, &input) {
		return
	}

	service, err := sc.Catalog.Create(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	var input services.ServiceUpdate
	if !bindJSON(c, &input) {
		return
	}

	service, err := sc.Catalog.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService removes the service and returns it
func (sc *ServiceController) DeleteService(c *gin.Context) {
	service, err := sc.Catalog.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully", "service": service})
}
