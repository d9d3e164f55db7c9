package controllers

import (
	"net/http"
	"strconv"

	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

// ProjectController serves project documents and their comments.
type ProjectController struct {
	Projects *services.ProjectService
	Comments *services.CommentService
}

func (pc *ProjectController) GetProjects(c *gin.Context) {
	projects, err := pc.Projects.List(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (pc *ProjectController) GetProject(c *gin.Context) {
	project, err := pc.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (pc *ProjectController) CreateProject(c *gin.Context) {
	var input services.ProjectInput
	if !bindJSON(c, &input) {
		return
	}

	project, err := pc.Projects.Create(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (pc *ProjectController) UpdateProject(c *gin.Context) {
	var input services.ProjectUpdate
	if !bindJSON(c, &input) {
		return
	}

	project, err := pc.Projects.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (pc *ProjectController) DeleteProject(c *gin.Context) {
	project, err := pc.Projects.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully", "project": project})
}

// GetComments lists a project's comments newest first. ?clientOnly=true keeps
// only client feedback.
func (pc *ProjectController) GetComments(c *gin.Context) {
	clientOnly, _ := strconv.ParseBool(c.Query("clientOnly"))
	comments, err := pc.Comments.List(c.Request.Context(), c.Param("id"), clientOnly)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (pc *ProjectController) AddComment(c *gin.Context) {
	var input services.CommentInput
	if !bindJSON(c, &input) {
		return
	}

	comment, project, err := pc.Comments.Append(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
		"project": project,
	})
}
