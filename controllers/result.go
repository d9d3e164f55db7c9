package controllers

import (
	"net/http"

	"freelance-backend/models"
	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
)

// ResultController backs the public result page a client opens from a shared
// link. It never exposes operator comments.
type ResultController struct {
	Projects *services.ProjectService
	Comments *services.CommentService
}

type ResultCommentInput struct {
	Content      string `json:"content"`
	AuthorName   string `json:"authorName"`
	AuthorEmail  string `json:"authorEmail"`
	AuthorAvatar string `json:"authorAvatar"`
}

func (rc *ResultController) GetResult(c *gin.Context) {
	project, err := rc.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, publicProject(project))
}

func (rc *ResultController) AddClientComment(c *gin.Context) {
	var input ResultCommentInput
	if !bindJSON(c, &input) {
		return
	}

	isClient := true
	comment, project, err := rc.Comments.Append(c.Request.Context(), c.Param("id"), services.CommentInput{
		Content:      input.Content,
		AuthorName:   input.AuthorName,
		AuthorEmail:  input.AuthorEmail,
		AuthorAvatar: input.AuthorAvatar,
		IsClient:     &isClient,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
		"project": publicProject(project),
	})
}

func publicProject(p *models.Project) models.Project {
	out := *p
	out.Comments = services.SortComments(p.Comments, true)
	return out
}
