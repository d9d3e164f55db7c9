package services

import (
	"context"
	"slices"
	"strings"

	"freelance-backend/models"
	"freelance-backend/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxAppendAttempts = 5

type CommentInput struct {
	Content      string `json:"content"`
	AuthorName   string `json:"authorName"`
	AuthorEmail  string `json:"authorEmail"`
	AuthorAvatar string `json:"authorAvatar"`
	IsClient     *bool  `json:"isClient"`
}

// CommentService appends feedback to a project's embedded comment list.
type CommentService struct {
	db  *gorm.DB
	now Clock
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db, now: systemClock}
}

func (s *CommentService) WithClock(now Clock) *CommentService {
	s.now = now
	return s
}

// Append adds one comment to the project. The write is a compare-and-swap on
// the project version: a concurrent writer makes it re-read and retry, and
// after maxAppendAttempts lost races it fails with Conflict.
func (s *CommentService) Append(ctx context.Context, projectID string, input CommentInput) (*models.Comment, *models.Project, error) {
	comment := models.Comment{
		ID:           utils.NewDocumentID(),
		Content:      strings.TrimSpace(input.Content),
		AuthorName:   strings.TrimSpace(input.AuthorName),
		AuthorEmail:  strings.TrimSpace(input.AuthorEmail),
		AuthorAvatar: strings.TrimSpace(input.AuthorAvatar),
		IsClient:     input.IsClient != nil && *input.IsClient,
	}

	var fields []utils.FieldError
	if comment.Content == "" {
		fields = append(fields, utils.FieldError{Field: "content", Message: "content is required"})
	}
	if comment.AuthorName == "" {
		fields = append(fields, utils.FieldError{Field: "authorName", Message: "authorName is required"})
	}
	if comment.AuthorEmail == "" {
		fields = append(fields, utils.FieldError{Field: "authorEmail", Message: "authorEmail is required"})
	}
	if len(fields) > 0 {
		return nil, nil, utils.NewValidationError(fields...)
	}

	db := s.db.WithContext(ctx)
	for attempt := 1; attempt <= maxAppendAttempts; attempt++ {
		var project models.Project
		if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
			return nil, nil, translateStoreError(err, "project")
		}

		now := s.now()
		comment.CreatedAt = stamp(now)
		comments := append(slices.Clone([]models.Comment(project.Comments)), comment)
		updatedAt := advance(now, project.UpdatedAt)

		result := db.Model(&models.Project{}).
			Where("id = ? AND version = ?", project.ID, project.Version).
			Updates(map[string]interface{}{
				"comments":   datatypes.JSONSlice[models.Comment](comments),
				"updated_at": updatedAt,
				"version":    gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return nil, nil, translateStoreError(result.Error, "project")
		}
		if result.RowsAffected == 1 {
			project.Comments = comments
			project.UpdatedAt = updatedAt
			project.Version++
			return &comment, &project, nil
		}

		logrus.WithFields(logrus.Fields{"projectId": projectID, "attempt": attempt}).
			Debug("project modified concurrently, retrying comment append")
	}

	return nil, nil, utils.NewConflictError("The project was modified concurrently, please retry")
}

// List returns the project's comments newest first, optionally only the ones
// written by the client.
func (s *CommentService) List(ctx context.Context, projectID string, clientOnly bool) ([]models.Comment, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).Select("id", "comments").Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, translateStoreError(err, "project")
	}
	return SortComments(project.Comments, clientOnly), nil
}

// SortComments orders comments by createdAt descending. The stored order is
// insertion order and is not used for presentation.
func SortComments(comments []models.Comment, clientOnly bool) []models.Comment {
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if clientOnly && !c.IsClient {
			continue
		}
		out = append(out, c)
	}
	slices.SortStableFunc(out, func(a, b models.Comment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
