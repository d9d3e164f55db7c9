package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"freelance-backend/models"
	"freelance-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectInput is the document a caller submits on create. Pointer fields
// distinguish "omitted" from an explicit zero.
type ProjectInput struct {
	ID           string   `json:"id"`
	NumberOrder  string   `json:"numberOrder"`
	ProjectName  string   `json:"projectName"`
	ClientName   string   `json:"clientName"`
	ClientPhone  string   `json:"clientPhone"`
	Deadline     string   `json:"deadline"`
	Brief        string   `json:"brief"`
	Deliverables string   `json:"deliverables"`
	Invoice      string   `json:"invoice"`
	Price        *float64 `json:"price"`
	Quantity     *int     `json:"quantity"`
	Discount     *float64 `json:"discount"`
	Status       string   `json:"status"`
}

// ProjectUpdate carries the fields a caller supplied on update; nil fields
// keep their stored value.
type ProjectUpdate struct {
	NumberOrder  *string  `json:"numberOrder"`
	ProjectName  *string  `json:"projectName"`
	ClientName   *string  `json:"clientName"`
	ClientPhone  *string  `json:"clientPhone"`
	Deadline     *string  `json:"deadline"`
	Brief        *string  `json:"brief"`
	Deliverables *string  `json:"deliverables"`
	Invoice      *string  `json:"invoice"`
	Price        *float64 `json:"price"`
	Quantity     *int     `json:"quantity"`
	Discount     *float64 `json:"discount"`
	Status       *string  `json:"status"`
}

type projectRules struct {
	ID           string   `json:"id" validate:"required,max=64"`
	NumberOrder  string   `json:"numberOrder" validate:"required,max=32"`
	ProjectName  string   `json:"projectName" validate:"required"`
	ClientName   string   `json:"clientName" validate:"required"`
	Deliverables string   `json:"deliverables" validate:"omitempty,url"`
	Invoice      string   `json:"invoice" validate:"omitempty,url"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Quantity     int      `json:"quantity" validate:"gte=1"`
	Discount     float64  `json:"discount" validate:"gte=0"`
}

var projectUpdateColumns = []string{
	"number_order", "project_name", "client_name", "client_phone", "deadline", "brief",
	"deliverables", "invoice", "price", "quantity", "discount", "total_price", "status",
}

type ProjectService struct {
	db          *gorm.DB
	orderPrefix string
	now         Clock
}

func NewProjectService(db *gorm.DB, orderPrefix string) *ProjectService {
	if orderPrefix == "" {
		orderPrefix = "FM"
	}
	return &ProjectService{db: db, orderPrefix: orderPrefix, now: systemClock}
}

// WithClock replaces the time source.
func (s *ProjectService) WithClock(now Clock) *ProjectService {
	s.now = now
	return s
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, translateStoreError(err, "project")
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translateStoreError(err, "project")
	}
	return &project, nil
}

// NextOrderNumber returns today's next order number candidate for prefix.
func (s *ProjectService) NextOrderNumber(ctx context.Context, prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = s.orderPrefix
	}
	now := s.now()

	var existing []string
	pattern := fmt.Sprintf("%s-%s-%%", prefix, utils.DateKey(now))
	if err := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("number_order LIKE ?", pattern).
		Pluck("number_order", &existing).Error; err != nil {
		return "", translateStoreError(err, "project")
	}
	return utils.NextOrderNumber(prefix, existing, now), nil
}

func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	project := models.Project{
		ID:           strings.TrimSpace(input.ID),
		NumberOrder:  strings.TrimSpace(input.NumberOrder),
		ProjectName:  strings.TrimSpace(input.ProjectName),
		ClientName:   strings.TrimSpace(input.ClientName),
		ClientPhone:  strings.TrimSpace(input.ClientPhone),
		Brief:        input.Brief,
		Deliverables: strings.TrimSpace(input.Deliverables),
		Invoice:      strings.TrimSpace(input.Invoice),
		Quantity:     1,
		Status:       strings.TrimSpace(input.Status),
		Comments:     datatypes.JSONSlice[models.Comment]{},
	}
	if project.ID == "" {
		project.ID = utils.NewDocumentID()
	}
	if project.Status == "" {
		project.Status = models.StatusToDo
	}
	if input.Quantity != nil {
		project.Quantity = *input.Quantity
	}
	if input.Discount != nil {
		project.Discount = *input.Discount
	}
	if input.Price != nil {
		project.Price = *input.Price
	}
	if project.NumberOrder == "" {
		next, err := s.NextOrderNumber(ctx, s.orderPrefix)
		if err != nil {
			return nil, err
		}
		project.NumberOrder = next
	}

	var extra []utils.FieldError
	deadline, err := utils.ParseDate(input.Deadline)
	if err != nil {
		extra = append(extra, deadlineError(input.Deadline))
	}
	project.Deadline = deadline
	if err := validateProject(&project, input.Price, extra); err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, project.ID, project.NumberOrder, ""); err != nil {
		return nil, err
	}

	now := stamp(s.now())
	project.TotalPrice = utils.ComputeTotalPrice(project.Price, project.Quantity, project.Discount)
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, translateStoreError(err, "project")
	}
	return &project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, input ProjectUpdate) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var extra []utils.FieldError
	if v := trimPtr(input.NumberOrder); v != nil {
		project.NumberOrder = *v
	}
	if v := trimPtr(input.ProjectName); v != nil {
		project.ProjectName = *v
	}
	if v := trimPtr(input.ClientName); v != nil {
		project.ClientName = *v
	}
	if v := trimPtr(input.ClientPhone); v != nil {
		project.ClientPhone = *v
	}
	if input.Deadline != nil {
		deadline, err := utils.ParseDate(*input.Deadline)
		if err != nil {
			extra = append(extra, deadlineError(*input.Deadline))
		} else {
			project.Deadline = deadline
		}
	}
	if input.Brief != nil {
		project.Brief = *input.Brief
	}
	if v := trimPtr(input.Deliverables); v != nil {
		project.Deliverables = *v
	}
	if v := trimPtr(input.Invoice); v != nil {
		project.Invoice = *v
	}
	if input.Price != nil {
		project.Price = *input.Price
	}
	if input.Quantity != nil {
		project.Quantity = *input.Quantity
	}
	if input.Discount != nil {
		project.Discount = *input.Discount
	}
	if v := trimPtr(input.Status); v != nil {
		project.Status = *v
	}

	price := project.Price
	if err := validateProject(project, &price, extra); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, "", project.NumberOrder, project.ID); err != nil {
		return nil, err
	}

	project.TotalPrice = utils.ComputeTotalPrice(project.Price, project.Quantity, project.Discount)
	project.UpdatedAt = advance(s.now(), project.UpdatedAt)

	updates := map[string]interface{}{
		"number_order": project.NumberOrder,
		"project_name": project.ProjectName,
		"client_name":  project.ClientName,
		"client_phone": project.ClientPhone,
		"deadline":     project.Deadline,
		"brief":        project.Brief,
		"deliverables": project.Deliverables,
		"invoice":      project.Invoice,
		"price":        project.Price,
		"quantity":     project.Quantity,
		"discount":     project.Discount,
		"total_price":  project.TotalPrice,
		"status":       project.Status,
		"updated_at":   project.UpdatedAt,
		"version":      gorm.Expr("version + 1"),
	}
	result := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", project.ID).
		Select(append(projectUpdateColumns, "updated_at", "version")).
		Updates(updates)
	if result.Error != nil {
		return nil, translateStoreError(result.Error, "project")
	}
	if result.RowsAffected == 0 {
		return nil, utils.NewNotFoundError("Project not found")
	}

	return s.Get(ctx, project.ID)
}

// Delete removes the project together with its embedded comments and returns
// the removed document.
func (s *ProjectService) Delete(ctx context.Context, id string) (*models.Project, error) {
	var removed models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&removed).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "project")
	}
	return &removed, nil
}

// DashboardStats scans every project and aggregates counts and revenue.
func (s *ProjectService) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Select("status", "total_price").Find(&projects).Error; err != nil {
		return DashboardStats{}, translateStoreError(err, "project")
	}
	return ComputeDashboardStats(projects), nil
}

func (s *ProjectService) checkUnique(ctx context.Context, id, numberOrder, excludeID string) error {
	if id != "" {
		taken, err := exists(ctx, s.db, &models.Project{}, "id = ?", id)
		if err != nil {
			return translateStoreError(err, "project")
		}
		if taken {
			return utils.NewConflictError("A project with this id already exists")
		}
	}

	query, args := "number_order = ?", []interface{}{numberOrder}
	if excludeID != "" {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}
	taken, err := exists(ctx, s.db, &models.Project{}, query, args...)
	if err != nil {
		return translateStoreError(err, "project")
	}
	if taken {
		return utils.NewConflictError("A project with this numberOrder already exists")
	}
	return nil
}

func validateProject(p *models.Project, price *float64, extra []utils.FieldError) error {
	if !slices.Contains(models.ProjectStatuses, p.Status) {
		extra = append(extra, utils.FieldError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(models.ProjectStatuses, ", "),
		})
	}
	rules := projectRules{
		ID:           p.ID,
		NumberOrder:  p.NumberOrder,
		ProjectName:  p.ProjectName,
		ClientName:   p.ClientName,
		Deliverables: p.Deliverables,
		Invoice:      p.Invoice,
		Price:        price,
		Quantity:     p.Quantity,
		Discount:     p.Discount,
	}
	return validationErrors(utils.ValidateStruct(rules), extra)
}

func deadlineError(value string) utils.FieldError {
	if strings.TrimSpace(value) == "" {
		return utils.FieldError{Field: "deadline", Message: "deadline is required"}
	}
	return utils.FieldError{Field: "deadline", Message: "deadline must be a date (YYYY-MM-DD)"}
}
