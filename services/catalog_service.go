package services

import (
	"context"
	"strings"

	"freelance-backend/models"
	"freelance-backend/utils"

	"gorm.io/gorm"
)

type ServiceInput struct {
	ID                string   `json:"id"`
	ServiceName       string   `json:"serviceName"`
	Description       string   `json:"description"`
	ServicePrice      *float64 `json:"servicePrice"`
	DurationOfWork    *int     `json:"durationOfWork"`
	Deliverables      string   `json:"deliverables"`
	UnlimitedRevision *bool    `json:"unlimitedRevision"`
	TotalRevision     *int     `json:"totalRevision"`
	Status            string   `json:"status"`
}

type ServiceUpdate struct {
	ServiceName       *string  `json:"serviceName"`
	Description       *string  `json:"description"`
	ServicePrice      *float64 `json:"servicePrice"`
	DurationOfWork    *int     `json:"durationOfWork"`
	Deliverables      *string  `json:"deliverables"`
	UnlimitedRevision *bool    `json:"unlimitedRevision"`
	TotalRevision     *int     `json:"totalRevision"`
	Status            *string  `json:"status"`
}

type serviceRules struct {
	ID             string   `json:"id" validate:"required,max=64"`
	ServiceName    string   `json:"serviceName" validate:"required"`
	ServicePrice   *float64 `json:"servicePrice" validate:"required,gte=0"`
	DurationOfWork int      `json:"durationOfWork" validate:"required,gte=1"`
	TotalRevision  *int     `json:"totalRevision" validate:"omitempty,gte=0"`
	Status         string   `json:"status" validate:"required,oneof=active inactive"`
}

// CatalogService manages the services offered to clients.
type CatalogService struct {
	db    *gorm.DB
	codes *utils.CodeGenerator
	now   Clock
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db, codes: utils.NewServiceCodeGenerator(), now: systemClock}
}

func (s *CatalogService) WithClock(now Clock) *CatalogService {
	s.now = now
	return s
}

func (s *CatalogService) WithCodeGenerator(g *utils.CodeGenerator) *CatalogService {
	s.codes = g
	return s
}

func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&services).Error; err != nil {
		return nil, translateStoreError(err, "service")
	}
	return services, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		return nil, translateStoreError(err, "service")
	}
	return &service, nil
}

// NextServiceCode draws an S-prefixed id not used by any stored service.
func (s *CatalogService) NextServiceCode(ctx context.Context) (string, error) {
	code, err := s.codes.Next(ctx, func(ctx context.Context, code string) (bool, error) {
		return exists(ctx, s.db, &models.Service{}, "id = ?", code)
	})
	if err != nil {
		return "", translateStoreError(err, "service")
	}
	return code, nil
}

func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*models.Service, error) {
	service := models.Service{
		ID:            strings.TrimSpace(input.ID),
		ServiceName:   strings.TrimSpace(input.ServiceName),
		Description:   input.Description,
		Deliverables:  strings.TrimSpace(input.Deliverables),
		TotalRevision: input.TotalRevision,
		Status:        strings.TrimSpace(input.Status),
	}
	if input.ServicePrice != nil {
		service.ServicePrice = *input.ServicePrice
	}
	if input.DurationOfWork != nil {
		service.DurationOfWork = *input.DurationOfWork
	}
	if input.UnlimitedRevision != nil {
		service.UnlimitedRevision = *input.UnlimitedRevision
	}
	if service.Status == "" {
		service.Status = models.ServiceActive
	}
	if service.ID == "" {
		code, err := s.NextServiceCode(ctx)
		if err != nil {
			return nil, err
		}
		service.ID = code
	}

	if err := validateService(&service, input.ServicePrice); err != nil {
		return nil, err
	}

	taken, err := exists(ctx, s.db, &models.Service{}, "id = ?", service.ID)
	if err != nil {
		return nil, translateStoreError(err, "service")
	}
	if taken {
		return nil, utils.NewConflictError("A service with this id already exists")
	}

	now := stamp(s.now())
	service.CreatedAt = now
	service.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, translateStoreError(err, "service")
	}
	return &service, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, input ServiceUpdate) (*models.Service, error) {
	service, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := trimPtr(input.ServiceName); v != nil {
		service.ServiceName = *v
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.ServicePrice != nil {
		service.ServicePrice = *input.ServicePrice
	}
	if input.DurationOfWork != nil {
		service.DurationOfWork = *input.DurationOfWork
	}
	if v := trimPtr(input.Deliverables); v != nil {
		service.Deliverables = *v
	}
	if input.UnlimitedRevision != nil {
		service.UnlimitedRevision = *input.UnlimitedRevision
	}
	if input.TotalRevision != nil {
		service.TotalRevision = input.TotalRevision
	}
	if v := trimPtr(input.Status); v != nil {
		service.Status = *v
	}

	price := service.ServicePrice
	if err := validateService(service, &price); err != nil {
		return nil, err
	}

	service.UpdatedAt = advance(s.now(), service.UpdatedAt)
	result := s.db.WithContext(ctx).Model(&models.Service{}).
		Where("id = ?", service.ID).
		Updates(map[string]interface{}{
			"service_name":       service.ServiceName,
			"description":        service.Description,
			"service_price":      service.ServicePrice,
			"duration_of_work":   service.DurationOfWork,
			"deliverables":       service.Deliverables,
			"unlimited_revision": service.UnlimitedRevision,
			"total_revision":     service.TotalRevision,
			"status":             service.Status,
			"updated_at":         service.UpdatedAt,
		})
	if result.Error != nil {
		return nil, translateStoreError(result.Error, "service")
	}
	if result.RowsAffected == 0 {
		return nil, utils.NewNotFoundError("Service not found")
	}
	return s.Get(ctx, service.ID)
}

func (s *CatalogService) Delete(ctx context.Context, id string) (*models.Service, error) {
	var removed models.Service
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&removed).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Service{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "service")
	}
	return &removed, nil
}

// validateService enforces the revision rule: unlimited revisions clear
// totalRevision, limited ones require it.
func validateService(svc *models.Service, price *float64) error {
	var extra []utils.FieldError
	if svc.UnlimitedRevision {
		svc.TotalRevision = nil
	} else if svc.TotalRevision == nil {
		extra = append(extra, utils.FieldError{
			Field:   "totalRevision",
			Message: "totalRevision is required when unlimitedRevision is false",
		})
	}
	rules := serviceRules{
		ID:             svc.ID,
		ServiceName:    svc.ServiceName,
		ServicePrice:   price,
		DurationOfWork: svc.DurationOfWork,
		TotalRevision:  svc.TotalRevision,
		Status:         svc.Status,
	}
	return validationErrors(utils.ValidateStruct(rules), extra)
}
