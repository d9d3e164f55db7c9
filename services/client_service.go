package services

import (
	"context"
	"regexp"
	"strings"

	"freelance-backend/models"
	"freelance-backend/utils"

	"gorm.io/gorm"
)

var clientCodePattern = regexp.MustCompile(`^C\d{5}$`)

type ClientInput struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId"`
	ClientName  string `json:"clientName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type ClientUpdate struct {
	ClientID    *string `json:"clientId"`
	ClientName  *string `json:"clientName"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

type clientRules struct {
	ID          string `json:"id" validate:"required,max=64"`
	ClientName  string `json:"clientName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type ClientService struct {
	db    *gorm.DB
	codes *utils.CodeGenerator
	now   Clock
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db, codes: utils.NewClientCodeGenerator(), now: systemClock}
}

func (s *ClientService) WithClock(now Clock) *ClientService {
	s.now = now
	return s
}

// WithCodeGenerator replaces the clientId generator.
func (s *ClientService) WithCodeGenerator(g *utils.CodeGenerator) *ClientService {
	s.codes = g
	return s
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&clients).Error; err != nil {
		return nil, translateStoreError(err, "client")
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, translateStoreError(err, "client")
	}
	return &client, nil
}

// NextClientCode draws a clientId not used by any stored client.
func (s *ClientService) NextClientCode(ctx context.Context) (string, error) {
	code, err := s.codes.Next(ctx, func(ctx context.Context, code string) (bool, error) {
		return exists(ctx, s.db, &models.Client{}, "client_id = ?", code)
	})
	if err != nil {
		return "", translateStoreError(err, "client")
	}
	return code, nil
}

func (s *ClientService) Create(ctx context.Context, input ClientInput) (*models.Client, error) {
	client := models.Client{
		ID:          strings.TrimSpace(input.ID),
		ClientID:    strings.ToUpper(strings.TrimSpace(input.ClientID)),
		ClientName:  strings.TrimSpace(input.ClientName),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Email:       strings.TrimSpace(input.Email),
		Address:     strings.TrimSpace(input.Address),
	}
	if client.ID == "" {
		client.ID = utils.NewDocumentID()
	}
	if client.ClientID == "" {
		code, err := s.NextClientCode(ctx)
		if err != nil {
			return nil, err
		}
		client.ClientID = code
	}

	if err := validateClient(&client); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, client.ID, client.ClientID, ""); err != nil {
		return nil, err
	}

	now := stamp(s.now())
	client.CreatedAt = now
	client.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, translateStoreError(err, "client")
	}
	return &client, nil
}

func (s *ClientService) Update(ctx context.Context, id string, input ClientUpdate) (*models.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := trimPtr(input.ClientID); v != nil {
		client.ClientID = strings.ToUpper(*v)
	}
	if v := trimPtr(input.ClientName); v != nil {
		client.ClientName = *v
	}
	if v := trimPtr(input.PhoneNumber); v != nil {
		client.PhoneNumber = *v
	}
	if v := trimPtr(input.Email); v != nil {
		client.Email = *v
	}
	if v := trimPtr(input.Address); v != nil {
		client.Address = *v
	}

	if err := validateClient(client); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, "", client.ClientID, client.ID); err != nil {
		return nil, err
	}

	client.UpdatedAt = advance(s.now(), client.UpdatedAt)
	result := s.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ?", client.ID).
		Updates(map[string]interface{}{
			"client_id":    client.ClientID,
			"client_name":  client.ClientName,
			"phone_number": client.PhoneNumber,
			"email":        client.Email,
			"address":      client.Address,
			"updated_at":   client.UpdatedAt,
		})
	if result.Error != nil {
		return nil, translateStoreError(result.Error, "client")
	}
	if result.RowsAffected == 0 {
		return nil, utils.NewNotFoundError("Client not found")
	}
	return s.Get(ctx, client.ID)
}

func (s *ClientService) Delete(ctx context.Context, id string) (*models.Client, error) {
	var removed models.Client
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&removed).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Client{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "client")
	}
	return &removed, nil
}

func (s *ClientService) checkUnique(ctx context.Context, id, clientID, excludeID string) error {
	if id != "" {
		taken, err := exists(ctx, s.db, &models.Client{}, "id = ?", id)
		if err != nil {
			return translateStoreError(err, "client")
		}
		if taken {
			return utils.NewConflictError("A client with this id already exists")
		}
	}

	query, args := "client_id = ?", []interface{}{clientID}
	if excludeID != "" {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}
	taken, err := exists(ctx, s.db, &models.Client{}, query, args...)
	if err != nil {
		return translateStoreError(err, "client")
	}
	if taken {
		return utils.NewConflictError("A client with this clientId already exists")
	}
	return nil
}

func validateClient(c *models.Client) error {
	var extra []utils.FieldError
	if !clientCodePattern.MatchString(c.ClientID) {
		extra = append(extra, utils.FieldError{Field: "clientId", Message: "clientId must look like C followed by 5 digits"})
	}
	rules := clientRules{
		ID:          c.ID,
		ClientName:  c.ClientName,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
	}
	return validationErrors(utils.ValidateStruct(rules), extra)
}
