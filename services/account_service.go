package services

import (
	"context"
	"errors"
	"strings"

	"freelance-backend/models"
	"freelance-backend/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const invalidCredentials = "Invalid email or password"

type RegisterInput struct {
	FullName string `json:"fullName" validate:"required,min=2,fullname"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72,strongpassword"`
}

// AccountService registers operators and issues their bearer credentials.
type AccountService struct {
	db         *gorm.DB
	tokens     *utils.TokenManager
	bcryptCost int
	ids        *utils.CodeGenerator
	now        Clock
}

func NewAccountService(db *gorm.DB, tokens *utils.TokenManager, bcryptCost int) *AccountService {
	return &AccountService{
		db:         db,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		ids:        utils.NewAccountIDGenerator(),
		now:        systemClock,
	}
}

func (s *AccountService) WithClock(now Clock) *AccountService {
	s.now = now
	return s
}

func (s *AccountService) WithIDGenerator(g *utils.CodeGenerator) *AccountService {
	s.ids = g
	return s
}

// Register creates an account and returns it with a fresh credential.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.Account, string, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := utils.ValidateStruct(input); err != nil {
		return nil, "", err
	}

	taken, err := exists(ctx, s.db, &models.Account{}, "email = ?", input.Email)
	if err != nil {
		return nil, "", translateStoreError(err, "account")
	}
	if taken {
		return nil, "", utils.NewConflictError("Email already exists")
	}

	userID, err := s.ids.Next(ctx, func(ctx context.Context, code string) (bool, error) {
		return exists(ctx, s.db, &models.Account{}, "user_id = ?", code)
	})
	if err != nil {
		return nil, "", translateStoreError(err, "account")
	}

	hash, err := utils.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		return nil, "", err
	}

	now := stamp(s.now())
	account := models.Account{
		UserID:       userID,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, "", translateStoreError(err, "account")
	}

	token, err := s.tokens.GenerateToken(account.UserID)
	if err != nil {
		return nil, "", err
	}
	logrus.WithField("userId", account.UserID).Info("account registered")
	return &account, token, nil
}

// Login checks the credentials. Unknown email and wrong password fail with the
// same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", utils.NewUnauthorizedError(invalidCredentials)
	}

	var account models.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", utils.NewUnauthorizedError(invalidCredentials)
	}
	if err != nil {
		return nil, "", translateStoreError(err, "account")
	}

	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		return nil, "", utils.NewUnauthorizedError(invalidCredentials)
	}

	token, err := s.tokens.GenerateToken(account.UserID)
	if err != nil {
		return nil, "", err
	}
	return &account, token, nil
}

// Verify resolves a credential to the account it was issued for.
func (s *AccountService) Verify(ctx context.Context, token string) (*models.Account, error) {
	userID, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	account, err := s.Profile(ctx, userID)
	if utils.IsKind(err, utils.KindNotFound) {
		return nil, utils.NewUnauthorizedError("User not found")
	}
	return account, err
}

// VerifyUserID adapts Verify to utils.CredentialVerifier.
func (s *AccountService) VerifyUserID(ctx context.Context, token string) (string, error) {
	account, err := s.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	return account.UserID, nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
		return nil, translateStoreError(err, "account")
	}
	return &account, nil
}
