package models

import "time"

// Account is an operator identity used only for authentication.
type Account struct {
	Key uint `gorm:"primaryKey;autoIncrement" json:"-"`

	UserID       string `gorm:"column:user_id;type:varchar(5);uniqueIndex;not null" json:"userId"`
	FullName     string `gorm:"not null" json:"fullName"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
