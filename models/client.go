package models

import "time"

type Client struct {
	Key uint `gorm:"primaryKey;autoIncrement" json:"-"`

	ID          string `gorm:"type:varchar(64);uniqueIndex;not null" json:"id"`
	ClientID    string `gorm:"column:client_id;type:varchar(16);uniqueIndex;not null" json:"clientId"`
	ClientName  string `gorm:"not null" json:"clientName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
