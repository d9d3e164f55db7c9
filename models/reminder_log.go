// models/reminder_log.go
package models

import (
	"time"
)

// ReminderLog records one deadline reminder attempt.
type ReminderLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID    string    `gorm:"type:varchar(64);index;not null" json:"projectId"`
	NumberOrder  string    `gorm:"type:varchar(32)" json:"numberOrder"`
	DayKey       string    `gorm:"type:varchar(6);index" json:"dayKey"` // DDMMYY of the run
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms, log
	Recipient    string    `json:"recipient"`
	SentAt       time.Time `json:"sentAt"`
}
