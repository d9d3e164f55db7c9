package models

import "time"

const (
	ServiceActive   = "active"
	ServiceInactive = "inactive"
)

type Service struct {
	Key uint `gorm:"primaryKey;autoIncrement" json:"-"`

	ID             string  `gorm:"type:varchar(64);uniqueIndex;not null" json:"id"`
	ServiceName    string  `gorm:"not null" json:"serviceName"`
	Description    string  `gorm:"type:text" json:"description"`
	ServicePrice   float64 `gorm:"not null" json:"servicePrice"`
	DurationOfWork int     `gorm:"not null" json:"durationOfWork"` // in days
	Deliverables   string  `json:"deliverables"`

	UnlimitedRevision bool `gorm:"default:false" json:"unlimitedRevision"`
	// TotalRevision is nil whenever UnlimitedRevision is set.
	TotalRevision *int   `json:"totalRevision"`
	Status        string `gorm:"type:varchar(16);not null;default:'active'" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
