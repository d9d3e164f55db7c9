package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusToDo              = "to do"
	StatusInProgress        = "in progress"
	StatusWaitingForPayment = "waiting for payment"
	StatusInReview          = "in review"
	StatusRevision          = "revision"
	StatusDone              = "done"
)

// ProjectStatuses lists every accepted project status in workflow order.
var ProjectStatuses = []string{
	StatusToDo,
	StatusInProgress,
	StatusWaitingForPayment,
	StatusInReview,
	StatusRevision,
	StatusDone,
}

type Project struct {
	Key uint `gorm:"primaryKey;autoIncrement" json:"-"`

	ID          string `gorm:"type:varchar(64);uniqueIndex;not null" json:"id"`
	NumberOrder string `gorm:"type:varchar(32);uniqueIndex;not null" json:"numberOrder"`

	ProjectName  string    `gorm:"not null" json:"projectName"`
	ClientName   string    `gorm:"not null" json:"clientName"`
	ClientPhone  string    `json:"clientPhone"`
	Deadline     time.Time `gorm:"not null" json:"deadline"`
	Brief        string    `gorm:"type:text" json:"brief"`
	Deliverables string    `json:"deliverables"`
	Invoice      string    `json:"invoice"`

	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
	Discount   float64 `gorm:"default:0" json:"discount"`
	TotalPrice float64 `gorm:"not null" json:"totalPrice"`

	Status   string                       `gorm:"type:varchar(32);not null;default:'to do'" json:"status"`
	Comments datatypes.JSONSlice[Comment] `json:"comments"`

	// Version is bumped on every write so comment appends can detect lost updates.
	Version int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is embedded in a project document and never changes once appended.
type Comment struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	AuthorName   string    `json:"authorName"`
	AuthorEmail  string    `json:"authorEmail"`
	AuthorAvatar string    `json:"authorAvatar"`
	IsClient     bool      `json:"isClient"`
	CreatedAt    time.Time `json:"createdAt"`
}
