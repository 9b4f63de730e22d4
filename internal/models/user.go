package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// ProgressStep is added to quiz_completion on every successful submission.
	ProgressStep = 5
	// ProgressCap saturates quiz_completion.
	ProgressCap = 100
)

// User mirrors the identity provider's subject. The quiz service owns only the
// progress counter; everything else is read-only profile data.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:255"`
	FullName string `json:"full_name" gorm:"size:100"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255"`

	// Progress
	QuizCompletion int `json:"quiz_completion" gorm:"default:0" validate:"min=0,max=100"`

	// Status
	IsActive bool `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
