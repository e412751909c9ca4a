package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	EventID         *uint          `json:"event_id,omitempty" gorm:"index"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description,omitempty"`
	Instructions    string         `json:"instructions,omitempty" gorm:"type:text"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	TotalMarks      int            `json:"total_marks" gorm:"not null"`
	PassingMarks    int            `json:"passing_marks" gorm:"not null"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
