package model

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Quizzes     []Quiz         `json:"quizzes,omitempty" gorm:"foreignKey:EventID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// EventParticipant links a student to an event. Registration happens the
// first time the student starts any quiz belonging to the event.
type EventParticipant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	EventID   uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_event_student"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_event_student"`
	CreatedAt time.Time `json:"created_at"`
}
