package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ParticipationStatusPending   = "pending"
	ParticipationStatusCompleted = "completed"
	ParticipationStatusFailed    = "failed"
)

// Participation is the authoritative record of a submitted quiz attempt.
// The unique index on (student_id, quiz_id) enforces single participation
// per student per quiz even when two submissions race past the guard check.
type Participation struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	StudentID  uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_participation_student_quiz"`
	QuizID     uint           `json:"quiz_id" gorm:"not null;uniqueIndex:idx_participation_student_quiz"`
	Quiz       Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	TotalScore int            `json:"total_score" gorm:"not null"`
	Status     string         `json:"status" gorm:"default:'pending'"` // "pending", "completed", "failed"
	Answers    []Answer       `json:"answers,omitempty" gorm:"foreignKey:ParticipationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsTerminal reports whether the participation no longer transitions
// automatically ("completed" or "failed").
func (p *Participation) IsTerminal() bool {
	return p.Status == ParticipationStatusCompleted || p.Status == ParticipationStatusFailed
}
