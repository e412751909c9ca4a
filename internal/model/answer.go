package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer holds one graded answer within a participation. Exactly one row
// exists per question of the quiz, including questions left unanswered.
type Answer struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	ParticipationID   uint           `json:"participation_id" gorm:"not null;uniqueIndex:idx_answer_participation_question"`
	QuestionID        uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_answer_participation_question"`
	Question          Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOption    string         `json:"selected_option"`
	ParticipantAnswer string         `json:"participant_answer"` // free text for Short/Written
	IsCorrect         bool           `json:"is_correct"`
	MarksObtained     int            `json:"marks_obtained"`
	Images            []AnswerImage  `json:"images,omitempty" gorm:"foreignKey:AnswerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnswerImage references an uploaded supporting file for a Short/Written answer.
type AnswerImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	AnswerID  uint      `json:"answer_id" gorm:"not null;index"`
	URL       string    `json:"url" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
