package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ     = "MCQ"
	QuestionTypeShort   = "Short"
	QuestionTypeWritten = "Written"
)

type Question struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	QuizID        uint             `json:"quiz_id" gorm:"not null;index"`
	Text          string           `json:"text" gorm:"type:text;not null"`
	Type          string           `json:"type" gorm:"not null"` // "MCQ", "Short", "Written"
	Marks         int              `json:"marks" gorm:"not null"`
	OrderInQuiz   int              `json:"order_in_quiz" gorm:"not null"`
	Options       []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CorrectAnswer string           `json:"correct_answer,omitempty"` // MCQ only, exact option text
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

type QuestionOption struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	OrderNum   int    `json:"order_num" gorm:"not null"`
	Text       string `json:"text" gorm:"not null"`
}

// OptionTexts returns the option strings in display order.
func (q *Question) OptionTexts() []string {
	texts := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		texts = append(texts, opt.Text)
	}
	return texts
}
