package repository

import (
	"github.com/mhasanmeet/quizvent/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id uint) (*model.Question, error)
	FindByQuizID(quizID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.Preload("Options").First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByQuizID(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("quiz_id = ?", quizID).Order("order_in_quiz ASC").Preload("Options").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
