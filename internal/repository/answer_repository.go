package repository

import (
	"github.com/mhasanmeet/quizvent/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Update(answer *model.Answer) error
	FindByParticipationAndQuestion(participationID, questionID uint) (*model.Answer, error)
	AddImage(image *model.AnswerImage) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) FindByParticipationAndQuestion(participationID, questionID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Where("participation_id = ? AND question_id = ?", participationID, questionID).First(&answer).Error
	return &answer, err
}

func (r *answerRepository) AddImage(image *model.AnswerImage) error {
	return r.db.Create(image).Error
}
