package repository

import (
	"github.com/mhasanmeet/quizvent/internal/model"
	"gorm.io/gorm"
)

type ParticipationRepository interface {
	Create(participation *model.Participation) error
	Update(participation *model.Participation) error
	FindByID(id uint) (*model.Participation, error)
	FindByIDWithDetails(id uint) (*model.Participation, error)
	FindByStudentAndQuiz(studentID, quizID uint) (*model.Participation, error)
	FindAllByQuiz(quizID uint, status string) ([]model.Participation, error)
	FindAllByStatus(status string) ([]model.Participation, error)
}

type participationRepository struct {
	db *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) Create(participation *model.Participation) error {
	// One transactional create for the record and its answer set. The unique
	// index on (student_id, quiz_id) rejects a racing duplicate here.
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(participation).Error
	})
}

func (r *participationRepository) Update(participation *model.Participation) error {
	return r.db.Save(participation).Error
}

func (r *participationRepository) FindByID(id uint) (*model.Participation, error) {
	var participation model.Participation
	err := r.db.First(&participation, id).Error
	return &participation, err
}

func (r *participationRepository) FindByIDWithDetails(id uint) (*model.Participation, error) {
	var participation model.Participation
	err := r.db.
		Preload("Quiz").
		Preload("Answers.Question").
		Preload("Answers.Images").
		First(&participation, id).Error
	return &participation, err
}

func (r *participationRepository) FindByStudentAndQuiz(studentID, quizID uint) (*model.Participation, error) {
	var participation model.Participation
	err := r.db.Where("student_id = ? AND quiz_id = ?", studentID, quizID).First(&participation).Error
	return &participation, err
}

func (r *participationRepository) FindAllByQuiz(quizID uint, status string) ([]model.Participation, error) {
	var participations []model.Participation
	query := r.db.Where("quiz_id = ?", quizID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at ASC").Find(&participations).Error
	return participations, err
}

func (r *participationRepository) FindAllByStatus(status string) ([]model.Participation, error) {
	var participations []model.Participation
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&participations).Error
	return participations, err
}
