package repository

import (
	"github.com/mhasanmeet/quizvent/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindAllWithQuestionCount() ([]QuizWithQuestionCount, error)
}

type QuizWithQuestionCount struct {
	model.Quiz
	QuestionCount int
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// GORM creates associated questions and options when they are populated.
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.First(&quiz, id).Error
	return &quiz, err
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_quiz ASC")
	}).Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_options.order_num ASC")
	}).First(&quiz, id).Error
	return &quiz, err
}

func (r *quizRepository) FindAllWithQuestionCount() ([]QuizWithQuestionCount, error) {
	var results []QuizWithQuestionCount
	err := r.db.Model(&model.Quiz{}).
		Select("quizzes.*, (SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id AND questions.deleted_at IS NULL) as question_count").
		Where("quizzes.deleted_at IS NULL").
		Order("quizzes.created_at DESC").
		Scan(&results).Error
	return results, err
}
