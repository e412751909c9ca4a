package repository

import (
	"errors"

	"github.com/mhasanmeet/quizvent/internal/model"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(event *model.Event) error
	FindByID(id uint) (*model.Event, error)
	AddParticipant(eventID, studentID uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *model.Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	err := r.db.First(&event, id).Error
	return &event, err
}

// AddParticipant registers a student into an event. Registration is
// idempotent: an existing row is left untouched.
func (r *eventRepository) AddParticipant(eventID, studentID uint) error {
	var existing model.EventParticipant
	err := r.db.Where("event_id = ? AND student_id = ?", eventID, studentID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&model.EventParticipant{EventID: eventID, StudentID: studentID}).Error
}
