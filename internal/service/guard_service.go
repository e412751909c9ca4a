package service

import (
	"errors"
	"fmt"

	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GuardService enforces at-most-one participation per (student, quiz). Any
// prior record blocks a new attempt regardless of its status, including
// "failed"; whether a failed participation should allow a retake is an open
// product decision and the historical behavior is preserved.
type GuardService interface {
	CheckParticipation(studentID, quizID uint) (*dto.ParticipationCheckDTO, error)
}

type guardService struct {
	participationRepo repository.ParticipationRepository
}

func NewGuardService(participationRepo repository.ParticipationRepository) GuardService {
	return &guardService{participationRepo: participationRepo}
}

// CheckParticipation queries the most recent committed state; it is never
// cached, so callers must invoke it immediately before starting an attempt.
func (s *guardService) CheckParticipation(studentID, quizID uint) (*dto.ParticipationCheckDTO, error) {
	participation, err := s.participationRepo.FindByStudentAndQuiz(studentID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.ParticipationCheckDTO{HasParticipated: false}, nil
		}
		log.Error().Err(err).Uint("studentID", studentID).Uint("quizID", quizID).Msg("Participation check failed")
		return nil, fmt.Errorf("error checking participation: %w", err)
	}
	return &dto.ParticipationCheckDTO{HasParticipated: true, Status: participation.Status}, nil
}
