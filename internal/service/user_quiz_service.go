package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserQuizService interface {
	GetAllQuizzes() ([]dto.QuizSummaryDTO, error)
	GetQuizDetails(quizID uint) (*dto.QuizDetailDTO, error)
	GetParticipation(id uint) (*dto.ParticipationDTO, error)
}

type userQuizService struct {
	quizRepo          repository.QuizRepository
	participationRepo repository.ParticipationRepository
}

func NewUserQuizService(quizRepo repository.QuizRepository, participationRepo repository.ParticipationRepository) UserQuizService {
	return &userQuizService{quizRepo: quizRepo, participationRepo: participationRepo}
}

func (s *userQuizService) GetAllQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzesWithCount, err := s.quizRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get quizzes with question count from repository")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}

	var dtos []dto.QuizSummaryDTO
	for _, qwc := range quizzesWithCount {
		dtos = append(dtos, dto.QuizSummaryDTO{
			ID:              qwc.Quiz.ID,
			EventID:         qwc.Quiz.EventID,
			Title:           qwc.Quiz.Title,
			Description:     qwc.Quiz.Description,
			DurationMinutes: qwc.Quiz.DurationMinutes,
			TotalMarks:      qwc.Quiz.TotalMarks,
			PassingMarks:    qwc.Quiz.PassingMarks,
			IsActive:        qwc.Quiz.IsActive,
			QuestionCount:   qwc.QuestionCount,
			CreatedAt:       qwc.Quiz.CreatedAt,
		})
	}
	return dtos, nil
}

// GetQuizDetails returns the participant-facing quiz view. Correct answers
// never leave the server through this path.
func (s *userQuizService) GetQuizDetails(quizID uint) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to get quiz details from repository")
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}

	var resp dto.QuizDetailDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		log.Error().Err(err).Msg("Failed to copy Quiz model to QuizDetailDTO")
		return nil, fmt.Errorf("error preparing quiz details response: %w", err)
	}

	resp.Questions = make([]dto.StudentQuestionDTO, len(quiz.Questions))
	for i, q := range quiz.Questions {
		resp.Questions[i] = dto.StudentQuestionDTO{
			ID:          q.ID,
			QuizID:      q.QuizID,
			Text:        q.Text,
			Type:        q.Type,
			Marks:       q.Marks,
			OrderInQuiz: q.OrderInQuiz,
			Options:     q.OptionTexts(),
		}
	}
	return &resp, nil
}

func (s *userQuizService) GetParticipation(id uint) (*dto.ParticipationDTO, error) {
	participation, err := s.participationRepo.FindByIDWithDetails(id)
	if err != nil {
		log.Error().Err(err).Uint("participationID", id).Msg("Failed to find participation by ID")
		return nil, fmt.Errorf("participation not found with ID %d: %w", id, err)
	}
	resp := participationDetailToDTO(participation)
	return &resp, nil
}
