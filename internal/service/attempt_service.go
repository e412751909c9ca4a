package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mhasanmeet/quizvent/internal/attempt"
	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/quizerr"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"github.com/rs/zerolog/log"
)

// AttemptService orchestrates the attempt lifecycle: the guard gates entry,
// the state machine runs the timed session, and the submission protocol
// persists the result.
type AttemptService interface {
	Start(quizID uint, req dto.StartAttemptDTO) (*dto.AttemptStateDTO, error)
	Get(attemptID string) (*dto.AttemptStateDTO, error)
	Answer(attemptID string, req dto.AnswerUpdateDTO) (*dto.AttemptStateDTO, error)
	Next(attemptID string) (*dto.AttemptStateDTO, error)
	Previous(attemptID string) (*dto.AttemptStateDTO, error)
	Submit(attemptID string, images map[uint][]UploadFile) (*dto.SubmitResultDTO, error)
	Abandon(attemptID string) error
	HandleTimeout(a *attempt.Attempt)
}

type attemptService struct {
	guard      GuardService
	submission SubmissionService
	quizRepo   repository.QuizRepository
	eventRepo  repository.EventRepository
	manager    *attempt.Manager
}

func NewAttemptService(
	guard GuardService,
	submission SubmissionService,
	quizRepo repository.QuizRepository,
	eventRepo repository.EventRepository,
	manager *attempt.Manager,
) AttemptService {
	return &attemptService{
		guard:      guard,
		submission: submission,
		quizRepo:   quizRepo,
		eventRepo:  eventRepo,
		manager:    manager,
	}
}

// Start runs the participation guard, snapshots the quiz, and opens a fresh
// attempt. The guard is queried immediately before every start, never from a
// cache.
func (s *attemptService) Start(quizID uint, req dto.StartAttemptDTO) (*dto.AttemptStateDTO, error) {
	check, err := s.guard.CheckParticipation(req.StudentID, quizID)
	if err != nil {
		return nil, err
	}
	if check.HasParticipated {
		return nil, &quizerr.AlreadyParticipatedError{Status: check.Status}
	}

	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Start attempt: quiz not found")
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if !quiz.IsActive {
		return nil, quizerr.ErrQuizInactive
	}

	a, err := attempt.New(uuid.NewString(), req.StudentID, quiz)
	if err != nil {
		return nil, err
	}
	if err := s.manager.Register(a); err != nil {
		return nil, err
	}
	if err := a.Start(); err != nil {
		s.manager.Remove(a.ID())
		return nil, err
	}

	// Event registration rides along with the quiz start; a failure here
	// never blocks the attempt.
	if quiz.EventID != nil {
		if err := s.eventRepo.AddParticipant(*quiz.EventID, req.StudentID); err != nil {
			log.Warn().Err(err).Uint("eventID", *quiz.EventID).Uint("studentID", req.StudentID).Msg("Event registration failed, continuing with attempt")
		}
	}

	log.Info().Str("attemptID", a.ID()).Uint("quizID", quizID).Uint("studentID", req.StudentID).Msg("Attempt started")
	return stateToDTO(a.Snapshot()), nil
}

func (s *attemptService) Get(attemptID string) (*dto.AttemptStateDTO, error) {
	a, err := s.manager.Get(attemptID)
	if err != nil {
		return nil, err
	}
	return stateToDTO(a.Snapshot()), nil
}

func (s *attemptService) Answer(attemptID string, req dto.AnswerUpdateDTO) (*dto.AttemptStateDTO, error) {
	a, err := s.manager.Get(attemptID)
	if err != nil {
		return nil, err
	}
	if err := a.Answer(req.QuestionID, req.Value); err != nil {
		return nil, err
	}
	return stateToDTO(a.Snapshot()), nil
}

func (s *attemptService) Next(attemptID string) (*dto.AttemptStateDTO, error) {
	a, err := s.manager.Get(attemptID)
	if err != nil {
		return nil, err
	}
	if err := a.Next(); err != nil {
		return nil, err
	}
	return stateToDTO(a.Snapshot()), nil
}

func (s *attemptService) Previous(attemptID string) (*dto.AttemptStateDTO, error) {
	a, err := s.manager.Get(attemptID)
	if err != nil {
		return nil, err
	}
	if err := a.Previous(); err != nil {
		return nil, err
	}
	return stateToDTO(a.Snapshot()), nil
}

func (s *attemptService) Submit(attemptID string, images map[uint][]UploadFile) (*dto.SubmitResultDTO, error) {
	a, err := s.manager.Get(attemptID)
	if err != nil {
		return nil, err
	}
	result, err := s.submission.Submit(a, images, SubmitReasonManual)
	if err != nil {
		return nil, err
	}
	s.manager.Remove(attemptID)
	return result, nil
}

// Abandon discards an in-progress attempt with no server-visible effect; the
// guard will allow a fresh start afterwards.
func (s *attemptService) Abandon(attemptID string) error {
	a, err := s.manager.Get(attemptID)
	if err != nil {
		return err
	}
	if err := a.Abandon(); err != nil {
		return err
	}
	s.manager.Remove(attemptID)
	log.Info().Str("attemptID", attemptID).Msg("Attempt abandoned")
	return nil
}

// HandleTimeout is invoked by the ticker when an attempt's clock reaches
// zero: the partial answer set is submitted as-is.
func (s *attemptService) HandleTimeout(a *attempt.Attempt) {
	result, err := s.submission.Submit(a, nil, SubmitReasonTimeout)
	if err != nil {
		// The attempt stays registered and in progress so the student can
		// still retry the submission manually.
		log.Error().Err(err).Str("attemptID", a.ID()).Msg("Timeout auto-submission failed")
		return
	}
	s.manager.Remove(a.ID())
	log.Info().Str("attemptID", a.ID()).Uint("participationID", result.Participation.ID).Msg("Attempt auto-submitted on timeout")
}

func stateToDTO(state attempt.State) *dto.AttemptStateDTO {
	resp := &dto.AttemptStateDTO{
		AttemptID:            state.ID,
		StudentID:            state.StudentID,
		QuizID:               state.QuizID,
		Phase:                string(state.Phase),
		CurrentQuestionIndex: state.CurrentQuestionIndex,
		TimeLeftSeconds:      state.TimeLeftSeconds,
		TotalScore:           state.TotalScore,
	}
	for _, ans := range state.Answers {
		resp.Answers = append(resp.Answers, dto.AttemptAnswerDTO{
			QuestionID:        ans.QuestionID,
			SelectedOption:    ans.SelectedOption,
			ParticipantAnswer: ans.ParticipantAnswer,
			IsCorrect:         ans.IsCorrect,
			MarksObtained:     ans.MarksObtained,
		})
	}
	return resp
}
