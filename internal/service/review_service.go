package service

import (
	"fmt"

	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/quizerr"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReviewService is the manual review workflow: an admin grades Short/Written
// answers after submission and finalizes the participation status. This is
// the only code path that mutates marks on a persisted participation.
type ReviewService interface {
	ListPending() ([]dto.ParticipationDTO, error)
	GradeAnswer(participationID, questionID uint, req dto.GradeAnswerDTO) (*dto.ParticipationDTO, error)
	Finalize(participationID uint, req dto.FinalizeParticipationDTO) (*dto.ParticipationDTO, error)
	SuggestGrade(participationID, questionID uint) (*dto.GradeSuggestionDTO, error)
}

type reviewService struct {
	participationRepo repository.ParticipationRepository
	answerRepo        repository.AnswerRepository
	questionRepo      repository.QuestionRepository
	quizRepo          repository.QuizRepository
	assist            GradeAssistService
	uploads           UploadStore
}

func NewReviewService(
	participationRepo repository.ParticipationRepository,
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	quizRepo repository.QuizRepository,
	assist GradeAssistService,
	uploads UploadStore,
) ReviewService {
	return &reviewService{
		participationRepo: participationRepo,
		answerRepo:        answerRepo,
		questionRepo:      questionRepo,
		quizRepo:          quizRepo,
		assist:            assist,
		uploads:           uploads,
	}
}

func (s *reviewService) ListPending() ([]dto.ParticipationDTO, error) {
	participations, err := s.participationRepo.FindAllByStatus(model.ParticipationStatusPending)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list pending participations")
		return nil, fmt.Errorf("error fetching pending participations: %w", err)
	}

	dtos := make([]dto.ParticipationDTO, 0, len(participations))
	for i := range participations {
		dtos = append(dtos, participationDetailToDTO(&participations[i]))
	}
	return dtos, nil
}

// GradeAnswer sets the reviewed marks on one answer and recomputes the
// participation's total from the full answer set, so the stored total can
// never drift from its parts.
func (s *reviewService) GradeAnswer(participationID, questionID uint, req dto.GradeAnswerDTO) (*dto.ParticipationDTO, error) {
	participation, err := s.participationRepo.FindByIDWithDetails(participationID)
	if err != nil {
		return nil, fmt.Errorf("participation not found with ID %d: %w", participationID, err)
	}
	if participation.IsTerminal() {
		return nil, fmt.Errorf("participation %d is already %s: %w", participationID, participation.Status, quizerr.ErrParticipationTerminal)
	}

	var target *model.Answer
	for i := range participation.Answers {
		if participation.Answers[i].QuestionID == questionID {
			target = &participation.Answers[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("participation %d has no answer for question %d: %w", participationID, questionID, quizerr.ErrAnswerNotFound)
	}

	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", questionID, err)
	}
	if *req.MarksObtained > question.Marks {
		return nil, fmt.Errorf("marks %d exceed the question maximum of %d: %w", *req.MarksObtained, question.Marks, quizerr.ErrMarksExceedMaximum)
	}

	target.MarksObtained = *req.MarksObtained
	target.IsCorrect = *req.IsCorrect
	if err := s.answerRepo.Update(target); err != nil {
		log.Error().Err(err).Uint("answerID", target.ID).Msg("Failed to update graded answer")
		return nil, fmt.Errorf("error saving graded answer: %w", err)
	}

	total := 0
	for _, ans := range participation.Answers {
		total += ans.MarksObtained
	}
	participation.TotalScore = total
	if err := s.participationRepo.Update(participation); err != nil {
		log.Error().Err(err).Uint("participationID", participationID).Msg("Failed to update participation total after grading")
		return nil, fmt.Errorf("error saving participation total: %w", err)
	}

	log.Info().Uint("participationID", participationID).Uint("questionID", questionID).Int("marks", *req.MarksObtained).Msg("Answer graded")
	resp := participationDetailToDTO(participation)
	return &resp, nil
}

// Finalize closes the review. Without an explicit status, pass/fail is
// derived from the recomputed total against the quiz passing marks.
func (s *reviewService) Finalize(participationID uint, req dto.FinalizeParticipationDTO) (*dto.ParticipationDTO, error) {
	participation, err := s.participationRepo.FindByIDWithDetails(participationID)
	if err != nil {
		return nil, fmt.Errorf("participation not found with ID %d: %w", participationID, err)
	}
	if participation.IsTerminal() {
		return nil, fmt.Errorf("participation %d is already %s: %w", participationID, participation.Status, quizerr.ErrParticipationTerminal)
	}

	status := ""
	if req.Status != nil {
		status = *req.Status
	} else {
		quiz, err := s.quizRepo.FindByID(participation.QuizID)
		if err != nil {
			return nil, fmt.Errorf("quiz not found with ID %d: %w", participation.QuizID, err)
		}
		if participation.TotalScore >= quiz.PassingMarks {
			status = model.ParticipationStatusCompleted
		} else {
			status = model.ParticipationStatusFailed
		}
	}

	participation.Status = status
	if err := s.participationRepo.Update(participation); err != nil {
		log.Error().Err(err).Uint("participationID", participationID).Msg("Failed to finalize participation")
		return nil, fmt.Errorf("error finalizing participation: %w", err)
	}

	log.Info().Uint("participationID", participationID).Str("status", status).Msg("Participation finalized")
	resp := participationDetailToDTO(participation)
	return &resp, nil
}

// SuggestGrade asks the assist model for an advisory score and feedback on a
// subjective answer, attaching any uploaded images it can read back.
func (s *reviewService) SuggestGrade(participationID, questionID uint) (*dto.GradeSuggestionDTO, error) {
	answer, err := s.answerRepo.FindByParticipationAndQuestion(participationID, questionID)
	if err != nil {
		return nil, fmt.Errorf("answer not found for participation %d question %d: %w", participationID, questionID, err)
	}
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", questionID, err)
	}
	if question.Type == model.QuestionTypeMCQ {
		return nil, fmt.Errorf("question %d is MCQ: %w", questionID, quizerr.ErrQuestionNotReviewable)
	}

	full, err := s.participationRepo.FindByIDWithDetails(participationID)
	if err != nil {
		return nil, fmt.Errorf("participation not found with ID %d: %w", participationID, err)
	}
	var images []AssistImage
	for _, ans := range full.Answers {
		if ans.QuestionID != questionID {
			continue
		}
		for _, img := range ans.Images {
			data, readErr := s.uploads.Read(img.URL)
			if readErr != nil {
				log.Warn().Err(readErr).Str("url", img.URL).Msg("Could not read answer image for assist, skipping")
				continue
			}
			images = append(images, AssistImage{URL: img.URL, Data: data})
		}
	}

	feedback, score, err := s.assist.SuggestGrade(question, answer.ParticipantAnswer, images)
	if err != nil {
		return nil, fmt.Errorf("grade suggestion failed: %w", err)
	}
	return &dto.GradeSuggestionDTO{SuggestedMarks: score, Feedback: feedback}, nil
}

func participationDetailToDTO(p *model.Participation) dto.ParticipationDTO {
	resp := dto.ParticipationDTO{
		ID:         p.ID,
		StudentID:  p.StudentID,
		QuizID:     p.QuizID,
		TotalScore: p.TotalScore,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
	for _, ans := range p.Answers {
		ansDTO := dto.AnswerResponseDTO{
			ID:                ans.ID,
			QuestionID:        ans.QuestionID,
			SelectedOption:    ans.SelectedOption,
			ParticipantAnswer: ans.ParticipantAnswer,
			IsCorrect:         ans.IsCorrect,
			MarksObtained:     ans.MarksObtained,
		}
		for _, img := range ans.Images {
			ansDTO.ImageURLs = append(ansDTO.ImageURLs, img.URL)
		}
		resp.Answers = append(resp.Answers, ansDTO)
	}
	return resp
}
