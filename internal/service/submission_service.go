package service

import (
	"fmt"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/mhasanmeet/quizvent/internal/attempt"
	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	SubmitReasonManual  = "manual"
	SubmitReasonTimeout = "timeout"
)

// SubmissionService turns a finished attempt into a persisted Participation.
// The participation create is the authoritative commit point; image uploads
// for subjective answers are best effort and can never fail the submission.
type SubmissionService interface {
	Submit(a *attempt.Attempt, images map[uint][]UploadFile, reason string) (*dto.SubmitResultDTO, error)
}

type submissionService struct {
	participationRepo repository.ParticipationRepository
	answerRepo        repository.AnswerRepository
	uploads           UploadStore
}

func NewSubmissionService(
	participationRepo repository.ParticipationRepository,
	answerRepo repository.AnswerRepository,
	uploads UploadStore,
) SubmissionService {
	return &submissionService{
		participationRepo: participationRepo,
		answerRepo:        answerRepo,
		uploads:           uploads,
	}
}

// uploadResult carries the outcome of one per-question image upload task.
type uploadResult struct {
	questionID uint
	err        error
}

func (s *submissionService) Submit(a *attempt.Attempt, images map[uint][]UploadFile, reason string) (*dto.SubmitResultDTO, error) {
	if err := a.BeginSubmit(); err != nil {
		return nil, err
	}

	state := a.Snapshot()

	answers := make([]model.Answer, len(state.Answers))
	for i, ans := range state.Answers {
		answers[i] = model.Answer{
			QuestionID:        ans.QuestionID,
			SelectedOption:    ans.SelectedOption,
			ParticipantAnswer: ans.ParticipantAnswer,
			IsCorrect:         ans.IsCorrect,
			MarksObtained:     ans.MarksObtained,
		}
	}

	participation := model.Participation{
		StudentID:  state.StudentID,
		QuizID:     state.QuizID,
		TotalScore: state.TotalScore,
		Status:     model.ParticipationStatusPending,
		Answers:    answers,
	}

	if err := s.participationRepo.Create(&participation); err != nil {
		// The attempt stays in progress so the student may retry.
		a.FinishSubmit(false)
		log.Error().Err(err).Uint("quizID", state.QuizID).Uint("studentID", state.StudentID).Msg("Submit: failed to create participation record")
		return nil, fmt.Errorf("failed to persist participation: %w", err)
	}
	a.FinishSubmit(true)
	log.Info().Uint("participationID", participation.ID).Str("reason", reason).Int("totalScore", participation.TotalScore).Msg("Participation committed")

	warnings := s.uploadAnswerImages(a, &participation, images)

	var resp dto.ParticipationDTO
	if err := copier.Copy(&resp, &participation); err != nil {
		log.Error().Err(err).Msg("Submit: error copying participation to DTO")
		return nil, fmt.Errorf("error preparing submission response: %w", err)
	}
	return &dto.SubmitResultDTO{
		Participation:  resp,
		Reason:         reason,
		UploadWarnings: warnings,
	}, nil
}

// uploadAnswerImages fans out one upload task per Short/Written question that
// has attached images. Tasks run concurrently; an individual failure is
// reported as a warning and neither cancels siblings nor touches the
// committed participation.
func (s *submissionService) uploadAnswerImages(a *attempt.Attempt, participation *model.Participation, images map[uint][]UploadFile) []string {
	answerIDs := make(map[uint]uint, len(participation.Answers))
	for _, ans := range participation.Answers {
		answerIDs[ans.QuestionID] = ans.ID
	}

	var wg sync.WaitGroup
	resultsChan := make(chan uploadResult, len(images))

	for questionID, files := range images {
		question, ok := a.QuestionByID(questionID)
		if !ok || question.Type == model.QuestionTypeMCQ || len(files) == 0 {
			continue
		}
		if len(files) > MaxImagesPerAnswer {
			files = files[:MaxImagesPerAnswer]
		}

		answerID, ok := answerIDs[questionID]
		if !ok {
			continue
		}

		wg.Add(1)
		go func(questionID, answerID uint, files []UploadFile) {
			defer wg.Done()

			for _, file := range files {
				url, err := s.uploads.Save(participation.ID, questionID, file)
				if err != nil {
					resultsChan <- uploadResult{questionID: questionID, err: err}
					return
				}
				if err := s.answerRepo.AddImage(&model.AnswerImage{AnswerID: answerID, URL: url}); err != nil {
					resultsChan <- uploadResult{questionID: questionID, err: err}
					return
				}
			}
			resultsChan <- uploadResult{questionID: questionID}
		}(questionID, answerID, files)
	}

	wg.Wait()
	close(resultsChan)

	var warnings []string
	for result := range resultsChan {
		if result.err != nil {
			warning := fmt.Sprintf("image upload failed for question %d: %s", result.questionID, result.err.Error())
			warnings = append(warnings, warning)
			log.Warn().Err(result.err).Uint("questionID", result.questionID).Uint("participationID", participation.ID).Msg("Answer image upload failed, submission unaffected")
		}
	}
	return warnings
}
