package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminQuizService interface {
	CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	CreateEvent(req dto.EventCreateDTO) (*dto.EventResponseDTO, error)
	AddEventParticipant(eventID uint, req dto.AddEventParticipantDTO) error
}

type adminQuizService struct {
	quizRepo  repository.QuizRepository
	eventRepo repository.EventRepository
}

func NewAdminQuizService(quizRepo repository.QuizRepository, eventRepo repository.EventRepository) AdminQuizService {
	return &adminQuizService{quizRepo: quizRepo, eventRepo: eventRepo}
}

func (s *adminQuizService) CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	orderMap := make(map[int]bool)
	totalMarks := 0
	var questionsToCreate []model.Question

	for _, qDto := range req.Questions {
		if _, exists := orderMap[qDto.OrderInQuiz]; exists {
			return nil, fmt.Errorf("duplicate OrderInQuiz %d found in questions", qDto.OrderInQuiz)
		}
		orderMap[qDto.OrderInQuiz] = true

		questionModel := model.Question{
			Text:          qDto.Text,
			Type:          qDto.Type,
			Marks:         qDto.Marks,
			OrderInQuiz:   qDto.OrderInQuiz,
			CorrectAnswer: qDto.CorrectAnswer,
		}

		switch qDto.Type {
		case model.QuestionTypeMCQ:
			if len(qDto.Options) < 2 {
				return nil, fmt.Errorf("MCQ question (Order: %d) requires at least 2 options", qDto.OrderInQuiz)
			}
			if qDto.CorrectAnswer == "" {
				return nil, fmt.Errorf("MCQ question (Order: %d) requires a correct answer", qDto.OrderInQuiz)
			}
			found := false
			for i, optText := range qDto.Options {
				questionModel.Options = append(questionModel.Options, model.QuestionOption{OrderNum: i + 1, Text: optText})
				if optText == qDto.CorrectAnswer {
					found = true
				}
			}
			if !found {
				return nil, fmt.Errorf("correct answer %q of question (Order: %d) must match one of its options exactly", qDto.CorrectAnswer, qDto.OrderInQuiz)
			}
		case model.QuestionTypeShort, model.QuestionTypeWritten:
			if len(qDto.Options) > 0 || qDto.CorrectAnswer != "" {
				return nil, fmt.Errorf("%s question (Order: %d) must not carry options or a correct answer", qDto.Type, qDto.OrderInQuiz)
			}
		}

		totalMarks += qDto.Marks
		questionsToCreate = append(questionsToCreate, questionModel)
	}

	if req.PassingMarks > totalMarks {
		return nil, fmt.Errorf("passing marks %d exceed the quiz total of %d", req.PassingMarks, totalMarks)
	}

	if req.EventID != nil {
		if _, err := s.eventRepo.FindByID(*req.EventID); err != nil {
			return nil, fmt.Errorf("event not found with ID %d: %w", *req.EventID, err)
		}
	}

	quizModel := model.Quiz{
		EventID:         req.EventID,
		Title:           req.Title,
		Description:     req.Description,
		Instructions:    req.Instructions,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      totalMarks,
		PassingMarks:    req.PassingMarks,
		IsActive:        true,
		Questions:       questionsToCreate,
	}

	if err := s.quizRepo.Create(&quizModel); err != nil {
		log.Error().Err(err).Msg("Failed to create quiz in database")
		return nil, fmt.Errorf("database error creating quiz: %w", err)
	}

	createdQuiz, err := s.quizRepo.FindByIDWithQuestions(quizModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizModel.ID).Msg("Failed to reload newly created quiz for response")
		createdQuiz = &quizModel
	}

	resp := quizToAdminDTO(createdQuiz)
	return resp, nil
}

func (s *adminQuizService) CreateEvent(req dto.EventCreateDTO) (*dto.EventResponseDTO, error) {
	eventModel := model.Event{Title: req.Title, Description: req.Description}
	if err := s.eventRepo.Create(&eventModel); err != nil {
		log.Error().Err(err).Msg("Failed to create event in database")
		return nil, fmt.Errorf("database error creating event: %w", err)
	}

	var resp dto.EventResponseDTO
	if err := copier.Copy(&resp, &eventModel); err != nil {
		return nil, fmt.Errorf("error preparing event response: %w", err)
	}
	return &resp, nil
}

func (s *adminQuizService) AddEventParticipant(eventID uint, req dto.AddEventParticipantDTO) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		return fmt.Errorf("event not found with ID %d: %w", eventID, err)
	}
	return s.eventRepo.AddParticipant(eventID, req.StudentID)
}

func quizToAdminDTO(quiz *model.Quiz) *dto.QuizResponseDTO {
	resp := &dto.QuizResponseDTO{
		ID:              quiz.ID,
		EventID:         quiz.EventID,
		Title:           quiz.Title,
		Description:     quiz.Description,
		Instructions:    quiz.Instructions,
		DurationMinutes: quiz.DurationMinutes,
		TotalMarks:      quiz.TotalMarks,
		PassingMarks:    quiz.PassingMarks,
		IsActive:        quiz.IsActive,
		CreatedAt:       quiz.CreatedAt,
	}
	for _, q := range quiz.Questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponseDTO{
			ID:            q.ID,
			QuizID:        q.QuizID,
			Text:          q.Text,
			Type:          q.Type,
			Marks:         q.Marks,
			OrderInQuiz:   q.OrderInQuiz,
			Options:       q.OptionTexts(),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return resp
}
