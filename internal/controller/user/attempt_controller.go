package user

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/quizerr"
	"github.com/mhasanmeet/quizvent/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// writeAttemptError translates domain errors into HTTP responses. Conflicts
// (already participated, duplicate attempt, bad phase, submission in flight)
// map to 409, unknown attempts and quizzes to 404.
func writeAttemptError(ctx *gin.Context, err error) {
	var alreadyErr *quizerr.AlreadyParticipatedError
	var stateErr *quizerr.InvalidStateError
	var inFlightErr *quizerr.SubmissionInProgressError

	switch {
	case errors.As(err, &alreadyErr), errors.As(err, &stateErr), errors.As(err, &inFlightErr),
		errors.Is(err, quizerr.ErrAttemptActive), errors.Is(err, quizerr.ErrQuizInactive):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, quizerr.ErrAttemptNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, quizerr.ErrQuestionNotInQuiz), errors.Is(err, quizerr.ErrQuizHasNoQuestions):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

// StartAttempt godoc
// @Summary (User) Start a quiz attempt
// @Description Opens a timed attempt on a quiz after the participation guard passes. A student gets exactly one participation per quiz.
// @Tags User - Attempts
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param request body dto.StartAttemptDTO true "Student starting the attempt"
// @Success 201 {object} dto.AttemptStateDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 409 {object} dto.ErrorResponse "Student already participated or has an active attempt"
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}

	var req dto.StartAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartAttempt: failed to bind request body")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	state, err := c.attemptService.Start(uint(quizID), req)
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

// GetAttempt godoc
// @Summary (User) Get the current attempt state
// @Description Snapshot of an in-progress attempt: phase, position, remaining time and the answer set.
// @Tags User - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptStateDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	state, err := c.attemptService.Get(ctx.Param("attempt_id"))
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// SubmitAnswer godoc
// @Summary (User) Record an answer
// @Description Records or replaces the answer for one question of the attempt. MCQ answers are graded immediately; Short/Written answers wait for manual review.
// @Tags User - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param answer body dto.AnswerUpdateDTO true "Question and chosen value"
// @Success 200 {object} dto.AttemptStateDTO
// @Failure 400 {object} dto.ErrorResponse "Question does not belong to the quiz"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt is not in progress"
// @Router /attempts/{attempt_id}/answers [put]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	var req dto.AnswerUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	state, err := c.attemptService.Answer(ctx.Param("attempt_id"), req)
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// NextQuestion godoc
// @Summary (User) Move to the next question
// @Description Advances the attempt's position. Already at the last question is a no-op, not an error.
// @Tags User - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptStateDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt is not in progress"
// @Router /attempts/{attempt_id}/next [post]
func (c *AttemptController) NextQuestion(ctx *gin.Context) {
	state, err := c.attemptService.Next(ctx.Param("attempt_id"))
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// PreviousQuestion godoc
// @Summary (User) Move to the previous question
// @Description Moves the attempt's position back. Already at the first question is a no-op, not an error.
// @Tags User - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptStateDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt is not in progress"
// @Router /attempts/{attempt_id}/previous [post]
func (c *AttemptController) PreviousQuestion(ctx *gin.Context) {
	state, err := c.attemptService.Previous(ctx.Param("attempt_id"))
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// SubmitAttempt godoc
// @Summary (User) Submit the attempt
// @Description Commits the attempt as a participation record. Supporting images for Short/Written answers go into multipart fields named images_<question_id>; their upload is best effort and never fails the submission.
// @Tags User - Attempts
// @Accept multipart/form-data
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed or a submission is in flight"
// @Failure 500 {object} dto.ErrorResponse "Submission could not be persisted"
// @Router /attempts/{attempt_id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	images, err := collectAnswerImages(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded images", Details: []string{err.Error()}})
		return
	}

	result, err := c.attemptService.Submit(ctx.Param("attempt_id"), images)
	if err != nil {
		writeAttemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// AbandonAttempt godoc
// @Summary (User) Abandon the attempt
// @Description Discards an in-progress attempt without creating a participation record. The student may start fresh afterwards.
// @Tags User - Attempts
// @Param attempt_id path string true "Attempt ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /attempts/{attempt_id} [delete]
func (c *AttemptController) AbandonAttempt(ctx *gin.Context) {
	if err := c.attemptService.Abandon(ctx.Param("attempt_id")); err != nil {
		writeAttemptError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// collectAnswerImages reads multipart fields of the form images_<question_id>
// into memory. A submit without a multipart body is valid and yields nil.
func collectAnswerImages(ctx *gin.Context) (map[uint][]service.UploadFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil
		}
		return nil, err
	}

	images := make(map[uint][]service.UploadFile)
	for field, headers := range form.File {
		if !strings.HasPrefix(field, "images_") {
			continue
		}
		questionID, err := strconv.ParseUint(strings.TrimPrefix(field, "images_"), 10, 32)
		if err != nil {
			log.Warn().Str("field", field).Msg("SubmitAttempt: skipping multipart field with non-numeric question id")
			continue
		}

		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return nil, err
			}
			images[uint(questionID)] = append(images[uint(questionID)], service.UploadFile{Name: header.Filename, Data: data})
		}
	}
	if len(images) == 0 {
		return nil, nil
	}
	return images, nil
}
