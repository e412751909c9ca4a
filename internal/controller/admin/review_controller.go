package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/quizerr"
	"github.com/mhasanmeet/quizvent/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

func writeReviewError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, quizerr.ErrAnswerNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, quizerr.ErrParticipationTerminal):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, quizerr.ErrMarksExceedMaximum), errors.Is(err, quizerr.ErrQuestionNotReviewable):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("Review: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

// ListPending godoc
// @Summary (Admin) List participations awaiting review
// @Description All participations still in "pending", oldest first, with their answers.
// @Tags Admin - Review
// @Produce json
// @Success 200 {array} dto.ParticipationDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/participations/pending [get]
func (c *ReviewController) ListPending(ctx *gin.Context) {
	participations, err := c.reviewService.ListPending()
	if err != nil {
		writeReviewError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, participations)
}

// GradeAnswer godoc
// @Summary (Admin) Grade one subjective answer
// @Description Sets the reviewed marks for a Short/Written answer and recomputes the participation total.
// @Tags Admin - Review
// @Accept json
// @Produce json
// @Param participation_id path int true "Participation ID"
// @Param question_id path int true "Question ID"
// @Param grade body dto.GradeAnswerDTO true "Marks and correctness verdict"
// @Success 200 {object} dto.ParticipationDTO
// @Failure 400 {object} dto.ErrorResponse "Marks exceed the question maximum"
// @Failure 404 {object} dto.ErrorResponse "Participation or answer not found"
// @Failure 409 {object} dto.ErrorResponse "Participation already finalized"
// @Router /admin/participations/{participation_id}/answers/{question_id}/grade [put]
func (c *ReviewController) GradeAnswer(ctx *gin.Context) {
	participationID, err := strconv.ParseUint(ctx.Param("participation_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid participation ID format"})
		return
	}
	questionID, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	var req dto.GradeAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	participation, err := c.reviewService.GradeAnswer(uint(participationID), uint(questionID), req)
	if err != nil {
		writeReviewError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, participation)
}

// Finalize godoc
// @Summary (Admin) Finalize a participation
// @Description Closes the review. With no explicit status the outcome is derived from the total against the quiz passing marks.
// @Tags Admin - Review
// @Accept json
// @Produce json
// @Param participation_id path int true "Participation ID"
// @Param finalize body dto.FinalizeParticipationDTO false "Optional explicit status"
// @Success 200 {object} dto.ParticipationDTO
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Failure 409 {object} dto.ErrorResponse "Participation already finalized"
// @Router /admin/participations/{participation_id}/finalize [post]
func (c *ReviewController) Finalize(ctx *gin.Context) {
	participationID, err := strconv.ParseUint(ctx.Param("participation_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid participation ID format"})
		return
	}

	var req dto.FinalizeParticipationDTO
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	participation, err := c.reviewService.Finalize(uint(participationID), req)
	if err != nil {
		writeReviewError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, participation)
}

// SuggestGrade godoc
// @Summary (Admin) Get an advisory grade suggestion
// @Description Asks the assist model for a draft score and feedback on a Short/Written answer, including its uploaded images. The suggestion is never persisted.
// @Tags Admin - Review
// @Produce json
// @Param participation_id path int true "Participation ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.GradeSuggestionDTO
// @Failure 400 {object} dto.ErrorResponse "Question is MCQ"
// @Failure 404 {object} dto.ErrorResponse "Participation or answer not found"
// @Failure 500 {object} dto.ErrorResponse "Assist model unavailable"
// @Router /admin/participations/{participation_id}/answers/{question_id}/suggestion [get]
func (c *ReviewController) SuggestGrade(ctx *gin.Context) {
	participationID, err := strconv.ParseUint(ctx.Param("participation_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid participation ID format"})
		return
	}
	questionID, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	suggestion, err := c.reviewService.SuggestGrade(uint(participationID), uint(questionID))
	if err != nil {
		writeReviewError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, suggestion)
}
