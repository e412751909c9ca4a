package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	userQuizService    service.UserQuizService
	guardService       service.GuardService
	leaderboardService service.LeaderboardService
}

func NewQuizController(
	userQuizService service.UserQuizService,
	guardService service.GuardService,
	leaderboardService service.LeaderboardService,
) *QuizController {
	return &QuizController{
		userQuizService:    userQuizService,
		guardService:       guardService,
		leaderboardService: leaderboardService,
	}
}

// GetAllQuizzes godoc
// @Summary (User) List all quizzes
// @Description Get every quiz with its question count.
// @Tags User - Quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [get]
func (c *QuizController) GetAllQuizzes(ctx *gin.Context) {
	quizzes, err := c.userQuizService.GetAllQuizzes()
	if err != nil {
		log.Error().Err(err).Msg("GetAllQuizzes: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quizzes", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuizDetails godoc
// @Summary (User) Get quiz details
// @Description Full quiz view for a participant. Correct answers are never included.
// @Tags User - Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuizDetails(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}

	details, err := c.userQuizService.GetQuizDetails(uint(quizID))
	if err != nil {
		log.Warn().Err(err).Uint64("quizID", quizID).Msg("GetQuizDetails: quiz not found")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// CheckParticipation godoc
// @Summary (User) Check participation status
// @Description Reports whether a student already has a participation record for the quiz. Any existing record, including a failed one, blocks a new attempt.
// @Tags User - Participations
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param student_id query int true "Student ID"
// @Success 200 {object} dto.ParticipationCheckDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id}/participation [get]
func (c *QuizController) CheckParticipation(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}
	studentID, err := strconv.ParseUint(ctx.Query("student_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing student_id query parameter"})
		return
	}

	check, err := c.guardService.CheckParticipation(uint(studentID), uint(quizID))
	if err != nil {
		log.Error().Err(err).Msg("CheckParticipation: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check participation", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, check)
}

// CheckParticipationBody godoc
// @Summary (User) Check participation status (body variant)
// @Description Same check as the query-parameter endpoint, taking student and quiz ids in the request body.
// @Tags User - Participations
// @Accept json
// @Produce json
// @Param request body dto.ParticipationCheckRequestDTO true "Student and quiz to check"
// @Success 200 {object} dto.ParticipationCheckDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participations/check [post]
func (c *QuizController) CheckParticipationBody(ctx *gin.Context) {
	var req dto.ParticipationCheckRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	check, err := c.guardService.CheckParticipation(req.StudentID, req.QuizID)
	if err != nil {
		log.Error().Err(err).Msg("CheckParticipation: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check participation", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, check)
}

// GetLeaderboard godoc
// @Summary (User) Get the quiz leaderboard
// @Description Standings recomputed on every request: ordered by obtained marks descending, ties broken by earlier submission. Filter with ?status=completed|failed|pending; without a filter every record is ranked.
// @Tags User - Leaderboard
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param status query string false "Filter by participation status" Enums(pending, completed, failed)
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID or status value"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/leaderboard [get]
func (c *QuizController) GetLeaderboard(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quiz_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}

	status := ctx.Query("status")
	switch status {
	case "", model.ParticipationStatusPending, model.ParticipationStatusCompleted, model.ParticipationStatusFailed:
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid status filter: " + status})
		return
	}

	entries, err := c.leaderboardService.Rank(uint(quizID), status)
	if err != nil {
		log.Warn().Err(err).Uint64("quizID", quizID).Msg("GetLeaderboard: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetParticipation godoc
// @Summary (User) Get a participation record
// @Description Full participation with graded answers and any uploaded image URLs.
// @Tags User - Participations
// @Produce json
// @Param participation_id path int true "Participation ID"
// @Success 200 {object} dto.ParticipationDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /participations/{participation_id} [get]
func (c *QuizController) GetParticipation(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("participation_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid participation ID format"})
		return
	}

	participation, err := c.userQuizService.GetParticipation(uint(id))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, participation)
}
