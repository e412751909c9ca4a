package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mhasanmeet/quizvent/internal/dto"
	"github.com/mhasanmeet/quizvent/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminQuizController struct {
	adminQuizService service.AdminQuizService
}

func NewAdminQuizController(adminQuizService service.AdminQuizService) *AdminQuizController {
	return &AdminQuizController{adminQuizService: adminQuizService}
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz with its questions
// @Description Creates a quiz and all its questions in one call. MCQ questions need at least two options and a correct answer matching one option exactly; Short/Written questions carry neither. Total marks are summed from the questions.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Param quiz body dto.QuizCreateDTO true "Quiz data including questions"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz or question data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes [post]
func (c *AdminQuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuiz: failed to bind request body")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.adminQuizService.CreateQuiz(req)
	if err != nil {
		if strings.Contains(err.Error(), "database error") {
			log.Error().Err(err).Msg("CreateQuiz: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create quiz", Details: []string{err.Error()}})
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// CreateEvent godoc
// @Summary (Admin) Create an event
// @Description Creates a contest event that quizzes can be attached to.
// @Tags Admin - Events
// @Accept json
// @Produce json
// @Param event body dto.EventCreateDTO true "Event data"
// @Success 201 {object} dto.EventResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/events [post]
func (c *AdminQuizController) CreateEvent(ctx *gin.Context) {
	var req dto.EventCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	event, err := c.adminQuizService.CreateEvent(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateEvent: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create event", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, event)
}

// AddEventParticipant godoc
// @Summary (Admin) Register a student into an event
// @Description Adds a student to an event's participant list. Registration is idempotent.
// @Tags Admin - Events
// @Accept json
// @Produce json
// @Param event_id path int true "Event ID"
// @Param participant body dto.AddEventParticipantDTO true "Student to register"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{event_id}/participants [post]
func (c *AdminQuizController) AddEventParticipant(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("event_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid event ID format"})
		return
	}

	var req dto.AddEventParticipantDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.adminQuizService.AddEventParticipant(uint(eventID), req); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}
