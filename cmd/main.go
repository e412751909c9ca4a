package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mhasanmeet/quizvent/config"
	"github.com/mhasanmeet/quizvent/database"
	"github.com/mhasanmeet/quizvent/internal/attempt"
	adminctrl "github.com/mhasanmeet/quizvent/internal/controller/admin"
	userctrl "github.com/mhasanmeet/quizvent/internal/controller/user"
	"github.com/mhasanmeet/quizvent/internal/logger"
	"github.com/mhasanmeet/quizvent/internal/model"
	"github.com/mhasanmeet/quizvent/internal/repository"
	"github.com/mhasanmeet/quizvent/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quizvent API
// @version 1.0
// @description Quiz and contest platform: timed attempts, automatic MCQ scoring, manual review of written answers and per-quiz leaderboards.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			attempt.NewManager,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewParticipationRepository,
			repository.NewAnswerRepository,
			repository.NewEventRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewUploadStore,
			service.NewGuardService,
			service.NewSubmissionService,
			service.NewAttemptService,
			service.NewUserQuizService,
			service.NewAdminQuizService,
			service.NewLeaderboardService,
			service.NewGradeAssistService,
			service.NewReviewService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewAttemptController,
			userctrl.NewQuizController,
			adminctrl.NewAdminQuizController,
			adminctrl.NewReviewController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RunAttemptTicker),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded answer images for reviewers.
	r.Static("/uploads", cfg.UploadDir)

	return r
}

// RunAttemptTicker drives the per-second countdown of every registered
// attempt. When a clock reaches zero the attempt is auto-submitted with
// whatever answers it holds.
func RunAttemptTicker(lc fx.Lifecycle, manager *attempt.Manager, attemptService service.AttemptService) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				manager.Run(ctx, attemptService.HandleTimeout)
			}()
			log.Info().Msg("Attempt ticker started")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			return nil
		},
	})
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	attemptCtrl *userctrl.AttemptController,
	quizCtrl *userctrl.QuizController,
	adminQuizCtrl *adminctrl.AdminQuizController,
	reviewCtrl *adminctrl.ReviewController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/quizzes", adminQuizCtrl.CreateQuiz)
		adminAPIGroup.POST("/events", adminQuizCtrl.CreateEvent)
		adminAPIGroup.POST("/events/:event_id/participants", adminQuizCtrl.AddEventParticipant)

		adminAPIGroup.GET("/participations/pending", reviewCtrl.ListPending)
		adminAPIGroup.PUT("/participations/:participation_id/answers/:question_id/grade", reviewCtrl.GradeAnswer)
		adminAPIGroup.GET("/participations/:participation_id/answers/:question_id/suggestion", reviewCtrl.SuggestGrade)
		adminAPIGroup.POST("/participations/:participation_id/finalize", reviewCtrl.Finalize)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/quizzes", quizCtrl.GetAllQuizzes)
		userAPIGroup.GET("/quizzes/:quiz_id", quizCtrl.GetQuizDetails)
		userAPIGroup.GET("/quizzes/:quiz_id/participation", quizCtrl.CheckParticipation)
		userAPIGroup.GET("/quizzes/:quiz_id/leaderboard", quizCtrl.GetLeaderboard)
		userAPIGroup.POST("/participations/check", quizCtrl.CheckParticipationBody)
		userAPIGroup.GET("/participations/:participation_id", quizCtrl.GetParticipation)

		userAPIGroup.POST("/quizzes/:quiz_id/attempts", attemptCtrl.StartAttempt)
		userAPIGroup.GET("/attempts/:attempt_id", attemptCtrl.GetAttempt)
		userAPIGroup.PUT("/attempts/:attempt_id/answers", attemptCtrl.SubmitAnswer)
		userAPIGroup.POST("/attempts/:attempt_id/next", attemptCtrl.NextQuestion)
		userAPIGroup.POST("/attempts/:attempt_id/previous", attemptCtrl.PreviousQuestion)
		userAPIGroup.POST("/attempts/:attempt_id/submit", attemptCtrl.SubmitAttempt)
		userAPIGroup.DELETE("/attempts/:attempt_id", attemptCtrl.AbandonAttempt)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quizvent API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Event{},
		&model.EventParticipant{},
		&model.Quiz{},
		&model.Question{},
		&model.QuestionOption{},
		&model.Participation{},
		&model.Answer{},
		&model.AnswerImage{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
