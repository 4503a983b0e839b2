package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/opercredits/quiz-api/config"
	"github.com/opercredits/quiz-api/database"
	"github.com/opercredits/quiz-api/internal/auth"
	attemptctrl "github.com/opercredits/quiz-api/internal/controller/attempt"
	quizctrl "github.com/opercredits/quiz-api/internal/controller/quiz"
	"github.com/opercredits/quiz-api/internal/logger"
	"github.com/opercredits/quiz-api/internal/mailer"
	"github.com/opercredits/quiz-api/internal/model"
	"github.com/opercredits/quiz-api/internal/repository"
	"github.com/opercredits/quiz-api/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			func() service.Clock { return service.SystemClock },
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTokenRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewUserQuizRepository,
			repository.NewUserAnswerRepository,
		),

		// Services layer
		fx.Provide(
			mailer.NewSMTPMailer,
			service.NewQuizService,
			service.NewInvitationService,
			service.NewAttemptService,
		),

		// API controllers layer
		fx.Provide(
			quizctrl.NewController,
			attemptctrl.NewController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Route gin's request log through zerolog.
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

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokenRepo repository.TokenRepository,
	quizCtrl *quizctrl.Controller,
	attemptCtrl *attemptctrl.Controller,
) {
	api := router.Group("/api")
	api.Use(auth.TokenAuth(tokenRepo))
	{
		api.GET("/quizzes", quizCtrl.ListQuizzes)
		api.POST("/quizzes", auth.RequireRole(model.RoleCreator), quizCtrl.CreateQuiz)
		api.DELETE("/quizzes/:quiz_id", auth.RequireRole(model.RoleCreator), quizCtrl.DeleteQuiz)
		api.POST("/quizzes/:quiz_id/invite", auth.RequireRole(model.RoleCreator), quizCtrl.InviteParticipant)
		api.POST("/quizzes/:quiz_id/accept", attemptCtrl.AcceptInvitation)

		api.GET("/user_quizzes/:id", attemptCtrl.GetAttempt)
		api.POST("/user_quizzes/:id/answers", attemptCtrl.SubmitAnswers)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Token{},
		&model.Quiz{},
		&model.Question{},
		&model.PossibleAnswer{},
		&model.UserQuiz{},
		&model.UserAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
