package quiz

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opercredits/quiz-api/internal/apperr"
	"github.com/opercredits/quiz-api/internal/auth"
	"github.com/opercredits/quiz-api/internal/dto"
	"github.com/opercredits/quiz-api/internal/model"
	"github.com/opercredits/quiz-api/internal/service"
	"github.com/rs/zerolog/log"
)

const defaultPageLimit = 50

// Controller serves the quiz CRUD surface and the invitation endpoint.
type Controller struct {
	quizSvc   service.QuizService
	inviteSvc service.InvitationService
}

func NewController(quizSvc service.QuizService, inviteSvc service.InvitationService) *Controller {
	return &Controller{quizSvc: quizSvc, inviteSvc: inviteSvc}
}

// ListQuizzes dispatches on the caller's role: creators see their own quizzes
// (optionally filtered by name), participants see quizzes with a currently
// active attempt.
func (ctrl *Controller) ListQuizzes(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication credentials were not provided"})
		return
	}

	filter := parseListFilter(c)

	switch user.Role {
	case model.RoleCreator:
		quizzes, err := ctrl.quizSvc.ListForCreator(user, filter)
		if err != nil {
			c.JSON(apperr.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, quizzes)
	case model.RoleParticipant:
		quizzes, err := ctrl.quizSvc.ListActiveForParticipant(user, filter)
		if err != nil {
			c.JSON(apperr.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, quizzes)
	default:
		log.Error().Str("role", string(user.Role)).Msg("Unknown role in quiz listing")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Unknown user role"})
	}
}

func (ctrl *Controller) CreateQuiz(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication credentials were not provided"})
		return
	}

	var req dto.QuizCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuizCreateDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.quizSvc.CreateQuiz(user, req)
	if err != nil {
		c.JSON(apperr.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) DeleteQuiz(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication credentials were not provided"})
		return
	}

	if err := ctrl.quizSvc.DeleteQuiz(user, c.Param("quiz_id")); err != nil {
		c.JSON(apperr.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *Controller) InviteParticipant(c *gin.Context) {
	var req dto.InviteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind InviteDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.inviteSvc.Invite(c.Param("quiz_id"), req)
	if err != nil {
		c.JSON(apperr.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func parseListFilter(c *gin.Context) dto.QuizListFilter {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return dto.QuizListFilter{
		NameContains: c.Query("name_contains"),
		Limit:        limit,
		Offset:       offset,
	}
}
