package attempt

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opercredits/quiz-api/internal/apperr"
	"github.com/opercredits/quiz-api/internal/auth"
	"github.com/opercredits/quiz-api/internal/dto"
	"github.com/opercredits/quiz-api/internal/service"
	"github.com/rs/zerolog/log"
)

// Controller serves the participant side of an attempt: accepting the
// invitation, reading the quiz content and uploading answers.
type Controller struct {
	attemptSvc service.AttemptService
}

func NewController(attemptSvc service.AttemptService) *Controller {
	return &Controller{attemptSvc: attemptSvc}
}

func (ctrl *Controller) AcceptInvitation(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication credentials were not provided"})
		return
	}

	resp, err := ctrl.attemptSvc.Accept(user, c.Param("quiz_id"))
	if err != nil {
		c.JSON(apperr.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) GetAttempt(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication credentials were not provided"})
		return
	}

	resp, err := ctrl.attemptSvc.GetActiveAttempt(user, c.Param("id"))
	if err != nil {
		c.JSON(apperr.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) SubmitAnswers(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication credentials were not provided"})
		return
	}

	var req dto.SubmitAnswersDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitAnswersDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.attemptSvc.SubmitAnswers(user, c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}
