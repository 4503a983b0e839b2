package attempt

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/opercredits/quiz-api/internal/apperr"
	"github.com/opercredits/quiz-api/internal/auth"
	"github.com/opercredits/quiz-api/internal/dto"
	"github.com/opercredits/quiz-api/internal/model"
	"gorm.io/gorm"
)

type stubAttemptService struct {
	acceptResp  *dto.AcceptResponseDTO
	acceptErr   error
	getResp     *dto.UserQuizDTO
	getErr      error
	submitResp  *dto.SubmitAnswersResponseDTO
	submitErr   error
	submitCalls int
}

func (s *stubAttemptService) Accept(user *model.User, quizID string) (*dto.AcceptResponseDTO, error) {
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return s.acceptResp, nil
}

func (s *stubAttemptService) GetActiveAttempt(user *model.User, userQuizID string) (*dto.UserQuizDTO, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getResp, nil
}

func (s *stubAttemptService) SubmitAnswers(user *model.User, userQuizID string, req dto.SubmitAnswersDTO) (*dto.SubmitAnswersResponseDTO, error) {
	s.submitCalls++
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.submitResp, nil
}

type stubTokenRepo struct {
	token *model.Token
}

func (r *stubTokenRepo) GetOrCreateForUser(userID string) (*model.Token, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTokenRepo) FindByKey(key string) (*model.Token, error) {
	if r.token != nil && r.token.Key == key {
		return r.token, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestRouter(svc *stubAttemptService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewController(svc)

	participant := model.User{ID: "u1", Role: model.RoleParticipant}
	tokens := &stubTokenRepo{token: &model.Token{Key: "key", UserID: participant.ID, User: participant}}

	api := router.Group("/api")
	api.Use(auth.TokenAuth(tokens))
	api.POST("/quizzes/:quiz_id/accept", ctrl.AcceptInvitation)
	api.GET("/user_quizzes/:id", ctrl.GetAttempt)
	api.POST("/user_quizzes/:id/answers", ctrl.SubmitAnswers)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAcceptInvitation(t *testing.T) {
	router := newTestRouter(&stubAttemptService{acceptResp: &dto.AcceptResponseDTO{UserQuizID: "uq1"}})

	rec := doJSON(router, http.MethodPost, "/api/quizzes/q1/accept", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"user_quiz_id":"uq1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAcceptInvitationNotFound(t *testing.T) {
	router := newTestRouter(&stubAttemptService{acceptErr: apperr.NotFound("Either not found or already started")})

	rec := doJSON(router, http.MethodPost, "/api/quizzes/q1/accept", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Either not found or already started") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetAttempt(t *testing.T) {
	router := newTestRouter(&stubAttemptService{getResp: &dto.UserQuizDTO{
		ID:   "uq1",
		Quiz: dto.ParticipantQuizDTO{ID: "q1", Name: "History"},
	}})

	rec := doJSON(router, http.MethodGet, "/api/user_quizzes/uq1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "is_correct") {
		t.Fatalf("attempt view leaked is_correct: %s", rec.Body.String())
	}
}

func TestSubmitAnswers(t *testing.T) {
	svc := &stubAttemptService{submitResp: &dto.SubmitAnswersResponseDTO{
		Question: dto.ParticipantQuestionDTO{ID: "qq1"},
	}}
	router := newTestRouter(svc)

	body := `{"question":"3e2cc404-593c-4a30-bb85-aba6174636eb","answers":[{"answer":"4ec404ba-593c-4a30-bb85-aba6174636eb","is_checked":true}]}`
	rec := doJSON(router, http.MethodPost, "/api/user_quizzes/uq1/answers", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitAnswersBadBody(t *testing.T) {
	svc := &stubAttemptService{}
	router := newTestRouter(svc)

	// Missing is_checked fails binding before the service is reached.
	body := `{"question":"3e2cc404-593c-4a30-bb85-aba6174636eb","answers":[{"answer":"4ec404ba-593c-4a30-bb85-aba6174636eb"}]}`
	rec := doJSON(router, http.MethodPost, "/api/user_quizzes/uq1/answers", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.submitCalls != 0 {
		t.Fatal("invalid body must not reach the service")
	}
}
