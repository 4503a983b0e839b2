package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"github.com/opercredits/quiz-api/internal/apperr"
	"github.com/opercredits/quiz-api/internal/dto"
	"github.com/opercredits/quiz-api/internal/model"
	"github.com/opercredits/quiz-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AttemptService interface {
	Accept(user *model.User, quizID string) (*dto.AcceptResponseDTO, error)
	GetActiveAttempt(user *model.User, userQuizID string) (*dto.UserQuizDTO, error)
	SubmitAnswers(user *model.User, userQuizID string, req dto.SubmitAnswersDTO) (*dto.SubmitAnswersResponseDTO, error)
}

type attemptService struct {
	userQuizRepo   repository.UserQuizRepository
	questionRepo   repository.QuestionRepository
	userAnswerRepo repository.UserAnswerRepository
	clock          Clock
}

func NewAttemptService(
	userQuizRepo repository.UserQuizRepository,
	questionRepo repository.QuestionRepository,
	userAnswerRepo repository.UserAnswerRepository,
	clock Clock,
) AttemptService {
	return &attemptService{
		userQuizRepo:   userQuizRepo,
		questionRepo:   questionRepo,
		userAnswerRepo: userAnswerRepo,
		clock:          clock,
	}
}

// Accept starts the caller's pending attempt for the quiz. Wrong quiz, wrong
// caller, already started and already finished all collapse into the same
// NotFound so the response doesn't reveal which it was.
func (s *attemptService) Accept(user *model.User, quizID string) (*dto.AcceptResponseDTO, error) {
	userQuiz, err := s.userQuizRepo.AcceptPending(quizID, user.ID, s.clock())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Either not found or already started")
		}
		log.Error().Err(err).Str("quiz_id", quizID).Str("user_id", user.ID).Msg("Failed to accept invitation")
		return nil, apperr.Internal("failed to accept invitation", err)
	}

	log.Info().Str("user_quiz_id", userQuiz.ID).Msg("Invitation accepted")
	return &dto.AcceptResponseDTO{UserQuizID: userQuiz.ID}, nil
}

func (s *attemptService) GetActiveAttempt(user *model.User, userQuizID string) (*dto.UserQuizDTO, error) {
	userQuiz, err := s.userQuizRepo.FindActiveForUser(userQuizID, user.ID, s.clock())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Quiz not found")
		}
		log.Error().Err(err).Str("user_quiz_id", userQuizID).Msg("Failed to load attempt")
		return nil, apperr.Internal("failed to load attempt", err)
	}

	var resp dto.UserQuizDTO
	if err := copier.Copy(&resp, userQuiz); err != nil {
		return nil, apperr.Internal("failed to prepare attempt response", err)
	}
	return &resp, nil
}

// SubmitAnswers upserts the caller's answers for one question of an active
// attempt. The deadline is re-checked here, not only at listing time: an
// out-of-window submission is rejected outright.
func (s *attemptService) SubmitAnswers(user *model.User, userQuizID string, req dto.SubmitAnswersDTO) (*dto.SubmitAnswersResponseDTO, error) {
	userQuiz, err := s.userQuizRepo.FindOwned(userQuizID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Quiz not found")
		}
		log.Error().Err(err).Str("user_quiz_id", userQuizID).Msg("Failed to load attempt for submission")
		return nil, apperr.Internal("failed to load attempt", err)
	}
	if !userQuiz.ActiveAt(s.clock()) {
		return nil, apperr.NotFound("Quiz not found")
	}

	question, err := s.questionRepo.FindByIDForQuiz(req.Question, userQuiz.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Question not found")
		}
		log.Error().Err(err).Str("question_id", req.Question).Msg("Failed to load question for submission")
		return nil, apperr.Internal("failed to load question", err)
	}

	possible := make(map[string]bool, len(question.PossibleAnswers))
	for _, pa := range question.PossibleAnswers {
		possible[pa.ID] = true
	}
	// Validate the whole batch before writing anything.
	for _, submitted := range req.Answers {
		if !possible[submitted.Answer] {
			return nil, apperr.NotFound("Answer not found")
		}
	}

	for _, submitted := range req.Answers {
		answerID := submitted.Answer
		userAnswer := model.UserAnswer{
			UserQuizID: userQuiz.ID,
			QuestionID: question.ID,
			AnswerID:   &answerID,
			IsChecked:  submitted.IsChecked,
		}
		if err := s.userAnswerRepo.Upsert(&userAnswer); err != nil {
			log.Error().Err(err).Str("user_quiz_id", userQuiz.ID).Str("answer_id", answerID).Msg("Failed to upsert answer")
			return nil, apperr.Internal("failed to record answer", err)
		}
	}

	recorded, err := s.userAnswerRepo.FindByAttemptAndQuestion(userQuiz.ID, question.ID)
	if err != nil {
		log.Error().Err(err).Str("user_quiz_id", userQuiz.ID).Msg("Failed to load recorded answers")
		return nil, apperr.Internal("failed to load recorded answers", err)
	}

	var resp dto.SubmitAnswersResponseDTO
	if err := copier.Copy(&resp.Question, question); err != nil {
		return nil, apperr.Internal("failed to prepare submission response", err)
	}
	resp.Answers = make([]dto.UserAnswerDTO, 0, len(recorded))
	for i := range recorded {
		var answerDto dto.UserAnswerDTO
		if err := copier.Copy(&answerDto, &recorded[i]); err != nil {
			return nil, apperr.Internal("failed to prepare submission response", err)
		}
		resp.Answers = append(resp.Answers, answerDto)
	}
	return &resp, nil
}
