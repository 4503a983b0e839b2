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

type QuizService interface {
	CreateQuiz(creator *model.User, req dto.QuizCreateDTO) (*dto.CreatorQuizDTO, error)
	ListForCreator(creator *model.User, filter dto.QuizListFilter) ([]dto.CreatorQuizDTO, error)
	ListActiveForParticipant(user *model.User, filter dto.QuizListFilter) ([]dto.ParticipantQuizDTO, error)
	DeleteQuiz(creator *model.User, quizID string) error
}

type quizService struct {
	quizRepo repository.QuizRepository
	clock    Clock
}

func NewQuizService(quizRepo repository.QuizRepository, clock Clock) QuizService {
	return &quizService{quizRepo: quizRepo, clock: clock}
}

func (s *quizService) CreateQuiz(creator *model.User, req dto.QuizCreateDTO) (*dto.CreatorQuizDTO, error) {
	if creator.Role != model.RoleCreator {
		return nil, apperr.Forbidden("only creators can create quizzes")
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for _, qDto := range req.Questions {
		answers := make([]model.PossibleAnswer, 0, len(qDto.PossibleAnswers))
		for _, aDto := range qDto.PossibleAnswers {
			answers = append(answers, model.PossibleAnswer{
				Text:      aDto.Text,
				IsCorrect: *aDto.IsCorrect,
			})
		}
		questions = append(questions, model.Question{
			Text:            qDto.Text,
			PossibleAnswers: answers,
		})
	}

	quiz := model.Quiz{
		Name:             req.Name,
		TimeLimitMinutes: req.TimeLimitMinutes,
		CreatorID:        creator.ID,
		Questions:        questions,
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("creator_id", creator.ID).Msg("Failed to create quiz")
		return nil, apperr.Internal("failed to create quiz", err)
	}

	created, err := s.quizRepo.FindByIDWithQuestions(quiz.ID)
	if err != nil {
		log.Error().Err(err).Str("quiz_id", quiz.ID).Msg("Failed to reload created quiz")
		return nil, apperr.Internal("failed to load created quiz", err)
	}

	var resp dto.CreatorQuizDTO
	if err := copier.Copy(&resp, created); err != nil {
		return nil, apperr.Internal("failed to prepare quiz response", err)
	}
	return &resp, nil
}

func (s *quizService) ListForCreator(creator *model.User, filter dto.QuizListFilter) ([]dto.CreatorQuizDTO, error) {
	quizzes, err := s.quizRepo.FindByCreator(creator.ID, filter.NameContains, filter.Limit, filter.Offset)
	if err != nil {
		log.Error().Err(err).Str("creator_id", creator.ID).Msg("Failed to list creator quizzes")
		return nil, apperr.Internal("failed to list quizzes", err)
	}

	dtos := make([]dto.CreatorQuizDTO, 0, len(quizzes))
	for i := range quizzes {
		var quizDto dto.CreatorQuizDTO
		if err := copier.Copy(&quizDto, &quizzes[i]); err != nil {
			return nil, apperr.Internal("failed to prepare quiz list response", err)
		}
		dtos = append(dtos, quizDto)
	}
	return dtos, nil
}

func (s *quizService) ListActiveForParticipant(user *model.User, filter dto.QuizListFilter) ([]dto.ParticipantQuizDTO, error) {
	quizzes, err := s.quizRepo.FindActiveForUser(user.ID, s.clock(), filter.Limit, filter.Offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list active quizzes")
		return nil, apperr.Internal("failed to list quizzes", err)
	}

	dtos := make([]dto.ParticipantQuizDTO, 0, len(quizzes))
	for i := range quizzes {
		var quizDto dto.ParticipantQuizDTO
		if err := copier.Copy(&quizDto, &quizzes[i]); err != nil {
			return nil, apperr.Internal("failed to prepare quiz list response", err)
		}
		dtos = append(dtos, quizDto)
	}
	return dtos, nil
}

func (s *quizService) DeleteQuiz(creator *model.User, quizID string) error {
	deleted, err := s.quizRepo.DeleteOwned(quizID, creator.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Quiz not found")
		}
		log.Error().Err(err).Str("quiz_id", quizID).Msg("Failed to delete quiz")
		return apperr.Internal("failed to delete quiz", err)
	}
	if !deleted {
		return apperr.NotFound("Quiz not found")
	}
	return nil
}
