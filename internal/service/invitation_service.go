package service

import (
	"errors"

	"github.com/opercredits/quiz-api/internal/apperr"
	"github.com/opercredits/quiz-api/internal/dto"
	"github.com/opercredits/quiz-api/internal/mailer"
	"github.com/opercredits/quiz-api/internal/model"
	"github.com/opercredits/quiz-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type InvitationService interface {
	Invite(quizID string, req dto.InviteDTO) (*dto.InviteResponseDTO, error)
}

type invitationService struct {
	quizRepo     repository.QuizRepository
	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
	userQuizRepo repository.UserQuizRepository
	mailer       mailer.Mailer
}

func NewInvitationService(
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	userQuizRepo repository.UserQuizRepository,
	mailer mailer.Mailer,
) InvitationService {
	return &invitationService{
		quizRepo:     quizRepo,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		userQuizRepo: userQuizRepo,
		mailer:       mailer,
	}
}

// Invite provisions the participant (account and token are get-or-create, so
// inviting the same address twice reuses both), records the pending attempt
// and dispatches the invitation email. A dispatch failure is returned to the
// caller; the pending attempt stays on file and can be re-invited.
func (s *invitationService) Invite(quizID string, req dto.InviteDTO) (*dto.InviteResponseDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Quiz not found")
		}
		log.Error().Err(err).Str("quiz_id", quizID).Msg("Failed to look up quiz for invitation")
		return nil, apperr.Internal("failed to look up quiz", err)
	}

	user, err := s.userRepo.GetOrCreateByEmail(req.Email, model.RoleParticipant)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to get or create participant")
		return nil, apperr.Internal("failed to provision participant", err)
	}

	token, err := s.tokenRepo.GetOrCreateForUser(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to get or create token")
		return nil, apperr.Internal("failed to provision access token", err)
	}

	userQuiz := model.UserQuiz{
		Email:  req.Email,
		UserID: user.ID,
		QuizID: quiz.ID,
	}
	if err := s.userQuizRepo.Create(&userQuiz); err != nil {
		log.Error().Err(err).Str("quiz_id", quiz.ID).Str("user_id", user.ID).Msg("Failed to create invitation")
		return nil, apperr.Internal("failed to create invitation", err)
	}

	if err := s.mailer.SendInvitation(req.Email, token.Key, quiz.ID); err != nil {
		return nil, apperr.Internal("failed to send invitation email", err)
	}

	log.Info().Str("quiz_id", quiz.ID).Str("user_quiz_id", userQuiz.ID).Msg("Participant invited")
	return &dto.InviteResponseDTO{UserQuizID: userQuiz.ID}, nil
}
