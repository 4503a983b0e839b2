package repository

import (
	"time"

	"github.com/opercredits/quiz-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserQuizRepository interface {
	Create(userQuiz *model.UserQuiz) error
	// AcceptPending starts the caller's pending attempt for the quiz.
	// Returns gorm.ErrRecordNotFound when there is nothing to start.
	AcceptPending(quizID, userID string, now time.Time) (*model.UserQuiz, error)
	// FindActiveForUser returns the attempt only while it is active at the
	// given instant, with the full quiz tree preloaded.
	FindActiveForUser(id, userID string, now time.Time) (*model.UserQuiz, error)
	// FindOwned returns the attempt regardless of state, quiz preloaded.
	FindOwned(id, userID string) (*model.UserQuiz, error)
}

type userQuizRepository struct {
	db *gorm.DB
}

func NewUserQuizRepository(db *gorm.DB) UserQuizRepository {
	return &userQuizRepository{db: db}
}

func (r *userQuizRepository) Create(userQuiz *model.UserQuiz) error {
	return r.db.Create(userQuiz).Error
}

func (r *userQuizRepository) AcceptPending(quizID, userID string, now time.Time) (*model.UserQuiz, error) {
	// Single conditional UPDATE: the started_at IS NULL guard and the write are
	// one statement, so of two racing accepts exactly one sees RowsAffected=1.
	var userQuiz model.UserQuiz
	res := r.db.Model(&userQuiz).
		Clauses(clause.Returning{}).
		Where("quiz_id = ? AND user_id = ? AND started_at IS NULL AND finished_at IS NULL", quizID, userID).
		Update("started_at", now)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &userQuiz, nil
}

func (r *userQuizRepository) FindActiveForUser(id, userID string, now time.Time) (*model.UserQuiz, error) {
	var userQuiz model.UserQuiz
	err := r.db.
		Joins("JOIN quizzes ON quizzes.id = user_quizzes.quiz_id").
		Where("user_quizzes.id = ? AND user_quizzes.user_id = ?", id, userID).
		Where(ActiveAttemptCond, now).
		Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("Quiz.Questions.PossibleAnswers").
		First(&userQuiz).Error
	if err != nil {
		return nil, err
	}
	return &userQuiz, nil
}

func (r *userQuizRepository) FindOwned(id, userID string) (*model.UserQuiz, error) {
	var userQuiz model.UserQuiz
	err := r.db.
		Preload("Quiz").
		Where("id = ? AND user_id = ?", id, userID).
		First(&userQuiz).Error
	if err != nil {
		return nil, err
	}
	return &userQuiz, nil
}
