package repository

import (
	"time"

	"github.com/opercredits/quiz-api/internal/model"
	"gorm.io/gorm"
)

// ActiveAttemptCond is the SQL form of model.UserQuiz.ActiveAt: started, not
// finished, and the deadline has not passed at the bound instant. The listing
// filter and the in-process predicate must stay the same formula.
const ActiveAttemptCond = "user_quizzes.started_at IS NOT NULL" +
	" AND user_quizzes.finished_at IS NULL" +
	" AND ? <= user_quizzes.started_at + make_interval(mins => quizzes.time_limit_minutes)"

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id string) (*model.Quiz, error)
	FindByIDWithQuestions(id string) (*model.Quiz, error)
	FindByCreator(creatorID string, nameContains string, limit, offset int) ([]model.Quiz, error)
	FindActiveForUser(userID string, now time.Time, limit, offset int) ([]model.Quiz, error)
	DeleteOwned(id, creatorID string) (bool, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// Association create: questions and possible answers are inserted with the
	// quiz in one transaction.
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByIDWithQuestions(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("Questions.PossibleAnswers").
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByCreator(creatorID string, nameContains string, limit, offset int) ([]model.Quiz, error) {
	query := r.db.Where("creator_id = ?", creatorID)
	if nameContains != "" {
		query = query.Where("name ILIKE ?", "%"+nameContains+"%")
	}

	var quizzes []model.Quiz
	err := query.
		Preload("Questions.PossibleAnswers").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindActiveForUser(userID string, now time.Time, limit, offset int) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Distinct("quizzes.*").
		Joins("JOIN user_quizzes ON user_quizzes.quiz_id = quizzes.id").
		Where("user_quizzes.user_id = ?", userID).
		Where(ActiveAttemptCond, now).
		Preload("Questions.PossibleAnswers").
		Limit(limit).Offset(offset).
		Find(&quizzes).Error
	return quizzes, err
}

// DeleteOwned removes the quiz only when it belongs to the creator; questions,
// possible answers and attempts go with it via the FK cascade. Returns false
// when no row matched.
func (r *quizRepository) DeleteOwned(id, creatorID string) (bool, error) {
	res := r.db.Where("id = ? AND creator_id = ?", id, creatorID).Delete(&model.Quiz{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
