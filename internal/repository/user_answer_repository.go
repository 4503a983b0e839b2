package repository

import (
	"github.com/opercredits/quiz-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserAnswerRepository interface {
	// Upsert writes the answer keyed by (user_quiz, question, answer); a
	// resubmission overwrites is_checked on the existing row.
	Upsert(userAnswer *model.UserAnswer) error
	FindByAttemptAndQuestion(userQuizID, questionID string) ([]model.UserAnswer, error)
}

type userAnswerRepository struct {
	db *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) UserAnswerRepository {
	return &userAnswerRepository{db: db}
}

func (r *userAnswerRepository) Upsert(userAnswer *model.UserAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_quiz_id"},
			{Name: "question_id"},
			{Name: "answer_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"is_checked", "updated_at"}),
	}).Create(userAnswer).Error
}

func (r *userAnswerRepository) FindByAttemptAndQuestion(userQuizID, questionID string) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.db.
		Where("user_quiz_id = ? AND question_id = ?", userQuizID, questionID).
		Order("created_at ASC").
		Find(&answers).Error
	return answers, err
}
