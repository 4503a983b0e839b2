package repository

import (
	"github.com/opercredits/quiz-api/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	// FindByIDForQuiz scopes the lookup to one quiz so a question id from a
	// different quiz reads as not found.
	FindByIDForQuiz(id, quizID string) (*model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByIDForQuiz(id, quizID string) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Preload("PossibleAnswers").
		Where("id = ? AND quiz_id = ?", id, quizID).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}
