package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserAnswer records whether a participant checked one possible answer of one
// question within an attempt. The (user_quiz, question, answer) triple is the
// natural key; resubmission updates is_checked instead of inserting a second
// row.
type UserAnswer struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserQuizID string          `gorm:"type:uuid;not null;uniqueIndex:idx_user_answer_key" json:"user_quiz_id"`
	UserQuiz   UserQuiz        `json:"-" gorm:"foreignKey:UserQuizID;constraint:OnDelete:CASCADE"`
	QuestionID string          `gorm:"type:uuid;not null;uniqueIndex:idx_user_answer_key" json:"question_id"`
	Question   Question        `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	AnswerID   *string         `gorm:"type:uuid;uniqueIndex:idx_user_answer_key" json:"answer_id"`
	Answer     *PossibleAnswer `json:"-" gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE"`
	IsChecked  *bool           `json:"is_checked"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (ua *UserAnswer) BeforeCreate(tx *gorm.DB) error {
	if ua.ID == "" {
		ua.ID = uuid.NewString()
	}
	return nil
}
