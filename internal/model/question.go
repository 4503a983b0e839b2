package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID              string           `gorm:"type:uuid;primaryKey" json:"id"`
	Text            string           `gorm:"type:text;not null" json:"question"`
	QuizID          string           `gorm:"type:uuid;not null;index" json:"quiz_id"`
	PossibleAnswers []PossibleAnswer `json:"possible_answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
