package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PossibleAnswer struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"answer"`
	IsCorrect  bool      `gorm:"not null" json:"is_correct"`
	QuestionID string    `gorm:"type:uuid;not null;index" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a *PossibleAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
