package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	ID               string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string     `gorm:"type:text;not null" json:"name"`
	TimeLimitMinutes int        `gorm:"not null;check:time_limit_minutes > 0" json:"time_limit_minutes"`
	CreatorID        string     `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator          User       `json:"-" gorm:"foreignKey:CreatorID"`
	Questions        []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (q *Quiz) TimeLimit() time.Duration {
	return time.Duration(q.TimeLimitMinutes) * time.Minute
}
