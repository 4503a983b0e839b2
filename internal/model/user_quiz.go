package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserQuiz is one participant's attempt at one quiz. Its lifecycle state is
// derived from the timestamps, never stored:
//
//	pending:  started_at null, finished_at null
//	active:   started_at set, finished_at null, now <= started_at + time limit
//	expired:  started_at set, finished_at null, now past the deadline
//	finished: finished_at set
//
// The user reference is protected (OnDelete:RESTRICT) so historical attempts
// keep their owner.
type UserQuiz struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string     `gorm:"type:text;not null" json:"email"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	QuizID      string     `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz        Quiz       `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	ResultsSent bool       `gorm:"not null;default:false" json:"results_sent"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (uq *UserQuiz) BeforeCreate(tx *gorm.DB) error {
	if uq.ID == "" {
		uq.ID = uuid.NewString()
	}
	return nil
}

// Deadline is the instant the attempt expires. Only meaningful once started;
// the Quiz association must be loaded.
func (uq *UserQuiz) Deadline() time.Time {
	return uq.StartedAt.Add(uq.Quiz.TimeLimit())
}

// ActiveAt reports whether the attempt is open for answers at the given
// instant. The Quiz association must be loaded. The SQL equivalent lives in
// repository.ActiveAttemptCond; the two must express the same predicate.
func (uq *UserQuiz) ActiveAt(now time.Time) bool {
	return uq.StartedAt != nil && uq.FinishedAt == nil && !now.After(uq.Deadline())
}
