package dto

// PossibleAnswerCreateDTO is one choice within a question of a new quiz.
type PossibleAnswerCreateDTO struct {
	Text      string `json:"answer" binding:"required"`
	IsCorrect *bool  `json:"is_correct" binding:"required"`
}

// QuestionCreateDTO is one question within a new quiz.
type QuestionCreateDTO struct {
	Text            string                    `json:"question" binding:"required"`
	PossibleAnswers []PossibleAnswerCreateDTO `json:"possible_answers" binding:"required,min=1,dive"`
}

// QuizCreateDTO is the creator's request to create a quiz with its full
// question/answer tree in one call.
type QuizCreateDTO struct {
	Name             string              `json:"name" binding:"required"`
	TimeLimitMinutes int                 `json:"time_limit_minutes" binding:"required,gt=0"`
	Questions        []QuestionCreateDTO `json:"questions" binding:"dive"`
}

// InviteDTO invites one participant by email.
type InviteDTO struct {
	Email string `json:"email" binding:"required,email"`
}

// SubmittedAnswerDTO marks one possible answer checked or unchecked.
type SubmittedAnswerDTO struct {
	Answer    string `json:"answer" binding:"required,uuid"`
	IsChecked *bool  `json:"is_checked" binding:"required"`
}

// SubmitAnswersDTO uploads a participant's answers for a single question of an
// active attempt.
type SubmitAnswersDTO struct {
	Question string               `json:"question" binding:"required,uuid"`
	Answers  []SubmittedAnswerDTO `json:"answers" binding:"required,min=1,dive"`
}

// QuizListFilter carries the listing query parameters.
type QuizListFilter struct {
	NameContains string
	Limit        int
	Offset       int
}
