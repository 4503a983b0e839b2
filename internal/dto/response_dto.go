package dto

// Creator and participant views of a quiz are distinct types on purpose: the
// participant shape has no IsCorrect field anywhere, so correct-answer flags
// cannot leak through serialization.

type CreatorPossibleAnswerDTO struct {
	ID        string `json:"id"`
	Text      string `json:"answer"`
	IsCorrect bool   `json:"is_correct"`
}

type CreatorQuestionDTO struct {
	ID              string                     `json:"id"`
	Text            string                     `json:"question"`
	PossibleAnswers []CreatorPossibleAnswerDTO `json:"possible_answers"`
}

type CreatorQuizDTO struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	TimeLimitMinutes int                  `json:"time_limit_minutes"`
	Questions        []CreatorQuestionDTO `json:"questions"`
}

type ParticipantPossibleAnswerDTO struct {
	ID   string `json:"id"`
	Text string `json:"answer"`
}

type ParticipantQuestionDTO struct {
	ID              string                         `json:"id"`
	Text            string                         `json:"question"`
	PossibleAnswers []ParticipantPossibleAnswerDTO `json:"possible_answers"`
}

type ParticipantQuizDTO struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	TimeLimitMinutes int                      `json:"time_limit_minutes"`
	Questions        []ParticipantQuestionDTO `json:"questions"`
}

// UserQuizDTO is the participant's view of an in-progress attempt.
type UserQuizDTO struct {
	ID   string             `json:"id"`
	Quiz ParticipantQuizDTO `json:"quiz"`
}

type InviteResponseDTO struct {
	UserQuizID string `json:"user_quiz_id"`
}

type AcceptResponseDTO struct {
	UserQuizID string `json:"user_quiz_id"`
}

// UserAnswerDTO is one recorded answer row within an attempt.
type UserAnswerDTO struct {
	ID         string  `json:"id"`
	QuestionID string  `json:"question_id"`
	AnswerID   *string `json:"answer_id"`
	IsChecked  *bool   `json:"is_checked"`
}

// SubmitAnswersResponseDTO returns the question together with every answer row
// now on file for it within the attempt.
type SubmitAnswersResponseDTO struct {
	Question ParticipantQuestionDTO `json:"question"`
	Answers  []UserAnswerDTO        `json:"answers"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
