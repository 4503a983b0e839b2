package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opercredits/quiz-api/internal/model"
	"gorm.io/gorm"
)

// memStore backs the per-interface fakes below. The fakes mirror the gorm
// repository contracts: gorm.ErrRecordNotFound for misses, conditional
// accept, natural-key upsert, get-or-create by unique key.
type memStore struct {
	users       []*model.User
	tokens      []*model.Token
	quizzes     []*model.Quiz
	userQuizzes []*model.UserQuiz
	userAnswers []*model.UserAnswer
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) findQuiz(id string) (*model.Quiz, error) {
	for _, q := range s.quizzes {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) findOwnedAttempt(id, userID string) (*model.UserQuiz, error) {
	for _, uq := range s.userQuizzes {
		if uq.ID == id && uq.UserID == userID {
			quiz, err := s.findQuiz(uq.QuizID)
			if err != nil {
				return nil, err
			}
			attempt := *uq
			attempt.Quiz = *quiz
			return &attempt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- repository.UserRepository ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) GetOrCreateByEmail(email string, role model.Role) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	user := &model.User{ID: uuid.NewString(), Email: email, Role: role}
	r.s.users = append(r.s.users, user)
	return user, nil
}

func (r *memUserRepo) FindByID(id string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- repository.TokenRepository ---

type memTokenRepo struct{ s *memStore }

func (r *memTokenRepo) GetOrCreateForUser(userID string) (*model.Token, error) {
	for _, t := range r.s.tokens {
		if t.UserID == userID {
			return t, nil
		}
	}
	token := &model.Token{Key: uuid.NewString(), UserID: userID}
	r.s.tokens = append(r.s.tokens, token)
	return token, nil
}

func (r *memTokenRepo) FindByKey(key string) (*model.Token, error) {
	for _, t := range r.s.tokens {
		if t.Key == key {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- repository.QuizRepository ---

type memQuizRepo struct{ s *memStore }

func (r *memQuizRepo) Create(quiz *model.Quiz) error {
	quiz.ID = uuid.NewString()
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		q.ID = uuid.NewString()
		q.QuizID = quiz.ID
		for j := range q.PossibleAnswers {
			a := &q.PossibleAnswers[j]
			a.ID = uuid.NewString()
			a.QuestionID = q.ID
		}
	}
	r.s.quizzes = append(r.s.quizzes, quiz)
	return nil
}

func (r *memQuizRepo) FindByID(id string) (*model.Quiz, error) {
	return r.s.findQuiz(id)
}

func (r *memQuizRepo) FindByIDWithQuestions(id string) (*model.Quiz, error) {
	return r.s.findQuiz(id)
}

func (r *memQuizRepo) FindByCreator(creatorID string, nameContains string, limit, offset int) ([]model.Quiz, error) {
	var matched []model.Quiz
	for _, q := range r.s.quizzes {
		if q.CreatorID != creatorID {
			continue
		}
		if nameContains != "" && !strings.Contains(strings.ToLower(q.Name), strings.ToLower(nameContains)) {
			continue
		}
		matched = append(matched, *q)
	}
	return paginate(matched, limit, offset), nil
}

func (r *memQuizRepo) FindActiveForUser(userID string, now time.Time, limit, offset int) ([]model.Quiz, error) {
	var matched []model.Quiz
	for _, q := range r.s.quizzes {
		for _, uq := range r.s.userQuizzes {
			if uq.QuizID != q.ID || uq.UserID != userID {
				continue
			}
			attempt := *uq
			attempt.Quiz = *q
			if attempt.ActiveAt(now) {
				matched = append(matched, *q)
				break
			}
		}
	}
	return paginate(matched, limit, offset), nil
}

func (r *memQuizRepo) DeleteOwned(id, creatorID string) (bool, error) {
	for i, q := range r.s.quizzes {
		if q.ID == id && q.CreatorID == creatorID {
			r.s.quizzes = append(r.s.quizzes[:i], r.s.quizzes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// --- repository.QuestionRepository ---

type memQuestionRepo struct{ s *memStore }

func (r *memQuestionRepo) FindByIDForQuiz(id, quizID string) (*model.Question, error) {
	quiz, err := r.s.findQuiz(quizID)
	if err != nil {
		return nil, err
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == id {
			return &quiz.Questions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- repository.UserQuizRepository ---

type memUserQuizRepo struct{ s *memStore }

func (r *memUserQuizRepo) Create(userQuiz *model.UserQuiz) error {
	userQuiz.ID = uuid.NewString()
	r.s.userQuizzes = append(r.s.userQuizzes, userQuiz)
	return nil
}

func (r *memUserQuizRepo) AcceptPending(quizID, userID string, now time.Time) (*model.UserQuiz, error) {
	for _, uq := range r.s.userQuizzes {
		if uq.QuizID == quizID && uq.UserID == userID && uq.StartedAt == nil && uq.FinishedAt == nil {
			started := now
			uq.StartedAt = &started
			return uq, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserQuizRepo) FindActiveForUser(id, userID string, now time.Time) (*model.UserQuiz, error) {
	attempt, err := r.s.findOwnedAttempt(id, userID)
	if err != nil {
		return nil, err
	}
	if !attempt.ActiveAt(now) {
		return nil, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

func (r *memUserQuizRepo) FindOwned(id, userID string) (*model.UserQuiz, error) {
	return r.s.findOwnedAttempt(id, userID)
}

// --- repository.UserAnswerRepository ---

type memUserAnswerRepo struct{ s *memStore }

func (r *memUserAnswerRepo) Upsert(userAnswer *model.UserAnswer) error {
	for _, existing := range r.s.userAnswers {
		if existing.UserQuizID == userAnswer.UserQuizID &&
			existing.QuestionID == userAnswer.QuestionID &&
			sameAnswerID(existing.AnswerID, userAnswer.AnswerID) {
			existing.IsChecked = userAnswer.IsChecked
			return nil
		}
	}
	userAnswer.ID = uuid.NewString()
	r.s.userAnswers = append(r.s.userAnswers, userAnswer)
	return nil
}

func (r *memUserAnswerRepo) FindByAttemptAndQuestion(userQuizID, questionID string) ([]model.UserAnswer, error) {
	var matched []model.UserAnswer
	for _, ua := range r.s.userAnswers {
		if ua.UserQuizID == userQuizID && ua.QuestionID == questionID {
			matched = append(matched, *ua)
		}
	}
	return matched, nil
}

func sameAnswerID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func paginate(quizzes []model.Quiz, limit, offset int) []model.Quiz {
	if offset >= len(quizzes) {
		return nil
	}
	quizzes = quizzes[offset:]
	if limit > 0 && limit < len(quizzes) {
		quizzes = quizzes[:limit]
	}
	return quizzes
}

// fakeMailer records invitations and can be told to fail.
type fakeMailer struct {
	sent []sentInvitation
	err  error
}

type sentInvitation struct {
	email    string
	tokenKey string
	quizID   string
}

func (m *fakeMailer) SendInvitation(email, tokenKey, quizID string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentInvitation{email: email, tokenKey: tokenKey, quizID: quizID})
	return nil
}

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

// seedQuiz stores a quiz with one question and two possible answers, the
// second one correct.
func seedQuiz(s *memStore, creatorID, name string, timeLimitMinutes int) *model.Quiz {
	quiz := &model.Quiz{
		Name:             name,
		TimeLimitMinutes: timeLimitMinutes,
		CreatorID:        creatorID,
		Questions: []model.Question{
			{
				Text: "In which year did the war end?",
				PossibleAnswers: []model.PossibleAnswer{
					{Text: "1918", IsCorrect: false},
					{Text: "1945", IsCorrect: true},
				},
			},
		},
	}
	repo := &memQuizRepo{s: s}
	if err := repo.Create(quiz); err != nil {
		panic(err)
	}
	return quiz
}

func boolPtr(b bool) *bool { return &b }
