package mailer

import (
	"fmt"

	"github.com/opercredits/quiz-api/config"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Mailer dispatches invitation emails. Transport failures are returned, never
// swallowed; the invite endpoint surfaces them to the caller.
type Mailer interface {
	SendInvitation(email, tokenKey, quizID string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password),
		from:   cfg.SMTP.From,
	}
}

func (m *smtpMailer) SendInvitation(email, tokenKey, quizID string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Quiz invitation")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello there! Here's the token you're gonna need: %s\nAnd the quiz id: %s\n",
		tokenKey, quizID,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to send invitation email")
		return err
	}
	log.Info().Str("email", email).Str("quiz_id", quizID).Msg("Invitation email sent")
	return nil
}
