package mailer

import (
	"github.com/roamstack/tourism-api/internal/logger"
)

// DevMailer prints outgoing mail to the logs instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer { return &DevMailer{} }

func (m *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("dev mailer: email not sent",
		"to", toEmail,
		"subject", subject,
		"text", text,
	)
	return "dev-mailer", nil
}
