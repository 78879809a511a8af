package mailing

import (
	"strconv"

	"gopkg.in/gomail.v2"
)

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	mailer struct {
		config MailConfig
	}
)

func NewMailer(config MailConfig) Mailer {
	return &mailer{config: config}
}

func (m *mailer) SendMail(toEmail string, subject string, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.SMTPEmail)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(msg)
}
