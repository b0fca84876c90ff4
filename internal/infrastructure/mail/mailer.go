// Package mail implements the Mailer port over plain SMTP. No mail
// library is pulled in: message bodies are simple text and net/smtp
// covers authenticated submission.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

// Config captures SMTP submission settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through a single SMTP relay.
type SMTPMailer struct {
	cfg  Config
	auth smtp.Auth
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{cfg: cfg, auth: auth}
}

func (m *SMTPMailer) Send(_ context.Context, job ports.MailJob) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, job.To, job.Subject, job.Body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, m.auth, m.cfg.From, []string{job.To}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer is the development fallback used when no SMTP host is
// configured: it logs the message instead of delivering it.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, job ports.MailJob) error {
	m.log.Info().
		Str("to", job.To).
		Str("subject", job.Subject).
		Str("template", job.Template).
		Msg("mail (log only)")
	return nil
}
