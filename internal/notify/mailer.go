package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"placement-hub/internal/config"
)

// Mailer delivers a single HTML message.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends over plain SMTP with optional auth. With no host configured
// it logs the would-be send and succeeds, so business logic never depends on
// mail being set up.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *log.Logger

	// sendMail is swappable for tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.SMTPConfig, logger *log.Logger) *SMTPMailer {
	if logger == nil {
		logger = log.Default()
	}
	return &SMTPMailer{cfg: cfg, logger: logger, sendMail: smtp.SendMail}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if strings.TrimSpace(m.cfg.Host) == "" {
		m.logger.Printf("[Email] Would send | subject=%q to=%s", subject, to)
		return nil
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	return m.sendMail(addr, auth, from, []string{to}, []byte(b.String()))
}
