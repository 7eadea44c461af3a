// Package email sends transactional mail through the configured SMTP relay.
package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Service{cfg: cfg}
}

// Configured reports whether the relay credentials are present. Callers
// treat an unconfigured service as a pre-flight failure.
func (s *Service) Configured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != ""
}

type Message struct {
	To      []string
	Subject string
	HTML    string
}

func (s *Service) Send(msg Message) error {
	if !s.Configured() {
		return fmt.Errorf("SMTP relay is not configured")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	body := buildMessage(s.cfg.From, msg)
	if err := smtp.SendMail(addr, auth, s.cfg.From, msg.To, body); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	slog.Info("email sent", "to", strings.Join(msg.To, ","), "subject", msg.Subject)
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: \"Okasina Fashion\" <%s>\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
