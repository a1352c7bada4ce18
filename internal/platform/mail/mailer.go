package mail

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer delivers a single message. Sends are fire-and-forget from the
// caller's point of view: failures are reported but never retried here.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP endpoint.
type SMTPMailer struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

func NewSMTPMailer(addr, from, user, password string) *SMTPMailer {
	var auth smtp.Auth
	if user != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &SMTPMailer{addr: addr, from: from, auth: auth}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the server log instead of delivering them.
// Used when no SMTP endpoint is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("mail (not sent, no SMTP configured) to=%s subject=%q\n%s", to, subject, body)
	return nil
}
