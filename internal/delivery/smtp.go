package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"
)

// SMTPSender delivers notification messages as plain-text emails.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	from      string
	recipient string
}

// NewSMTPSender creates an email sender. password may be empty when the
// server does not require authentication.
func NewSMTPSender(host string, port int, username, password, from, recipient string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		from:      from,
		recipient: recipient,
	}
}

// Send composes a single-part message and submits it over SMTP. The
// context deadline is honored up to message composition; net/smtp does
// not support cancellation mid-transfer.
func (s *SMTPSender) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: s.from}})
	h.SetAddressList("To", []*mail.Address{{Address: s.recipient}})
	h.SetSubject(subject)

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return fmt.Errorf("composing message: %w", err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var auth smtp.Auth
	if s.password != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{s.recipient}, buf.Bytes()); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}

	return nil
}
