package notify

import (
	"context"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends mail through a gomail dialer. Each Send opens its own
// connection; fan-out volume is a handful of messages per activity, so
// connection reuse is not worth the bookkeeping.
type SMTPMailer struct {
	Dialer *gomail.Dialer
	From   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Dialer: gomail.NewDialer(host, port, username, password),
		From:   from,
	}
}

// Send delivers one message. gomail has no context support, so the dial
// and send run in a goroutine and the deadline is enforced from outside.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- m.Dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
