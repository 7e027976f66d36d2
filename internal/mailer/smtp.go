package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Config carries the SMTP settings as an immutable value; the notifier is
// constructed once at startup and injected, never read from ambient state.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

func NewSMTPNotifier(cfg Config, logger *slog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

const otpBody = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 5px;">
  <h2 style="color: #333;">Verify Your Email</h2>
  <p>Thank you for registering. Please use the following OTP to verify your email address:</p>
  <div style="background-color: #f4f4f4; padding: 10px; text-align: center; font-size: 24px; letter-spacing: 5px; margin: 20px 0;">
    <strong>%s</strong>
  </div>
  <p>This OTP will expire in 15 minutes.</p>
  <p>If you didn't request this, please ignore this email.</p>
</div>`

// SendOTP delivers the verification code. Delivery runs in its own
// goroutine so the caller's context deadline bounds the wait; gomail itself
// has no context support.
func (n *SMTPNotifier) SendOTP(ctx context.Context, email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Email Verification OTP")
	m.SetBody("text/html", fmt.Sprintf(otpBody, code))

	done := make(chan error, 1)
	go func() {
		done <- n.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			n.logger.Error("failed to send email", "to", email, "error", err)
			return err
		}
	}

	return nil
}
