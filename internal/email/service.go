package email

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/medevel/hospital-api/internal/config"
)

type Service interface {
	SendOTP(ctx context.Context, to, name, code string) error
	SendBill(ctx context.Context, to, name string, pdf []byte) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendOTP(ctx context.Context, to, name, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset code")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour password reset code is %s. It is valid for a short time and can be used once.\n", name, code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}
	return nil
}

func (s *smtpService) SendBill(ctx context.Context, to, name string, pdf []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your bill")
	m.SetBody("text/plain", fmt.Sprintf("Hi %s,\n\nPlease find your bill attached.\n", name))
	m.Attach("bill.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send bill mail: %w", err)
	}
	return nil
}
