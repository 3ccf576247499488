package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendReceipt(ctx context.Context, recipients []string, periodLabel string, amountCents int64, attachmentPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", fmt.Sprintf("Rent receipt - %s", periodLabel))

	body := fmt.Sprintf("Hello,\n\nPlease find attached your rent receipt for %s.\nAmount received: %.2f.\n\nBest regards,\nYour landlord", periodLabel, float64(amountCents)/100)
	m.SetBody("text/plain", body)

	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}

	return nil
}

func (s *emailService) SendReminder(ctx context.Context, recipients []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	return nil
}
