package service

import (
	"fmt"

	"github.com/taskhive/backend/internal/config"
	emailProvider "github.com/taskhive/backend/pkg/email"
)

type EmailService struct {
	sender  emailProvider.Sender
	config  config.EmailConfig
	enabled bool
}

func newEmailService(sender emailProvider.Sender, config config.EmailConfig) *EmailService {
	return &EmailService{
		enabled: config.Enabled,
		sender:  sender,
		config:  config,
	}
}

type otpEmailInput struct {
	OTP string
}

func (s *EmailService) SendVerificationEmail(to string, code string) error {
	return s.send(to, "Verify Your Email Address", s.config.Templates.Verification, otpEmailInput{code})
}

func (s *EmailService) SendPasswordResetEmail(to string, code string) error {
	return s.send(to, "Password Reset Request", s.config.Templates.PasswordReset, otpEmailInput{code})
}

func (s *EmailService) send(to string, subject string, templateName string, data interface{}) error {
	if !s.enabled {
		return nil
	}

	sendInput := emailProvider.SendEmailInput{Subject: subject, To: to}

	if err := sendInput.GenerateBodyFromHTML(templateName, data); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
